package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RunLogRepo interface {
	Create(ctx context.Context, entry *model.RunLog) error
	GetByStudyID(ctx context.Context, studyID string) ([]*model.RunLog, error)
}

type runLogRepo struct {
	collection *mongo.Collection
}

func NewRunLogRepo(client *mongo.Client) RunLogRepo {
	db := client.Database("opinion_polling")
	return &runLogRepo{
		collection: db.Collection("run_logs"),
	}
}

func (r *runLogRepo) Create(ctx context.Context, entry *model.RunLog) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	entry.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *runLogRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.RunLog, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studyId": studyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.RunLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
