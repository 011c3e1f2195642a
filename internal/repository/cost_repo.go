package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CostRepo interface {
	Create(ctx context.Context, cost *model.CostRecord) error
	GetByStudyID(ctx context.Context, studyID string) ([]*model.CostRecord, error)
	TotalByStudyID(ctx context.Context, studyID string) (float64, error)
}

type costRepo struct {
	collection *mongo.Collection
}

func NewCostRepo(client *mongo.Client) CostRepo {
	db := client.Database("opinion_polling")
	return &costRepo{
		collection: db.Collection("costs"),
	}
}

func (r *costRepo) Create(ctx context.Context, cost *model.CostRecord) error {
	if cost.ID == "" {
		cost.ID = primitive.NewObjectID().Hex()
	}
	cost.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, cost)
	return err
}

func (r *costRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.CostRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studyId": studyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var costs []*model.CostRecord
	if err := cursor.All(ctx, &costs); err != nil {
		return nil, err
	}
	return costs, nil
}

func (r *costRepo) TotalByStudyID(ctx context.Context, studyID string) (float64, error) {
	costs, err := r.GetByStudyID(ctx, studyID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, c := range costs {
		total += c.TotalCost
	}
	return total, nil
}
