package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResponseRepo interface {
	Create(ctx context.Context, response *model.ModelResponse) error
	GetByQuestionID(ctx context.Context, questionID string) ([]*model.ModelResponse, error)
	CountByQuestionID(ctx context.Context, questionID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(client *mongo.Client) ResponseRepo {
	db := client.Database("opinion_polling")
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) Create(ctx context.Context, response *model.ModelResponse) error {
	if response.ID == "" {
		response.ID = primitive.NewObjectID().Hex()
	}
	response.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.ModelResponse, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.ModelResponse
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountByQuestionID(ctx context.Context, questionID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"questionId": questionID})
}
