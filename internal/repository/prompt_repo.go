package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PromptRepo interface {
	Create(ctx context.Context, prompt *model.GeneratedPrompt) error
	GetByQuestionID(ctx context.Context, questionID string) ([]*model.GeneratedPrompt, error)
}

type promptRepo struct {
	collection *mongo.Collection
}

func NewPromptRepo(client *mongo.Client) PromptRepo {
	db := client.Database("opinion_polling")
	return &promptRepo{
		collection: db.Collection("prompts"),
	}
}

func (r *promptRepo) Create(ctx context.Context, prompt *model.GeneratedPrompt) error {
	if prompt.ID == "" {
		prompt.ID = primitive.NewObjectID().Hex()
	}
	prompt.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, prompt)
	return err
}

func (r *promptRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.GeneratedPrompt, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prompts []*model.GeneratedPrompt
	if err := cursor.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}
