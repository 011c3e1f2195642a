package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnalysisRepo interface {
	// Upsert keeps at most one result per (question, method) pair.
	Upsert(ctx context.Context, result *model.AnalysisResult) error
	GetByQuestionMethod(ctx context.Context, questionID, method string) (*model.AnalysisResult, error)
	GetByQuestionID(ctx context.Context, questionID string) ([]*model.AnalysisResult, error)
}

type analysisRepo struct {
	collection *mongo.Collection
}

func NewAnalysisRepo(client *mongo.Client) AnalysisRepo {
	db := client.Database("opinion_polling")
	return &analysisRepo{
		collection: db.Collection("analysis_results"),
	}
}

func (r *analysisRepo) Upsert(ctx context.Context, result *model.AnalysisResult) error {
	now := time.Now()
	filter := bson.M{
		"questionId": result.QuestionID,
		"method":     result.Method,
	}
	update := bson.M{
		"$set": bson.M{
			"parameters": result.Parameters,
			"result":     result.Result,
			"updatedAt":  now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"questionId": result.QuestionID,
			"method":     result.Method,
			"createdAt":  now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *analysisRepo) GetByQuestionMethod(ctx context.Context, questionID, method string) (*model.AnalysisResult, error) {
	var result model.AnalysisResult
	err := r.collection.FindOne(ctx, bson.M{
		"questionId": questionID,
		"method":     method,
	}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No result yet
		}
		return nil, err
	}
	return &result, nil
}

func (r *analysisRepo) GetByQuestionID(ctx context.Context, questionID string) ([]*model.AnalysisResult, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"questionId": questionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.AnalysisResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
