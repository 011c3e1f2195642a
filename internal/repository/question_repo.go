package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepo interface {
	Create(ctx context.Context, question *model.Question) error
	GetByID(ctx context.Context, id string) (*model.Question, error)
	GetByStudyID(ctx context.Context, studyID string) ([]*model.Question, error)
	SetAnswered(ctx context.Context, id string, modelName string) error
	SetAnalyzed(ctx context.Context, id string) error
	AllAnswered(ctx context.Context, studyID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(client *mongo.Client) QuestionRepo {
	db := client.Database("opinion_polling")
	return &questionRepo{
		collection: db.Collection("questions"),
	}
}

func (r *questionRepo) Create(ctx context.Context, question *model.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, question)
	return err
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	var question model.Question
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Question not found
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studyId": studyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) SetAnswered(ctx context.Context, id string, modelName string) error {
	update := bson.M{"$set": bson.M{
		"answered":  true,
		"modelName": modelName,
		"updatedAt": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *questionRepo) SetAnalyzed(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{
		"analyzed":  true,
		"updatedAt": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *questionRepo) AllAnswered(ctx context.Context, studyID string) (bool, error) {
	pending, err := r.collection.CountDocuments(ctx, bson.M{
		"studyId":  studyID,
		"answered": false,
	})
	if err != nil {
		return false, err
	}
	return pending == 0, nil
}

func (r *questionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
