package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RespondentRepo interface {
	Create(ctx context.Context, respondent *model.Respondent) error
	CreateMany(ctx context.Context, respondents []*model.Respondent) error
	GetByID(ctx context.Context, id string) (*model.Respondent, error)
	GetByStudyID(ctx context.Context, studyID string) ([]*model.Respondent, error)
	CountByStudyID(ctx context.Context, studyID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type respondentRepo struct {
	collection *mongo.Collection
}

func NewRespondentRepo(client *mongo.Client) RespondentRepo {
	db := client.Database("opinion_polling")
	return &respondentRepo{
		collection: db.Collection("respondents"),
	}
}

func (r *respondentRepo) Create(ctx context.Context, respondent *model.Respondent) error {
	if respondent.ID == "" {
		respondent.ID = primitive.NewObjectID().Hex()
	}
	respondent.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, respondent)
	return err
}

func (r *respondentRepo) CreateMany(ctx context.Context, respondents []*model.Respondent) error {
	if len(respondents) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(respondents))
	for _, respondent := range respondents {
		if respondent.ID == "" {
			respondent.ID = primitive.NewObjectID().Hex()
		}
		respondent.CreatedAt = now
		docs = append(docs, respondent)
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *respondentRepo) GetByID(ctx context.Context, id string) (*model.Respondent, error) {
	var respondent model.Respondent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&respondent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Respondent not found
		}
		return nil, err
	}
	return &respondent, nil
}

func (r *respondentRepo) GetByStudyID(ctx context.Context, studyID string) ([]*model.Respondent, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"studyId": studyID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var respondents []*model.Respondent
	if err := cursor.All(ctx, &respondents); err != nil {
		return nil, err
	}
	return respondents, nil
}

func (r *respondentRepo) CountByStudyID(ctx context.Context, studyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"studyId": studyID})
}

func (r *respondentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
