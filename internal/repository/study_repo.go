package repository

import (
	"context"
	"time"

	"github.com/SoheilHooshmand/Back-AI-Opinion/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StudyRepo interface {
	Create(ctx context.Context, study *model.Study) error
	GetByID(ctx context.Context, id string) (*model.Study, error)
	GetByHostID(ctx context.Context, hostID string) ([]*model.Study, error)
	Update(ctx context.Context, study *model.Study) error
	UpdateStatus(ctx context.Context, id string, status model.StudyStatus) error
	Delete(ctx context.Context, id string) error
}

type studyRepo struct {
	collection *mongo.Collection
}

func NewStudyRepo(client *mongo.Client) StudyRepo {
	db := client.Database("opinion_polling")
	return &studyRepo{
		collection: db.Collection("studies"),
	}
}

func (r *studyRepo) Create(ctx context.Context, study *model.Study) error {
	if study.ID == "" {
		study.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	study.CreatedAt = now
	study.UpdatedAt = now
	if study.Status == "" {
		study.Status = model.StudyStatusDraft
	}

	_, err := r.collection.InsertOne(ctx, study)
	return err
}

func (r *studyRepo) GetByID(ctx context.Context, id string) (*model.Study, error) {
	var study model.Study
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&study)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Study not found
		}
		return nil, err
	}
	return &study, nil
}

func (r *studyRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.Study, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"hostId": hostID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var studies []*model.Study
	if err := cursor.All(ctx, &studies); err != nil {
		return nil, err
	}
	return studies, nil
}

func (r *studyRepo) Update(ctx context.Context, study *model.Study) error {
	study.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": study.ID}, study)
	return err
}

func (r *studyRepo) UpdateStatus(ctx context.Context, id string, status model.StudyStatus) error {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *studyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
