package model

import "time"

// CostRecord is the estimated USD cost of running one question across
// all respondents of a study. One row per run.
type CostRecord struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	StudyID    string    `json:"studyId" bson:"studyId"`
	QuestionID string    `json:"questionId" bson:"questionId"`
	ModelName  string    `json:"modelName" bson:"modelName"`
	TotalCost  float64   `json:"totalCost" bson:"totalCost"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
