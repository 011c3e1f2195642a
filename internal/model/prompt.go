package model

import "time"

// GeneratedPrompt is the exact text sent to the model for one
// (question, respondent) pair. Written once, never mutated.
type GeneratedPrompt struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	StudyID      string    `json:"studyId" bson:"studyId"`
	QuestionID   string    `json:"questionId" bson:"questionId"`
	RespondentID string    `json:"respondentId" bson:"respondentId"`
	Body         string    `json:"body" bson:"body"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
