package model

import "time"

// Question is a prompt stem put to every respondent of a study.
// Answered flips once a sampling run completes; Analyzed once the
// metrics engine has produced an AnalysisResult for it.
type Question struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	StudyID    string    `json:"studyId" bson:"studyId"`
	Body       string    `json:"body" bson:"body"`
	RealAnswer string    `json:"realAnswer,omitempty" bson:"realAnswer,omitempty"`
	Answered   bool      `json:"answered" bson:"answered"`
	Analyzed   bool      `json:"analyzed" bson:"analyzed"`
	ModelName  string    `json:"modelName,omitempty" bson:"modelName,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
