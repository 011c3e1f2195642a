package model

import "time"

// RunLog is the audit trail for one model invocation: the exact prompt
// and response text plus usage accounting.
type RunLog struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	StudyID      string    `json:"studyId" bson:"studyId"`
	RespondentID string    `json:"respondentId" bson:"respondentId"`
	PromptText   string    `json:"promptText" bson:"promptText"`
	ResponseText string    `json:"responseText" bson:"responseText"`
	ModelName    string    `json:"modelName" bson:"modelName"`
	TokensUsed   int       `json:"tokensUsed" bson:"tokensUsed"`
	Temperature  float64   `json:"temperature" bson:"temperature"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
