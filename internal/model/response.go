package model

import "time"

// ResponseDerivation is the structured data derived from one model call:
// the first-token alternatives as reported by the service, their
// normalized probabilities, and the candidate-level collapse.
type ResponseDerivation struct {
	TokenLogprobs map[string]float64 `json:"tokenLogprobs" bson:"tokenLogprobs"`
	TokenProbs    map[string]float64 `json:"tokenProbs" bson:"tokenProbs"`

	// CollapsedProbs is empty only when collapsing failed; such responses
	// are excluded from metrics, never zero-filled.
	CollapsedProbs  map[string]float64 `json:"collapsedProbs,omitempty" bson:"collapsedProbs,omitempty"`
	PredictedChoice string             `json:"predictedChoice,omitempty" bson:"predictedChoice,omitempty"`

	// Options preserves the configured candidate order; argmax ties and
	// prompt option listings both follow it.
	Options []string `json:"options" bson:"options"`
}

// ModelResponse is one respondent's answer to one question. Immutable
// after creation. Confidence is the collapsed probability of the
// predicted choice.
type ModelResponse struct {
	ID           string             `json:"id" bson:"_id,omitempty"`
	QuestionID   string             `json:"questionId" bson:"questionId"`
	RespondentID string             `json:"respondentId" bson:"respondentId"`
	RawResponse  string             `json:"rawResponse" bson:"rawResponse"`
	Derived      ResponseDerivation `json:"derived" bson:"derived"`
	Confidence   *float64           `json:"confidence,omitempty" bson:"confidence,omitempty"`
	ModelName    string             `json:"modelName" bson:"modelName"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
