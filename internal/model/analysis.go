package model

import "time"

// AnalysisParams records the configuration a result was computed under.
type AnalysisParams struct {
	PositiveLabel string `json:"positiveLabel" bson:"positiveLabel"`
	Year          int    `json:"year" bson:"year"`
}

// AnalysisData holds the aggregate statistics for one question.
// Statistics that are undefined for the retained sample (zero-variance
// inputs, too few rows) are nil, never NaN.
type AnalysisData struct {
	N           int      `json:"n" bson:"n"`
	Accuracy    *float64 `json:"accuracy" bson:"accuracy"`
	EntropyMean *float64 `json:"entropyMean" bson:"entropyMean"`

	// MutualInfoTemplateOutput is the MI between the question and the
	// output distribution. MutualInfoRealVsPredProb is the MI between the
	// binary real-vote indicator and the model's positive-label
	// probability.
	MutualInfoTemplateOutput *float64 `json:"mutualInfoTemplateOutput" bson:"mutualInfoTemplateOutput"`
	MutualInfoRealVsPredProb *float64 `json:"mutualInfoRealVsPredProb" bson:"mutualInfoRealVsPredProb"`

	PearsonR      *float64 `json:"pearsonR" bson:"pearsonR"`
	PearsonPValue *float64 `json:"pearsonPValue" bson:"pearsonPValue"`
	CohensKappa   *float64 `json:"cohensKappa" bson:"cohensKappa"`
	MatthewsCorr  *float64 `json:"matthewsCorr" bson:"matthewsCorr"`

	PositiveLabel string `json:"positiveLabel" bson:"positiveLabel"`

	// CollapsedProbsByRespondent keeps each retained respondent's
	// candidate distribution for inspection.
	CollapsedProbsByRespondent map[string]map[string]float64 `json:"collapsedProbsByRespondent" bson:"collapsedProbsByRespondent"`
}

// AnalysisResult caches the metrics for one (question, method) pair.
// Recomputation overwrites the row; it is always derivable from the
// responses plus respondent ground truth and is never a source of truth.
type AnalysisResult struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	QuestionID string         `json:"questionId" bson:"questionId"`
	Method     string         `json:"method" bson:"method"`
	Parameters AnalysisParams `json:"parameters" bson:"parameters"`
	Result     AnalysisData   `json:"result" bson:"result"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
}
