package model

import "time"

// Respondent is a synthetic persona the sampler answers on behalf of.
// All attributes are optional; empty strings and a nil Age are simply
// left out of the rendered backstory. Immutable once created.
type Respondent struct {
	ID      string `json:"id" bson:"_id,omitempty"`
	StudyID string `json:"studyId" bson:"studyId"`
	ExtID   string `json:"extId,omitempty" bson:"extId,omitempty"` // identifier from the source dataset
	Name    string `json:"name,omitempty" bson:"name,omitempty"`

	Age               *int   `json:"age,omitempty" bson:"age,omitempty"`
	Gender            string `json:"gender,omitempty" bson:"gender,omitempty"`
	Education         string `json:"education,omitempty" bson:"education,omitempty"`
	State             string `json:"state,omitempty" bson:"state,omitempty"`
	Race              string `json:"race,omitempty" bson:"race,omitempty"`
	Party             string `json:"party,omitempty" bson:"party,omitempty"`
	Ideology          string `json:"ideology,omitempty" bson:"ideology,omitempty"`
	PoliticalInterest string `json:"politicalInterest,omitempty" bson:"politicalInterest,omitempty"`
	DiscussPolitics   string `json:"discussPolitics,omitempty" bson:"discussPolitics,omitempty"`
	ChurchGoer        string `json:"churchGoer,omitempty" bson:"churchGoer,omitempty"`
	Religion          string `json:"religion,omitempty" bson:"religion,omitempty"`
	Financially       string `json:"financially,omitempty" bson:"financially,omitempty"`
	Patriotism        string `json:"patriotism,omitempty" bson:"patriotism,omitempty"`

	// MoreInfo carries open-ended attributes from the source dataset that
	// have no dedicated column.
	MoreInfo map[string]string `json:"moreInfo,omitempty" bson:"moreInfo,omitempty"`

	// RealVote is the free-text historical ground truth, e.g.
	// "1. Hillary Clinton" or "Did not vote for President".
	RealVote string `json:"realVote,omitempty" bson:"realVote,omitempty"`

	DatasetName string    `json:"datasetName,omitempty" bson:"datasetName,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
