package model

import "time"

// StudyStatus tracks pipeline progression for a study
type StudyStatus string

const (
	StudyStatusDraft     StudyStatus = "draft"
	StudyStatusRunning   StudyStatus = "running"
	StudyStatusCompleted StudyStatus = "completed"
	StudyStatusFailed    StudyStatus = "failed"
)

// Study is one simulation experiment owned by a host. Everything except
// Status is fixed after creation; the sampler mutates Status as runs progress.
type Study struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	HostID      string `json:"hostId" bson:"hostId"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// Year selects the default candidate token sets and the ground-truth
	// normalization rules. PositiveLabel is the candidate treated as the
	// "1" class for binary statistics.
	Year          int    `json:"year" bson:"year"`
	PositiveLabel string `json:"positiveLabel" bson:"positiveLabel"`

	Status    StudyStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}
