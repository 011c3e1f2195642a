package service

// Broadcaster pushes run progress to WebSocket watchers (avoids import cycle)
type Broadcaster interface {
	BroadcastToStudy(studyID string, msgType string, payload interface{})
}

// Run event types pushed over the progress socket.
const (
	EventRunStarted        = "run_started"
	EventRespondentSampled = "respondent_sampled"
	EventRunCompleted      = "run_completed"
	EventRunFailed         = "run_failed"
)
