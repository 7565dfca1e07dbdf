package audit

import (
	"context"
	"log/slog"
)

const (
	// ActionUserCreate records an account creation.
	ActionUserCreate = "user.create"
	// ActionUserUpdate records an account mutation.
	ActionUserUpdate = "user.update"
	// ActionUserDelete records an account deletion.
	ActionUserDelete = "user.delete"
)

// Event describes who did what to whom.
type Event struct {
	Action      string
	ActorID     string
	ActorEmail  string
	TargetID    string
	TargetEmail string
}

// Recorder receives audit events for account mutations. Recording is an
// observability side effect; implementations must never fail the mutation.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// SlogRecorder writes audit events to the structured logger.
type SlogRecorder struct {
	logger *slog.Logger
}

// NewSlogRecorder constructs a logger-backed audit recorder.
func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger}
}

// Record writes the event to the structured logger.
func (r *SlogRecorder) Record(_ context.Context, event Event) {
	if r == nil || r.logger == nil {
		return
	}
	r.logger.Info("audit",
		"action", event.Action,
		"actor_id", event.ActorID,
		"actor_email", event.ActorEmail,
		"target_id", event.TargetID,
		"target_email", event.TargetEmail,
	)
}
