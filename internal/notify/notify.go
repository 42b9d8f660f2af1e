// Package notify delivers admin notifications for inbound submissions.
// Delivery is best-effort: channel failures are captured in per-channel
// results and never surfaced as errors to the triggering operation.
package notify

import (
	"context"
	"time"

	"github.com/academy-labs/academy-api/internal/models"
)

// Event is the payload handed to notification channels. It is built from
// the persisted submission so ids and timestamps reflect stored state.
type Event struct {
	Kind       models.SubmissionType
	Name       string
	Email      string
	Phone      string
	Course     string
	Experience string
	Message    string
	CreatedAt  time.Time
}

// EventFromSubmission builds the notification payload for a stored record.
func EventFromSubmission(s *models.Submission) Event {
	return Event{
		Kind:       s.Type,
		Name:       s.Name,
		Email:      s.Email,
		Phone:      s.Phone,
		Course:     s.Course,
		Experience: s.Experience,
		Message:    s.Message,
		CreatedAt:  s.CreatedAt,
	}
}

// Result is the outcome of one channel's delivery attempt. Skipped channels
// report success so a missing configuration never looks like an outage.
type Result struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DeliveryID string `json:"deliveryId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Channel is a single notification transport.
type Channel interface {
	// Name identifies the channel in dispatch results and metrics.
	Name() string
	// Send attempts delivery. Implementations report failure through the
	// Result, not an error: dispatch must never fail the caller.
	Send(ctx context.Context, event Event) Result
}
