package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/notify"
)

// SubmissionServiceInterface defines the interface for submission operations
type SubmissionServiceInterface interface {
	// Submit validates and persists a submission, then dispatches admin
	// notifications. Notification outcomes are returned alongside the
	// stored record; they never fail the submission.
	Submit(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, map[string]notify.Result, error)

	// GetAll returns all stored submissions, newest first
	GetAll(ctx context.Context) ([]*models.Submission, error)
}

// SectionServiceInterface defines the interface for section item operations
type SectionServiceInterface interface {
	ListPublic(ctx context.Context) ([]*models.SectionItem, error)
	ListAll(ctx context.Context) ([]*models.SectionItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.SectionItem, error)
	Create(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.SectionItem, error)
	UploadImage(ctx context.Context, id uuid.UUID, req *models.UploadSectionImageRequest) (*models.SectionItem, error)
}

// AuthServiceInterface defines the interface for admin credential checks
type AuthServiceInterface interface {
	// Login validates the given credentials against the configured admin
	// identity. Returns ErrAuthNotConfigured when no identity is set and
	// ErrUnauthorized on mismatch.
	Login(username, password string) error

	// Configured reports whether an admin identity is set
	Configured() bool
}
