package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/academy-labs/academy-api/internal/models"
)

// SubmissionDataSource defines the persistence contract for enrollment and
// contact submissions.
type SubmissionDataSource interface {
	// Create persists a submission, assigning its id and creation timestamp
	Create(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, error)

	// GetAll fetches all submissions, newest first
	GetAll(ctx context.Context) ([]*models.Submission, error)
}

// SectionItemDataSource defines the persistence contract for displayable
// section items.
type SectionItemDataSource interface {
	// List fetches section items in display order, optionally only active ones
	List(ctx context.Context, onlyActive bool) ([]*models.SectionItem, error)

	// GetByID fetches a single section item
	GetByID(ctx context.Context, id uuid.UUID) (*models.SectionItem, error)

	// Create persists a new section item
	Create(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error)

	// Update applies a partial update and returns the updated item
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error)

	// Delete removes a section item and returns the deleted record
	Delete(ctx context.Context, id uuid.UUID) (*models.SectionItem, error)
}
