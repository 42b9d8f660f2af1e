package repository

import (
	"context"

	"github.com/academy-labs/academy-api/internal/database/postgres"
	"github.com/academy-labs/academy-api/internal/models"
)

// SubmissionRepository handles submission data access
type SubmissionRepository struct {
	db *postgres.Client
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *postgres.Client) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) Create(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, error) {
	return r.db.CreateSubmission(ctx, req)
}

func (r *SubmissionRepository) GetAll(ctx context.Context) ([]*models.Submission, error) {
	return r.db.GetAllSubmissions(ctx)
}
