package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/notify"
	"github.com/academy-labs/academy-api/internal/repository"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
)

// SubmissionService handles enrollment and contact form submissions
type SubmissionService struct {
	repo       repository.SubmissionDataSource
	dispatcher *notify.Dispatcher
}

// NewSubmissionService creates a new submission service instance
func NewSubmissionService(repo repository.SubmissionDataSource, dispatcher *notify.Dispatcher) *SubmissionService {
	return &SubmissionService{
		repo:       repo,
		dispatcher: dispatcher,
	}
}

// Submit persists the submission and dispatches notifications with the
// stored record, so they carry the assigned id and timestamp. Persistence
// errors abort; notification failures are folded into the result map.
func (s *SubmissionService) Submit(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, map[string]notify.Result, error) {
	if req.Type == "" {
		req.Type = models.SubmissionTypeEnrollment
	}
	if !req.Type.IsValid() {
		return nil, nil, apperrors.InvalidInputError("type", "must be enrollment or contact")
	}
	if req.Type == models.SubmissionTypeEnrollment && req.Course == "" {
		return nil, nil, apperrors.InvalidInputError("course", "required for enrollment")
	}

	submission, err := s.repo.Create(ctx, req)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(string(req.Type), "error").Inc()
		logger.Error("Failed to persist submission",
			zap.String("type", string(req.Type)),
			zap.Error(err))
		return nil, nil, err
	}

	metrics.SubmissionsTotal.WithLabelValues(string(req.Type), "success").Inc()
	logger.Info("Submission stored",
		zap.String("id", submission.ID.String()),
		zap.String("type", string(submission.Type)))

	results := s.dispatcher.Dispatch(ctx, notify.EventFromSubmission(submission))

	return submission, results, nil
}

// GetAll returns every stored submission, newest first.
func (s *SubmissionService) GetAll(ctx context.Context) ([]*models.Submission, error) {
	return s.repo.GetAll(ctx)
}
