package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"go.uber.org/zap"
)

// CreateSubmission inserts a new submission and returns the stored record
// with its assigned id and creation timestamp.
func (c *Client) CreateSubmission(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, error) {
	start := time.Now()
	operation := "createSubmission"

	query := `
		INSERT INTO submissions (name, email, phone, course, experience, message, subtitle, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	sub := &models.Submission{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Course:     req.Course,
		Experience: req.Experience,
		Message:    req.Message,
		Subtitle:   req.Subtitle,
		Type:       req.Type,
	}

	err := c.pool.QueryRow(ctx, query,
		req.Name,
		req.Email,
		req.Phone,
		nilIfEmpty(req.Course),
		nilIfEmpty(req.Experience),
		nilIfEmpty(req.Message),
		nilIfEmpty(req.Subtitle),
		string(req.Type),
	).Scan(&sub.ID, &sub.CreatedAt)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return sub, nil
}

// GetAllSubmissions returns every submission, newest first.
func (c *Client) GetAllSubmissions(ctx context.Context) ([]*models.Submission, error) {
	start := time.Now()
	operation := "getAllSubmissions"

	query := `
		SELECT id, name, email, phone, course, experience, message, subtitle, type, created_at
		FROM submissions
		ORDER BY created_at DESC
	`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*models.Submission, 0)
	for rows.Next() {
		var sub models.Submission
		var course, experience, message, subtitle *string
		var subType string

		if err := rows.Scan(
			&sub.ID, &sub.Name, &sub.Email, &sub.Phone,
			&course, &experience, &message, &subtitle,
			&subType, &sub.CreatedAt,
		); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}

		sub.Course = emptyIfNil(course)
		sub.Experience = emptyIfNil(experience)
		sub.Message = emptyIfNil(message)
		sub.Subtitle = emptyIfNil(subtitle)
		sub.Type = models.SubmissionType(subType)

		submissions = append(submissions, &sub)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(submissions)))

	return submissions, nil
}
