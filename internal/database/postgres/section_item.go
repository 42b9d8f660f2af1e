package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/academy-labs/academy-api/internal/models"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const sectionItemColumns = `
	id, title, description, image, icon, sort_order, is_active, category,
	price, badge, tag, popular, features, subtitle, created_at, updated_at
`

// ListSectionItems returns section items in display order (sort_order
// ascending, created_at descending as tiebreak). With onlyActive set,
// inactive items are excluded.
func (c *Client) ListSectionItems(ctx context.Context, onlyActive bool) ([]*models.SectionItem, error) {
	start := time.Now()
	operation := "listSectionItems"

	query := `SELECT ` + sectionItemColumns + ` FROM section_items`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, created_at DESC`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query section items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.SectionItem, 0)
	for rows.Next() {
		item, err := scanSectionItem(rows)
		if err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating section item rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(items)))

	return items, nil
}

// GetSectionItemByID fetches a single item; unknown ids map to ErrNotFound.
func (c *Client) GetSectionItemByID(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	start := time.Now()
	operation := "getSectionItemByID"

	row := c.pool.QueryRow(ctx,
		`SELECT `+sectionItemColumns+` FROM section_items WHERE id = $1`, id)

	item, err := scanSectionItem(row)
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("section item")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, err
	}

	recordMetrics(operation, "success", duration)
	return item, nil
}

// CreateSectionItem inserts a new item and returns it with assigned
// id/timestamps.
func (c *Client) CreateSectionItem(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error) {
	start := time.Now()
	operation := "createSectionItem"

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	category := req.Category
	if category == "" {
		category = "general"
	}
	features := models.FeatureList{}
	if req.Features != nil {
		features = *req.Features
	}

	query := `
		INSERT INTO section_items
			(title, description, image, icon, sort_order, is_active, category,
			 price, badge, tag, popular, features, subtitle)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + sectionItemColumns

	row := c.pool.QueryRow(ctx, query,
		req.Title,
		nilIfEmpty(req.Description),
		nilIfEmpty(req.Image),
		nilIfEmpty(req.Icon),
		req.Order,
		isActive,
		category,
		nilIfEmpty(req.Price),
		nilIfEmpty(req.Badge),
		nilIfEmpty(req.Tag),
		req.Popular,
		[]string(features),
		nilIfEmpty(req.Subtitle),
	)

	item, err := scanSectionItem(row)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create section item: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return item, nil
}

// UpdateSectionItem applies a partial-field merge: only non-nil request
// fields overwrite stored columns. A present empty string still overwrites.
func (c *Client) UpdateSectionItem(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error) {
	start := time.Now()
	operation := "updateSectionItem"

	setClauses := make([]string, 0, 14)
	args := make([]interface{}, 0, 15)

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Image != nil {
		addSet("image", *req.Image)
	}
	if req.Icon != nil {
		addSet("icon", *req.Icon)
	}
	if req.Order != nil {
		addSet("sort_order", *req.Order)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.Price != nil {
		addSet("price", *req.Price)
	}
	if req.Badge != nil {
		addSet("badge", *req.Badge)
	}
	if req.Tag != nil {
		addSet("tag", *req.Tag)
	}
	if req.Popular != nil {
		addSet("popular", *req.Popular)
	}
	if req.Features != nil {
		addSet("features", []string(*req.Features))
	}
	if req.Subtitle != nil {
		addSet("subtitle", *req.Subtitle)
	}

	// Nothing to change: return the stored item untouched
	if len(setClauses) == 0 {
		return c.GetSectionItemByID(ctx, id)
	}

	addSet("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE section_items SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), sectionItemColumns,
	)

	row := c.pool.QueryRow(ctx, query, args...)

	item, err := scanSectionItem(row)
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("section item")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update section item: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return item, nil
}

// DeleteSectionItem hard-deletes an item, returning the deleted record.
// Unknown ids map to ErrNotFound and leave the collection untouched.
func (c *Client) DeleteSectionItem(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	start := time.Now()
	operation := "deleteSectionItem"

	row := c.pool.QueryRow(ctx,
		`DELETE FROM section_items WHERE id = $1 RETURNING `+sectionItemColumns, id)

	item, err := scanSectionItem(row)
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("section item")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to delete section item: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)

	return item, nil
}

// scanSectionItem maps a row onto a SectionItem, normalizing nullable
// columns to empty strings.
func scanSectionItem(row pgx.Row) (*models.SectionItem, error) {
	var item models.SectionItem
	var description, image, icon, price, badge, tag, subtitle *string
	var features []string

	err := row.Scan(
		&item.ID, &item.Title, &description, &image, &icon,
		&item.Order, &item.IsActive, &item.Category,
		&price, &badge, &tag, &item.Popular, &features, &subtitle,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan section item row: %w", err)
	}

	item.Description = emptyIfNil(description)
	item.Image = emptyIfNil(image)
	item.Icon = emptyIfNil(icon)
	item.Price = emptyIfNil(price)
	item.Badge = emptyIfNil(badge)
	item.Tag = emptyIfNil(tag)
	item.Subtitle = emptyIfNil(subtitle)
	item.Features = models.FeatureList(features)
	if item.Features == nil {
		item.Features = models.FeatureList{}
	}

	return &item, nil
}
