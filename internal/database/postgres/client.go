package postgres

import (
	"context"

	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Client wraps a pgx connection pool with observability
type Client struct {
	pool *pgxpool.Pool
}

// NewClient creates a new PostgreSQL client over an existing pool
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool}
}

// Ping verifies database connectivity (used by the health endpoint)
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// recordMetrics records per-operation database metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}

// nilIfEmpty converts empty strings to nil for nullable columns
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// emptyIfNil converts nullable column values back to plain strings
func emptyIfNil(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
