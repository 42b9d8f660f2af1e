package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/academy-labs/academy-api/internal/database/postgres"
)

// HealthHandler serves the unauthenticated liveness probe.
type HealthHandler struct {
	db *postgres.Client
}

func NewHealthHandler(db *postgres.Client) *HealthHandler {
	return &HealthHandler{db: db}
}

// Healthcheck always reports 200; the database state is informational so a
// storage outage doesn't make the orchestrator restart an otherwise healthy
// process.
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	database := "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			database = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Backend server is running!",
		"database": database,
	})
}
