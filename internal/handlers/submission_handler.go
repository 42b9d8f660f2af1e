package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/services"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
)

// SubmissionHandler serves the enrollment/contact submission endpoints.
type SubmissionHandler struct {
	service services.SubmissionServiceInterface
}

func NewSubmissionHandler(service services.SubmissionServiceInterface) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit accepts a public form submission, persists it and reports the
// per-channel notification outcome alongside the stored record.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req models.SubmitSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Name, email, and phone are required fields", err)
		return
	}

	submission, notifications, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error processing enrollment", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Enrollment submitted successfully",
		"data":          submission,
		"notifications": notifications,
	})
}

// GetAll returns every stored submission for the admin panel.
func (h *SubmissionHandler) GetAll(c *gin.Context) {
	submissions, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching enrollments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(submissions),
		"data":    submissions,
	})
}
