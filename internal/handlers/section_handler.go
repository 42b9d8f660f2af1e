package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/services"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
)

// SectionHandler serves the public listing and the admin CRUD surface for
// section items.
type SectionHandler struct {
	service services.SectionServiceInterface
}

func NewSectionHandler(service services.SectionServiceInterface) *SectionHandler {
	return &SectionHandler{service: service}
}

// GetAll returns active items only, for the public site.
func (h *SectionHandler) GetAll(c *gin.Context) {
	items, err := h.service.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching items", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// GetAllAdmin returns every item including inactive ones.
func (h *SectionHandler) GetAllAdmin(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error fetching items", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func (h *SectionHandler) GetByID(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error fetching item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

func (h *SectionHandler) Create(c *gin.Context) {
	var req models.CreateSectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Title is required", err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Error creating item", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

// Update applies a partial merge: only fields present in the body overwrite
// stored values, so a present empty string still clears a field.
func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req models.UpdateSectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request body", err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error updating item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item updated successfully",
		"data":    item,
	})
}

func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	item, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Item not found", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, "Error deleting item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted successfully",
		"data":    item,
	})
}

// UploadImage stores a base64 image for the item and returns the updated
// record with its new image URL.
func (h *SectionHandler) UploadImage(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req models.UploadSectionImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Image data and content type are required", err)
		return
	}

	item, err := h.service.UploadImage(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "Item not found", nil)
		case apperrors.Is(err, apperrors.ErrInvalidInput):
			respondError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			respondError(c, http.StatusInternalServerError, "Error uploading image", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image uploaded successfully",
		"data":    item,
	})
}

// itemID parses the :id route param. Responds 400 and returns false when the
// value is not a UUID.
func (h *SectionHandler) itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid item id", nil)
		return uuid.Nil, false
	}
	return id, true
}
