package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/internal/cache"
	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/repository"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/academy-labs/academy-api/pkg/storage"
)

// ImageStorage is the object-store surface the section service uploads to.
type ImageStorage interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// SectionService handles section item listing and admin mutations
type SectionService struct {
	repo    repository.SectionItemDataSource
	cache   *cache.SectionCache
	storage ImageStorage
}

// NewSectionService creates a new section service instance. storage may be
// nil when no object store is configured; image upload then reports an
// internal error without affecting the rest of the CRUD surface.
func NewSectionService(repo repository.SectionItemDataSource, sectionCache *cache.SectionCache, store *storage.Client) *SectionService {
	svc := &SectionService{
		repo:  repo,
		cache: sectionCache,
	}
	if store != nil {
		svc.storage = store
	}
	return svc
}

// ListPublic returns active items for the public site, served through the
// listing cache.
func (s *SectionService) ListPublic(ctx context.Context) ([]*models.SectionItem, error) {
	return s.cache.GetActive(ctx)
}

// ListAll returns every item including inactive ones, for the admin panel.
// Admin reads bypass the cache so edits are visible immediately.
func (s *SectionService) ListAll(ctx context.Context) ([]*models.SectionItem, error) {
	return s.repo.List(ctx, false)
}

func (s *SectionService) Get(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SectionService) Create(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error) {
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		metrics.SectionItemMutations.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	metrics.SectionItemMutations.WithLabelValues("create", "success").Inc()
	logger.Info("Section item created",
		zap.String("id", item.ID.String()),
		zap.String("title", item.Title))
	s.cache.Invalidate()

	return item, nil
}

func (s *SectionService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error) {
	// An update carrying no fields is a read: skip the write and keep the
	// listing cache warm.
	if req.Empty() {
		return s.repo.GetByID(ctx, id)
	}

	item, err := s.repo.Update(ctx, id, req)
	if err != nil {
		metrics.SectionItemMutations.WithLabelValues("update", "error").Inc()
		return nil, err
	}

	metrics.SectionItemMutations.WithLabelValues("update", "success").Inc()
	s.cache.Invalidate()

	return item, nil
}

func (s *SectionService) Delete(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	item, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.SectionItemMutations.WithLabelValues("delete", "error").Inc()
		return nil, err
	}

	metrics.SectionItemMutations.WithLabelValues("delete", "success").Inc()
	logger.Info("Section item deleted", zap.String("id", item.ID.String()))
	s.cache.Invalidate()

	return item, nil
}

// UploadImage stores the image in the object store and writes the resulting
// URL onto the item.
func (s *SectionService) UploadImage(ctx context.Context, id uuid.UUID, req *models.UploadSectionImageRequest) (*models.SectionItem, error) {
	if s.storage == nil {
		return nil, apperrors.InternalError("image storage is not configured")
	}

	if err := s.storage.ValidateImageType(req.ContentType); err != nil {
		return nil, apperrors.InvalidInputError("contentType", err.Error())
	}
	if err := s.storage.ValidateImageSize(req.ImageData); err != nil {
		return nil, apperrors.InvalidInputError("imageData", err.Error())
	}

	// Existence check first so a bad id fails with 404 before any upload.
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("sections/%s%s", id.String(), extensionFor(req.ContentType))
	url, err := s.storage.UploadImage(ctx, req.ImageData, key, req.ContentType)
	if err != nil {
		metrics.SectionItemMutations.WithLabelValues("upload_image", "error").Inc()
		logger.Error("Failed to upload section image",
			zap.String("id", id.String()),
			zap.Error(err))
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, &models.UpdateSectionItemRequest{Image: &url})
	if err != nil {
		metrics.SectionItemMutations.WithLabelValues("upload_image", "error").Inc()
		return nil, err
	}

	metrics.SectionItemMutations.WithLabelValues("upload_image", "success").Inc()
	s.cache.Invalidate()

	return item, nil
}

func extensionFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
