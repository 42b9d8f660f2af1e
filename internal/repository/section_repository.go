package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/academy-labs/academy-api/internal/database/postgres"
	"github.com/academy-labs/academy-api/internal/models"
)

// SectionItemRepository handles section item data access
type SectionItemRepository struct {
	db *postgres.Client
}

// NewSectionItemRepository creates a new section item repository
func NewSectionItemRepository(db *postgres.Client) *SectionItemRepository {
	return &SectionItemRepository{db: db}
}

func (r *SectionItemRepository) List(ctx context.Context, onlyActive bool) ([]*models.SectionItem, error) {
	return r.db.ListSectionItems(ctx, onlyActive)
}

func (r *SectionItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	return r.db.GetSectionItemByID(ctx, id)
}

func (r *SectionItemRepository) Create(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error) {
	return r.db.CreateSectionItem(ctx, req)
}

func (r *SectionItemRepository) Update(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error) {
	return r.db.UpdateSectionItem(ctx, id, req)
}

func (r *SectionItemRepository) Delete(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	return r.db.DeleteSectionItem(ctx, id)
}
