package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/pkg/logger"
)

func init() {
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development", ServiceName: "test"})
}

// MockSubmissionRepo mocks repository.SubmissionDataSource
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Create(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) GetAll(ctx context.Context) ([]*models.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Submission), args.Error(1)
}

// MockSectionRepo mocks repository.SectionItemDataSource and doubles as the
// cache's data source.
type MockSectionRepo struct {
	mock.Mock
}

func (m *MockSectionRepo) List(ctx context.Context, onlyActive bool) ([]*models.SectionItem, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SectionItem), args.Error(1)
}

// ListSectionItems satisfies cache.SectionDataSource.
func (m *MockSectionRepo) ListSectionItems(ctx context.Context, onlyActive bool) ([]*models.SectionItem, error) {
	return m.List(ctx, onlyActive)
}

func (m *MockSectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionRepo) Create(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionRepo) Update(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionRepo) Delete(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

// MockImageStorage mocks the object store used for section images.
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStorage) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockImageStorage) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}
