package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/notify"
	"github.com/academy-labs/academy-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Initialize(logger.Config{Level: "error", Environment: "development", ServiceName: "test"})
}

// MockSubmissionService mocks services.SubmissionServiceInterface
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, map[string]notify.Result, error) {
	args := m.Called(ctx, req)
	var sub *models.Submission
	if args.Get(0) != nil {
		sub = args.Get(0).(*models.Submission)
	}
	var results map[string]notify.Result
	if args.Get(1) != nil {
		results = args.Get(1).(map[string]notify.Result)
	}
	return sub, results, args.Error(2)
}

func (m *MockSubmissionService) GetAll(ctx context.Context) ([]*models.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Submission), args.Error(1)
}

// MockSectionService mocks services.SectionServiceInterface
type MockSectionService struct {
	mock.Mock
}

func (m *MockSectionService) ListPublic(ctx context.Context) ([]*models.SectionItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SectionItem), args.Error(1)
}

func (m *MockSectionService) ListAll(ctx context.Context) ([]*models.SectionItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SectionItem), args.Error(1)
}

func (m *MockSectionService) Get(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionService) Create(ctx context.Context, req *models.CreateSectionItemRequest) (*models.SectionItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateSectionItemRequest) (*models.SectionItem, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionService) Delete(ctx context.Context, id uuid.UUID) (*models.SectionItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}

func (m *MockSectionService) UploadImage(ctx context.Context, id uuid.UUID, req *models.UploadSectionImageRequest) (*models.SectionItem, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SectionItem), args.Error(1)
}
