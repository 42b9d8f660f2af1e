package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/academy-labs/academy-api/internal/models"
	apperrors "github.com/academy-labs/academy-api/pkg/errors"
)

func sectionRouter(svc *MockSectionService) *gin.Engine {
	router := gin.New()
	handler := NewSectionHandler(svc)
	router.GET("/api/our-section/all", handler.GetAll)
	router.GET("/api/our-section/admin/all", handler.GetAllAdmin)
	router.GET("/api/our-section/admin/:id", handler.GetByID)
	router.POST("/api/our-section/admin/create", handler.Create)
	router.PUT("/api/our-section/admin/:id", handler.Update)
	router.DELETE("/api/our-section/admin/:id", handler.Delete)
	router.POST("/api/our-section/admin/:id/image", handler.UploadImage)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(resp, req)
	return resp
}

func TestSectionHandler_PublicListingActiveOnly(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	active := []*models.SectionItem{{ID: uuid.New(), Title: "Visible", IsActive: true}}
	svc.On("ListPublic", mock.Anything).Return(active, nil)

	resp := doJSON(router, http.MethodGet, "/api/our-section/all", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Visible")
	svc.AssertNotCalled(t, "ListAll")
}

func TestSectionHandler_AdminListingIncludesInactive(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	all := []*models.SectionItem{
		{ID: uuid.New(), Title: "Visible", IsActive: true},
		{ID: uuid.New(), Title: "Hidden", IsActive: false},
	}
	svc.On("ListAll", mock.Anything).Return(all, nil)

	resp := doJSON(router, http.MethodGet, "/api/our-section/admin/all", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Hidden")
}

func TestSectionHandler_GetByIDNotFound(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(nil, apperrors.NotFoundError("section item"))

	resp := doJSON(router, http.MethodGet, "/api/our-section/admin/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Item not found")
}

func TestSectionHandler_GetByIDInvalidUUID(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	resp := doJSON(router, http.MethodGet, "/api/our-section/admin/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid item id")
	svc.AssertNotCalled(t, "Get")
}

func TestSectionHandler_CreateRequiresTitle(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	resp := doJSON(router, http.MethodPost, "/api/our-section/admin/create", gin.H{"description": "no title"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "Create")

	var body struct {
		Message string            `json:"message"`
		Errors  []ValidationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Title is required", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "Title", body.Errors[0].Field)
	assert.Equal(t, "Title is required", body.Errors[0].Message)
}

func TestSectionHandler_CreateWithCommaDelimitedFeatures(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req *models.CreateSectionItemRequest) bool {
		return req.Features != nil &&
			assert.ObjectsAreEqual(models.FeatureList{"Go", "SQL", "Docker"}, *req.Features)
	})).Return(&models.SectionItem{ID: uuid.New(), Title: "Course"}, nil)

	resp := doJSON(router, http.MethodPost, "/api/our-section/admin/create", gin.H{
		"title":    "Course",
		"features": "Go, SQL , Docker",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	svc.AssertExpectations(t)
}

func TestSectionHandler_PartialUpdatePresence(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	id := uuid.New()
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(req *models.UpdateSectionItemRequest) bool {
		// Only description is present; the empty string must still be applied.
		return req.Description != nil && *req.Description == "" &&
			req.Title == nil && req.Order == nil
	})).Return(&models.SectionItem{ID: id, Title: "Course"}, nil)

	resp := doJSON(router, http.MethodPut, "/api/our-section/admin/"+id.String(), gin.H{
		"description": "",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Item updated successfully")
	svc.AssertExpectations(t)
}

func TestSectionHandler_DeleteNotFound(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(nil, apperrors.NotFoundError("section item"))

	resp := doJSON(router, http.MethodDelete, "/api/our-section/admin/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSectionHandler_DeleteReturnsDeletedItem(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	id := uuid.New()
	svc.On("Delete", mock.Anything, id).Return(&models.SectionItem{ID: id, Title: "Gone"}, nil)

	resp := doJSON(router, http.MethodDelete, "/api/our-section/admin/"+id.String(), nil)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Item deleted successfully")
	assert.Contains(t, resp.Body.String(), "Gone")
}

func TestSectionHandler_UploadImageValidation(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	id := uuid.New()
	resp := doJSON(router, http.MethodPost, "/api/our-section/admin/"+id.String()+"/image", gin.H{
		"imageData": "aGVsbG8=",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "UploadImage")
}

func TestSectionHandler_UploadImageSuccess(t *testing.T) {
	svc := new(MockSectionService)
	router := sectionRouter(svc)

	id := uuid.New()
	svc.On("UploadImage", mock.Anything, id, mock.Anything).
		Return(&models.SectionItem{ID: id, Title: "Course", Image: "https://cdn/x.png"}, nil)

	resp := doJSON(router, http.MethodPost, "/api/our-section/admin/"+id.String()+"/image", gin.H{
		"imageData":   "aGVsbG8=",
		"contentType": "image/png",
	})

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Image uploaded successfully")
}
