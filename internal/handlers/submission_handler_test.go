package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/academy-labs/academy-api/config"
	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/internal/notify"
	"github.com/academy-labs/academy-api/internal/services"
	"github.com/academy-labs/academy-api/pkg/httpclient"
)

func submissionRouter(svc services.SubmissionServiceInterface) *gin.Engine {
	router := gin.New()
	handler := NewSubmissionHandler(svc)
	router.POST("/api/enrollment/submit", handler.Submit)
	router.GET("/api/enrollment/all", handler.GetAll)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(resp, req)
	return resp
}

func TestSubmitHandler_MissingRequiredFields(t *testing.T) {
	svc := new(MockSubmissionService)
	router := submissionRouter(svc)

	resp := postJSON(router, "/api/enrollment/submit", gin.H{"name": "Jane"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "Submit")

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Errors  []ValidationError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Name, email, and phone are required fields", body.Message)

	fields := make([]string, 0, len(body.Errors))
	for _, fieldError := range body.Errors {
		fields = append(fields, fieldError.Field)
	}
	assert.ElementsMatch(t, []string{"Email", "Phone"}, fields)
}

func TestSubmitHandler_Success(t *testing.T) {
	svc := new(MockSubmissionService)
	router := submissionRouter(svc)

	stored := &models.Submission{
		ID:        uuid.New(),
		Name:      "Jane",
		Email:     "jane@example.com",
		Phone:     "+1",
		Course:    "Go Fundamentals",
		Type:      models.SubmissionTypeEnrollment,
		CreatedAt: time.Now().UTC(),
	}
	svc.On("Submit", mock.Anything, mock.Anything).Return(stored,
		map[string]notify.Result{"email": {Success: true, Message: "Email sent successfully"}}, nil)

	resp := postJSON(router, "/api/enrollment/submit", gin.H{
		"name":   "Jane",
		"email":  "jane@example.com",
		"phone":  "+1",
		"course": "Go Fundamentals",
		"type":   "enrollment",
	})

	require.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		Success       bool                     `json:"success"`
		Data          models.Submission        `json:"data"`
		Notifications map[string]notify.Result `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, stored.ID, body.Data.ID)
	assert.True(t, body.Notifications["email"].Success)
}

func TestSubmitHandler_PersistenceError(t *testing.T) {
	svc := new(MockSubmissionService)
	router := submissionRouter(svc)

	svc.On("Submit", mock.Anything, mock.Anything).Return(nil, nil, assert.AnError)

	resp := postJSON(router, "/api/enrollment/submit", gin.H{
		"name":  "Jane",
		"email": "jane@example.com",
		"phone": "+1",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "Error processing enrollment")
}

func TestGetAllHandler_ReturnsCount(t *testing.T) {
	svc := new(MockSubmissionService)
	router := submissionRouter(svc)

	svc.On("GetAll", mock.Anything).Return([]*models.Submission{
		{ID: uuid.New(), Name: "A"},
		{ID: uuid.New(), Name: "B"},
	}, nil)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/enrollment/all", nil)
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool                 `json:"success"`
		Count   int                  `json:"count"`
		Data    []*models.Submission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Data, 2)
}

type recordingRepo struct {
	created []*models.Submission
}

func (r *recordingRepo) Create(_ context.Context, req *models.SubmitSubmissionRequest) (*models.Submission, error) {
	stored := &models.Submission{
		ID:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Course:     req.Course,
		Experience: req.Experience,
		Message:    req.Message,
		Type:       req.Type,
		CreatedAt:  time.Now().UTC(),
	}
	r.created = append(r.created, stored)
	return stored, nil
}

func (r *recordingRepo) GetAll(_ context.Context) ([]*models.Submission, error) {
	return r.created, nil
}

// TestSubmitHandler_EndToEndWithSkippedEmail drives a real submission
// service and a real email channel with no notifier configuration: the
// submission must succeed with a skipped-but-successful email result.
func TestSubmitHandler_EndToEndWithSkippedEmail(t *testing.T) {
	repo := &recordingRepo{}
	email := notify.NewEmailChannel(&config.NotifyConfig{}, httpclient.NewStandardClient())
	svc := services.NewSubmissionService(repo, notify.NewDispatcher(email))
	router := submissionRouter(svc)

	resp := postJSON(router, "/api/enrollment/submit", gin.H{
		"name":   "A",
		"email":  "a@x.com",
		"phone":  "1",
		"course": "X",
		"type":   "enrollment",
	})

	require.Equal(t, http.StatusCreated, resp.Code)

	var body struct {
		Data          models.Submission        `json:"data"`
		Notifications map[string]notify.Result `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEqual(t, uuid.Nil, body.Data.ID)
	assert.True(t, body.Notifications["email"].Success)
	assert.Contains(t, body.Notifications["email"].Message, "skipped")
}
