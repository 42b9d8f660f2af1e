package notify

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/academy-labs/academy-api/config"
	"github.com/academy-labs/academy-api/internal/models"
)

func whatsAppConfig() *config.NotifyConfig {
	return &config.NotifyConfig{
		WhatsAppToken:     "wa-token",
		WhatsAppPhoneID:   "12345",
		WhatsAppRecipient: "+987654321",
	}
}

func TestWhatsAppChannel_SkipsWhenUnconfigured(t *testing.T) {
	ch := NewWhatsAppChannel(&config.NotifyConfig{}, new(MockHTTPClient))

	result := ch.Send(context.Background(), testEvent())

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "skipped")
}

func TestWhatsAppChannel_SendSuccess(t *testing.T) {
	client := new(MockHTTPClient)
	client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/12345/messages" &&
			req.Header.Get("Authorization") == "Bearer wa-token"
	})).Return(httpResponse(http.StatusOK, `{"messages":[{"id":"wamid.abc"}]}`), nil)

	ch := NewWhatsAppChannel(whatsAppConfig(), client)

	result := ch.Send(context.Background(), testEvent())

	assert.True(t, result.Success)
	assert.Equal(t, "wamid.abc", result.DeliveryID)
	client.AssertExpectations(t)
}

func TestWhatsAppChannel_SingleAttemptOnFailure(t *testing.T) {
	client := new(MockHTTPClient)
	client.On("Do", mock.Anything).Return(nil, errors.New("network down"))

	ch := NewWhatsAppChannel(whatsAppConfig(), client)

	result := ch.Send(context.Background(), testEvent())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "network down")
	client.AssertNumberOfCalls(t, "Do", 1)
}

func TestWhatsAppChannel_APIError(t *testing.T) {
	client := new(MockHTTPClient)
	client.On("Do", mock.Anything).Return(httpResponse(http.StatusForbidden, `{"error":"bad token"}`), nil)

	ch := NewWhatsAppChannel(whatsAppConfig(), client)

	result := ch.Send(context.Background(), testEvent())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "status 403")
}

func TestFormatChatMessage(t *testing.T) {
	msg := formatChatMessage(testEvent())
	assert.Contains(t, msg, "New course enrollment")
	assert.Contains(t, msg, "Jane Doe")
	assert.Contains(t, msg, "Go Fundamentals")

	contact := testEvent()
	contact.Kind = models.SubmissionTypeContact
	contact.Message = "Call me"
	msg = formatChatMessage(contact)
	assert.Contains(t, msg, "New contact message")
	assert.Contains(t, msg, "Call me")
}
