package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/config"
	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/pkg/circuitbreaker"
	"github.com/academy-labs/academy-api/pkg/httpclient"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
)

const whatsAppAPIBase = "https://graph.facebook.com/v19.0"

// WhatsAppChannel posts a plain-text summary of the submission to the admin
// recipient through the WhatsApp Cloud API. Chat delivery is a secondary
// channel: a single attempt, no retries, and a circuit breaker so a dead
// provider stops adding latency to submissions.
type WhatsAppChannel struct {
	cfg     *config.NotifyConfig
	client  httpclient.Client
	base    string
	breaker *gobreaker.CircuitBreaker
}

// NewWhatsAppChannel wires the chat channel. The API base is fixed; tests
// override it through newWhatsAppChannelWithBase.
func NewWhatsAppChannel(cfg *config.NotifyConfig, client httpclient.Client) *WhatsAppChannel {
	return newWhatsAppChannelWithBase(cfg, client, whatsAppAPIBase)
}

func newWhatsAppChannelWithBase(cfg *config.NotifyConfig, client httpclient.Client, base string) *WhatsAppChannel {
	return &WhatsAppChannel{
		cfg:     cfg,
		client:  client,
		base:    base,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("whatsapp")),
	}
}

func (ch *WhatsAppChannel) Name() string { return "whatsapp" }

func (ch *WhatsAppChannel) configured() bool {
	return ch.cfg.WhatsAppToken != "" && ch.cfg.WhatsAppPhoneID != "" && ch.cfg.WhatsAppRecipient != ""
}

func (ch *WhatsAppChannel) Send(ctx context.Context, event Event) Result {
	if !ch.configured() {
		metrics.NotificationsTotal.WithLabelValues("whatsapp", "skipped").Inc()
		return Result{Success: true, Message: "WhatsApp notification skipped (not configured)"}
	}

	deliveryID, err := circuitbreaker.Execute(ch.breaker, func() (string, error) {
		return ch.deliver(ctx, event)
	})
	if err != nil {
		return ch.failure(circuitbreaker.FormatError("whatsapp", err))
	}

	metrics.NotificationsTotal.WithLabelValues("whatsapp", "sent").Inc()
	return Result{Success: true, Message: "WhatsApp message sent successfully", DeliveryID: deliveryID}
}

// deliver performs one Cloud API messages call and returns the provider id.
func (ch *WhatsAppChannel) deliver(ctx context.Context, event Event) (string, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                ch.cfg.WhatsAppRecipient,
		"type":              "text",
		"text":              map[string]string{"body": formatChatMessage(event)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode whatsapp payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", ch.base, ch.cfg.WhatsAppPhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+ch.cfg.WhatsAppToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := ch.client.Do(req)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		logger.LogAPICall("whatsapp", "send", "error", duration)
		return "", fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.LogAPICall("whatsapp", "send", "error", duration)
		return "", fmt.Errorf("whatsapp returned status %d: %s", resp.StatusCode, string(detail))
	}

	var parsed struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	deliveryID := ""
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && len(parsed.Messages) > 0 {
		deliveryID = parsed.Messages[0].ID
	}

	logger.LogAPICall("whatsapp", "send", "success", duration)
	return deliveryID, nil
}

func (ch *WhatsAppChannel) failure(err error) Result {
	logger.Error("whatsapp notification failed", zap.Error(err))
	metrics.NotificationsTotal.WithLabelValues("whatsapp", "failed").Inc()
	return Result{Success: false, Message: "WhatsApp notification failed", Error: err.Error()}
}

func formatChatMessage(event Event) string {
	if event.Kind == models.SubmissionTypeEnrollment {
		return fmt.Sprintf(
			"New course enrollment\nName: %s\nEmail: %s\nPhone: %s\nCourse: %s\nExperience: %s",
			event.Name, event.Email, event.Phone, event.Course, orNotSpecified(event.Experience))
	}
	return fmt.Sprintf(
		"New contact message\nName: %s\nEmail: %s\nPhone: %s\nCourse interest: %s\nMessage: %s",
		event.Name, event.Email, event.Phone, orNotSpecified(event.Course), orDefault(event.Message, "No message provided"))
}
