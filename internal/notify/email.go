package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/academy-labs/academy-api/config"
	"github.com/academy-labs/academy-api/internal/models"
	"github.com/academy-labs/academy-api/pkg/httpclient"
	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/metrics"
	"github.com/academy-labs/academy-api/pkg/retry"
)

const sendGridSendURL = "https://api.sendgrid.com/v3/mail/send"

// emailSender is one concrete mail transport behind the email channel.
type emailSender interface {
	send(ctx context.Context, from, to, subject, htmlBody string) (deliveryID string, err error)
}

// EmailChannel notifies the admin address about new submissions. The
// transport is picked at construction by configuration precedence:
// SendGrid API key first, then Gmail SMTP credentials, else the channel
// stays configured-but-skipping.
type EmailChannel struct {
	cfg       *config.NotifyConfig
	sender    emailSender
	from      string
	retryConf retry.Config
}

// NewEmailChannel wires the email channel from notification config. The
// http client is injected so tests can fake the SendGrid API.
func NewEmailChannel(cfg *config.NotifyConfig, client httpclient.Client) *EmailChannel {
	ch := &EmailChannel{cfg: cfg, retryConf: retry.NotifyConfig()}

	switch {
	case cfg.SendGridAPIKey != "":
		ch.sender = &sendGridSender{apiKey: cfg.SendGridAPIKey, client: client}
		ch.from = cfg.SendGridFromEmail
		if ch.from == "" {
			ch.from = cfg.SMTPUser
		}
	case cfg.SMTPUser != "" && cfg.SMTPPass != "":
		ch.sender = &smtpSender{
			host: cfg.SMTPHost,
			port: cfg.SMTPPort,
			user: cfg.SMTPUser,
			pass: cfg.SMTPPass,
		}
		ch.from = cfg.SMTPUser
	}

	if ch.from == "" {
		ch.from = "noreply@academy.com"
	}

	return ch
}

func (ch *EmailChannel) Name() string { return "email" }

// Send formats a kind-specific message and attempts delivery with up to
// three tries. Missing configuration short-circuits to a skipped success.
func (ch *EmailChannel) Send(ctx context.Context, event Event) Result {
	if ch.cfg.AdminEmail == "" {
		logger.Warn("email credentials not configured, skipping email notification")
		metrics.NotificationsTotal.WithLabelValues("email", "skipped").Inc()
		return Result{Success: true, Message: "Email notification skipped (no admin email configured)"}
	}
	if ch.sender == nil {
		logger.Warn("no valid email transport configured, skipping email notification")
		metrics.NotificationsTotal.WithLabelValues("email", "skipped").Inc()
		return Result{Success: true, Message: "Email notification skipped (no valid configuration)"}
	}

	subject, body := formatEmail(event)

	start := time.Now()
	deliveryID, err := retry.DoWithResult(ctx, ch.retryConf, "notify.email", func() (string, error) {
		return ch.sender.send(ctx, ch.from, ch.cfg.AdminEmail, subject, body)
	})
	duration := metrics.MeasureDuration(start)

	if err != nil {
		logger.Error("email notification failed",
			zap.String("to", ch.cfg.AdminEmail),
			zap.String("subject", subject),
			zap.Error(err))
		metrics.NotificationsTotal.WithLabelValues("email", "failed").Inc()
		logger.LogAPICall("email", "send", "error", duration)
		return Result{Success: false, Message: "Email notification failed", Error: err.Error()}
	}

	metrics.NotificationsTotal.WithLabelValues("email", "sent").Inc()
	logger.LogAPICall("email", "send", "success", duration)
	return Result{Success: true, Message: "Email sent successfully", DeliveryID: deliveryID}
}

// formatEmail renders the subject and HTML body for an event.
func formatEmail(event Event) (subject, body string) {
	if event.Kind == models.SubmissionTypeEnrollment {
		subject = fmt.Sprintf("New Course Enrollment: %s", event.Course)
	} else {
		subject = "New Contact Message"
	}

	rows := []struct{ label, value string }{
		{"Name", event.Name},
		{"Email", event.Email},
		{"Phone", event.Phone},
	}
	if event.Kind == models.SubmissionTypeEnrollment {
		rows = append(rows,
			struct{ label, value string }{"Course", event.Course},
			struct{ label, value string }{"Experience Level", orNotSpecified(event.Experience)},
		)
	} else {
		rows = append(rows,
			struct{ label, value string }{"Course Interest", orNotSpecified(event.Course)},
			struct{ label, value string }{"Message", orDefault(event.Message, "No message provided")},
		)
	}
	rows = append(rows, struct{ label, value string }{"Submission Date", event.CreatedAt.Format(time.RFC1123)})

	var sb strings.Builder
	sb.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	if event.Kind == models.SubmissionTypeEnrollment {
		sb.WriteString(`<h2 style="color: #003366;">New Course Enrollment</h2>`)
	} else {
		sb.WriteString(`<h2 style="color: #003366;">New Contact Message</h2>`)
	}
	sb.WriteString(`<div style="background-color: #f5f7fa; padding: 20px; border-radius: 8px;">`)
	for _, row := range rows {
		fmt.Fprintf(&sb, "<p><strong>%s:</strong> %s</p>", row.label, row.value)
	}
	sb.WriteString(`</div></div>`)

	return subject, sb.String()
}

func orNotSpecified(v string) string {
	return orDefault(v, "Not specified")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// sendGridSender delivers through the SendGrid v3 mail send API.
type sendGridSender struct {
	apiKey string
	client httpclient.Client
}

func (s *sendGridSender) send(ctx context.Context, from, to, subject, htmlBody string) (string, error) {
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": to}}},
		},
		"from":    map[string]string{"email": from},
		"subject": subject,
		"content": []map[string]string{
			{"type": "text/html", "value": htmlBody},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode sendgrid payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendGridSendURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create sendgrid request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sendgrid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, string(detail))
	}

	return resp.Header.Get("X-Message-Id"), nil
}

// smtpSender delivers through a plain SMTP relay (Gmail by default).
type smtpSender struct {
	host string
	port int
	user string
	pass string
}

func (s *smtpSender) send(_ context.Context, from, to, subject, htmlBody string) (string, error) {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return "", fmt.Errorf("smtp delivery failed: %w", err)
	}

	return "", nil
}
