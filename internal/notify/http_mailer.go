// internal/notify/http_mailer.go
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HTTPMailer delivers notifications through the mail microservice's JSON API.
type HTTPMailer struct {
	baseURL string
	client  *http.Client
}

// NewHTTPMailer creates an HTTPMailer for the given base URL.
func NewHTTPMailer(baseURL string) *HTTPMailer {
	return &HTTPMailer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// Send posts a message to the mail service.
func (m *HTTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient address is missing")
	}
	payload, err := json.Marshal(sendRequest{Recipient: recipient, Subject: subject, Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail service returned status %d for %s", resp.StatusCode, recipient)
	}
	return nil
}

// FailedMessages fetches the mail service's backlog of undelivered messages.
func (m *HTTPMailer) FailedMessages(ctx context.Context) ([]FailedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/emails/failed", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build failed-messages request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mail service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mail service returned status %d listing failed messages", resp.StatusCode)
	}
	var messages []FailedMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode failed messages: %w", err)
	}
	return messages, nil
}

// DeleteFailed removes a message from the mail service's failed backlog.
func (m *HTTPMailer) DeleteFailed(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, m.baseURL+"/emails/failed/"+id.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("mail service returned status %d deleting message %s", resp.StatusCode, id)
	}
	return nil
}
