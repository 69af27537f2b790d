// internal/notify/notifier.go
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FailedMessage is a previously undeliverable message held by the mail
// service for resending.
type FailedMessage struct {
	ID        uuid.UUID `json:"id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier is the outbound notification boundary. Send is fire-and-forget
// from the caller's perspective: services log failures and move on, and a
// periodic sweep retries via FailedMessages/DeleteFailed.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
	FailedMessages(ctx context.Context) ([]FailedMessage, error)
	DeleteFailed(ctx context.Context, id uuid.UUID) error
}
