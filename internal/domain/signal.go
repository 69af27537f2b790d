// internal/domain/signal.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// SignalStatus defines the state of a support signal.
type SignalStatus string

const (
	SignalStatusOpen   SignalStatus = "OPEN"
	SignalStatusClosed SignalStatus = "CLOSED"
)

// Signal is a support ticket filed by a user and resolved by an admin.
type Signal struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	UserID        uuid.UUID    `db:"user_id" json:"user_id"`
	Title         string       `db:"title" json:"title"`
	Description   string       `db:"description" json:"description"`
	Status        SignalStatus `db:"status" json:"status"`
	AdminResponse *string      `db:"admin_response" json:"admin_response"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// NewSignal creates a new OPEN Signal.
func NewSignal(userID uuid.UUID, title, description string) *Signal {
	now := time.Now().UTC()
	return &Signal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      SignalStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
