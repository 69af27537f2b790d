// internal/repository/signal_repo.go
package repository

import (
	"context"

	"sparkfund/internal/domain"

	"github.com/google/uuid"
)

// SignalRepository defines the interface for support-signal data operations.
type SignalRepository interface {
	// CreateSignal adds a new signal to the database.
	CreateSignal(ctx context.Context, q DBExecutor, signal *domain.Signal) error
	// GetSignalByID retrieves a signal by its ID.
	GetSignalByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Signal, error)
	// ListOpenSignals retrieves all OPEN signals, oldest first.
	ListOpenSignals(ctx context.Context, q DBExecutor) ([]domain.Signal, error)
	// ListSignalsByUserID retrieves all signals filed by a user, newest first.
	ListSignalsByUserID(ctx context.Context, q DBExecutor, userID uuid.UUID) ([]domain.Signal, error)
	// CloseSignal sets the signal to CLOSED with the admin's response and
	// stamps updated_at.
	CloseSignal(ctx context.Context, q DBExecutor, id uuid.UUID, adminResponse string) error
}
