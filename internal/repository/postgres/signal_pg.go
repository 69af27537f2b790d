// internal/repository/postgres/signal_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sparkfund/internal/domain"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const signalColumns = `id, user_id, title, description, status, admin_response, created_at, updated_at`

// SignalRepository implements repository.SignalRepository for PostgreSQL.
type SignalRepository struct {
	// Stateless; methods receive a DBExecutor directly.
}

// NewSignalRepository creates a new SignalRepository.
func NewSignalRepository(db *sqlx.DB) repository.SignalRepository {
	return &SignalRepository{}
}

// CreateSignal inserts a new signal into the database using the provided DBExecutor.
func (r *SignalRepository) CreateSignal(ctx context.Context, q repository.DBExecutor, signal *domain.Signal) error {
	query := `INSERT INTO signals (id, user_id, title, description, status, admin_response, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		signal.ID, signal.UserID, signal.Title, signal.Description,
		signal.Status, signal.AdminResponse, signal.CreatedAt, signal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create signal: %w", err)
	}
	return nil
}

// GetSignalByID retrieves a signal by its ID using the provided DBExecutor.
func (r *SignalRepository) GetSignalByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Signal, error) {
	var signal domain.Signal
	query := `SELECT ` + signalColumns + ` FROM signals WHERE id = $1`
	err := q.GetContext(ctx, &signal, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrSignalNotFound
		}
		return nil, fmt.Errorf("failed to get signal by ID %s: %w", id, err)
	}
	return &signal, nil
}

// ListOpenSignals retrieves all OPEN signals, oldest first.
func (r *SignalRepository) ListOpenSignals(ctx context.Context, q repository.DBExecutor) ([]domain.Signal, error) {
	signals := []domain.Signal{}
	query := `SELECT ` + signalColumns + ` FROM signals WHERE status = $1 ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &signals, query, domain.SignalStatusOpen); err != nil {
		return nil, fmt.Errorf("failed to list open signals: %w", err)
	}
	return signals, nil
}

// ListSignalsByUserID retrieves all signals filed by a user, newest first.
func (r *SignalRepository) ListSignalsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) ([]domain.Signal, error) {
	signals := []domain.Signal{}
	query := `SELECT ` + signalColumns + ` FROM signals WHERE user_id = $1 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &signals, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list signals for user %s: %w", userID, err)
	}
	return signals, nil
}

// CloseSignal sets the signal to CLOSED with the admin's response.
func (r *SignalRepository) CloseSignal(ctx context.Context, q repository.DBExecutor, id uuid.UUID, adminResponse string) error {
	query := `UPDATE signals SET status = $1, admin_response = $2, updated_at = $3 WHERE id = $4`
	result, err := q.ExecContext(ctx, query, domain.SignalStatusClosed, adminResponse, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to close signal %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after closing signal %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrSignalNotFound
	}
	return nil
}
