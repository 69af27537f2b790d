// internal/repository/spark_repo.go
package repository

import (
	"context"

	"sparkfund/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SparkRepository defines the interface for spark data operations.
type SparkRepository interface {
	// CreateSpark adds a new spark to the database.
	CreateSpark(ctx context.Context, q DBExecutor, spark *domain.Spark) error
	// GetSparkByID retrieves a spark by its ID.
	GetSparkByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Spark, error)
	// UpdateSpark persists the mutable fields of an ACTIVE spark (title,
	// description, goal amount, category, pictures) and stamps updated_at.
	UpdateSpark(ctx context.Context, q DBExecutor, spark *domain.Spark) error
	// AddToCurrentAmount atomically adds delta to the spark's accumulated
	// amount and stamps updated_at.
	AddToCurrentAmount(ctx context.Context, q DBExecutor, sparkID uuid.UUID, delta decimal.Decimal) error
	// SetStatus sets the spark's lifecycle status and stamps updated_at.
	SetStatus(ctx context.Context, q DBExecutor, sparkID uuid.UUID, status domain.SparkStatus) error
	// ZeroCurrentAmount resets the accumulated amount to zero and stamps
	// updated_at. Used only during cancellation.
	ZeroCurrentAmount(ctx context.Context, q DBExecutor, sparkID uuid.UUID) error
	// ListSparks retrieves sparks matching the filter, newest first. The
	// viewer's identity drives the ownership criteria.
	ListSparks(ctx context.Context, q DBExecutor, viewerID uuid.UUID, filter domain.SparkFilter) ([]domain.Spark, error)
	// ListCompletable retrieves ACTIVE sparks whose accumulated amount has
	// reached the goal.
	ListCompletable(ctx context.Context, q DBExecutor) ([]domain.Spark, error)
	// CountFunded counts sparks whose accumulated amount is above zero.
	CountFunded(ctx context.Context, q DBExecutor) (int, error)
}
