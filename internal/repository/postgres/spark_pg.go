// internal/repository/postgres/spark_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"sparkfund/internal/domain"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const sparkColumns = `id, creator_id, title, description, goal_amount, current_amount, category, status,
	first_picture_url, second_picture_url, third_picture_url, created_at, updated_at`

// SparkRepository implements repository.SparkRepository for PostgreSQL.
type SparkRepository struct {
	// Stateless; methods receive a DBExecutor directly.
}

// NewSparkRepository creates a new SparkRepository.
func NewSparkRepository(db *sqlx.DB) repository.SparkRepository {
	return &SparkRepository{}
}

// CreateSpark inserts a new spark into the database using the provided DBExecutor.
func (r *SparkRepository) CreateSpark(ctx context.Context, q repository.DBExecutor, spark *domain.Spark) error {
	query := `INSERT INTO sparks (id, creator_id, title, description, goal_amount, current_amount, category, status,
	              first_picture_url, second_picture_url, third_picture_url, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := q.ExecContext(ctx, query,
		spark.ID, spark.CreatorID, spark.Title, spark.Description,
		spark.GoalAmount, spark.CurrentAmount, spark.Category, spark.Status,
		spark.FirstPictureURL, spark.SecondPictureURL, spark.ThirdPictureURL,
		spark.CreatedAt, spark.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create spark: %w", err)
	}
	return nil
}

// GetSparkByID retrieves a spark by its ID using the provided DBExecutor.
func (r *SparkRepository) GetSparkByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Spark, error) {
	var spark domain.Spark
	query := `SELECT ` + sparkColumns + ` FROM sparks WHERE id = $1`
	err := q.GetContext(ctx, &spark, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrSparkNotFound
		}
		return nil, fmt.Errorf("failed to get spark by ID %s: %w", id, err)
	}
	return &spark, nil
}

// UpdateSpark persists the mutable fields of a spark and stamps updated_at.
func (r *SparkRepository) UpdateSpark(ctx context.Context, q repository.DBExecutor, spark *domain.Spark) error {
	query := `UPDATE sparks
              SET title = $1, description = $2, goal_amount = $3, category = $4,
                  first_picture_url = $5, second_picture_url = $6, third_picture_url = $7,
                  updated_at = $8
              WHERE id = $9`
	result, err := q.ExecContext(ctx, query,
		spark.Title, spark.Description, spark.GoalAmount, spark.Category,
		spark.FirstPictureURL, spark.SecondPictureURL, spark.ThirdPictureURL,
		time.Now().UTC(), spark.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update spark %s: %w", spark.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating spark %s: %w", spark.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrSparkNotFound
	}
	return nil
}

// AddToCurrentAmount atomically adds delta to the accumulated amount.
func (r *SparkRepository) AddToCurrentAmount(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE sparks SET current_amount = COALESCE(current_amount, 0) + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), sparkID)
	if err != nil {
		return fmt.Errorf("failed to update current amount for spark %s: %w", sparkID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating spark %s: %w", sparkID, err)
	}
	if rowsAffected == 0 {
		return util.ErrSparkNotFound
	}
	return nil
}

// SetStatus sets the spark's lifecycle status and stamps updated_at.
func (r *SparkRepository) SetStatus(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID, status domain.SparkStatus) error {
	query := `UPDATE sparks SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, status, time.Now().UTC(), sparkID)
	if err != nil {
		return fmt.Errorf("failed to set status for spark %s: %w", sparkID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after setting status for spark %s: %w", sparkID, err)
	}
	if rowsAffected == 0 {
		return util.ErrSparkNotFound
	}
	return nil
}

// ZeroCurrentAmount resets the accumulated amount to zero.
func (r *SparkRepository) ZeroCurrentAmount(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID) error {
	query := `UPDATE sparks SET current_amount = 0, updated_at = $1 WHERE id = $2`
	if _, err := q.ExecContext(ctx, query, time.Now().UTC(), sparkID); err != nil {
		return fmt.Errorf("failed to zero current amount for spark %s: %w", sparkID, err)
	}
	return nil
}

// ListSparks retrieves sparks matching the filter, newest first.
func (r *SparkRepository) ListSparks(ctx context.Context, q repository.DBExecutor, viewerID uuid.UUID, filter domain.SparkFilter) ([]domain.Spark, error) {
	sparks := []domain.Spark{}

	// The unfiltered listing shows active sparks only.
	if filter.IsZero() {
		query := `SELECT ` + sparkColumns + ` FROM sparks WHERE status = $1 ORDER BY created_at DESC`
		if err := q.SelectContext(ctx, &sparks, query, domain.SparkStatusActive); err != nil {
			return nil, fmt.Errorf("failed to list active sparks: %w", err)
		}
		return sparks, nil
	}

	query := `SELECT ` + sparkColumns + ` FROM sparks WHERE 1=1`
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	switch filter.Ownership {
	case domain.SparkOwnershipMine:
		args = append(args, viewerID)
		query += ` AND creator_id = $` + strconv.Itoa(len(args))
	case domain.SparkOwnershipDonatedTo:
		args = append(args, viewerID)
		query += ` AND EXISTS (
			SELECT 1 FROM donations d
			JOIN wallets w ON w.id = d.wallet_id
			WHERE d.spark_id = sparks.id AND w.owner_id = $` + strconv.Itoa(len(args)) + `)`
	}
	query += ` ORDER BY created_at DESC`

	if err := q.SelectContext(ctx, &sparks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sparks: %w", err)
	}
	return sparks, nil
}

// ListCompletable retrieves ACTIVE sparks that have reached their goal.
func (r *SparkRepository) ListCompletable(ctx context.Context, q repository.DBExecutor) ([]domain.Spark, error) {
	sparks := []domain.Spark{}
	query := `SELECT ` + sparkColumns + ` FROM sparks WHERE status = $1 AND current_amount >= goal_amount`
	if err := q.SelectContext(ctx, &sparks, query, domain.SparkStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list completable sparks: %w", err)
	}
	return sparks, nil
}

// CountFunded counts sparks with a positive accumulated amount.
func (r *SparkRepository) CountFunded(ctx context.Context, q repository.DBExecutor) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM sparks WHERE current_amount > 0`
	if err := q.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count funded sparks: %w", err)
	}
	return count, nil
}
