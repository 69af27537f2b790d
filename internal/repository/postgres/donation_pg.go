// internal/repository/postgres/donation_pg.go
package postgres

import (
	"context"
	"fmt"

	"sparkfund/internal/domain"
	"sparkfund/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const donationColumns = `id, wallet_id, spark_id, amount, message, created_at`

// DonationRepository implements repository.DonationRepository for PostgreSQL.
type DonationRepository struct {
	// Stateless; methods receive a DBExecutor directly.
}

// NewDonationRepository creates a new DonationRepository.
func NewDonationRepository(db *sqlx.DB) repository.DonationRepository {
	return &DonationRepository{}
}

// CreateDonation inserts a new donation record using the provided DBExecutor.
func (r *DonationRepository) CreateDonation(ctx context.Context, q repository.DBExecutor, donation *domain.Donation) error {
	query := `INSERT INTO donations (id, wallet_id, spark_id, amount, message, created_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query,
		donation.ID,
		donation.WalletID,
		donation.SparkID,
		donation.Amount,
		donation.Message,
		donation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

// GetDonationsBySparkID retrieves all donations received by a spark, newest first.
func (r *DonationRepository) GetDonationsBySparkID(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID) ([]domain.Donation, error) {
	donations := []domain.Donation{}
	query := `SELECT ` + donationColumns + ` FROM donations WHERE spark_id = $1 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &donations, query, sparkID); err != nil {
		return nil, fmt.Errorf("failed to fetch donations for spark %s: %w", sparkID, err)
	}
	return donations, nil
}

// GetDonationsByWalletID retrieves all donations made from a wallet, newest first.
func (r *DonationRepository) GetDonationsByWalletID(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID) ([]domain.Donation, error) {
	donations := []domain.Donation{}
	query := `SELECT ` + donationColumns + ` FROM donations WHERE wallet_id = $1 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &donations, query, walletID); err != nil {
		return nil, fmt.Errorf("failed to fetch donations for wallet %s: %w", walletID, err)
	}
	return donations, nil
}

// CountDistinctSparksByWalletID counts the unique sparks a wallet has donated to.
func (r *DonationRepository) CountDistinctSparksByWalletID(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT spark_id) FROM donations WHERE wallet_id = $1`
	if err := q.GetContext(ctx, &count, query, walletID); err != nil {
		return 0, fmt.Errorf("failed to count sparks for wallet %s: %w", walletID, err)
	}
	return count, nil
}
