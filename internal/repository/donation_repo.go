// internal/repository/donation_repo.go
package repository

import (
	"context"

	"sparkfund/internal/domain"

	"github.com/google/uuid"
)

// DonationRepository defines the interface for donation data operations.
// Donations are append-only; there are no update or delete methods.
type DonationRepository interface {
	// CreateDonation adds a new donation record using the provided DBExecutor.
	CreateDonation(ctx context.Context, q DBExecutor, donation *domain.Donation) error
	// GetDonationsBySparkID retrieves all donations received by a spark, newest first.
	GetDonationsBySparkID(ctx context.Context, q DBExecutor, sparkID uuid.UUID) ([]domain.Donation, error)
	// GetDonationsByWalletID retrieves all donations made from a wallet, newest first.
	GetDonationsByWalletID(ctx context.Context, q DBExecutor, walletID uuid.UUID) ([]domain.Donation, error)
	// CountDistinctSparksByWalletID counts the unique sparks a wallet has donated to.
	CountDistinctSparksByWalletID(ctx context.Context, q DBExecutor, walletID uuid.UUID) (int, error)
}
