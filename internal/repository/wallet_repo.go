// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"sparkfund/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonorTotal is a per-owner aggregate of donations made from a wallet.
type DonorTotal struct {
	Username       string          `db:"username"`
	ProfilePicture *string         `db:"profile_picture"`
	Total          decimal.Decimal `db:"total"`
}

// WalletRepository defines the interface for wallet data operations.
// All methods take a DBExecutor so they can run either on the pool or
// inside a transaction.
type WalletRepository interface {
	// CreateWallet adds a new wallet to the database.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByID retrieves a wallet by its ID.
	GetWalletByID(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Wallet, error)
	// GetWalletByOwnerID retrieves the wallet owned by the given user.
	GetWalletByOwnerID(ctx context.Context, q DBExecutor, ownerID uuid.UUID) (*domain.Wallet, error)
	// GetWalletForUpdate retrieves a wallet and locks its row until the
	// surrounding transaction ends. Must be called inside a transaction.
	GetWalletForUpdate(ctx context.Context, q DBExecutor, id uuid.UUID) (*domain.Wallet, error)
	// AddToAmount atomically adds delta (possibly negative) to the wallet
	// balance and stamps updated_at.
	AddToAmount(ctx context.Context, q DBExecutor, walletID uuid.UUID, delta decimal.Decimal) error
	// ListDonorTotals returns, for every wallet owner, the summed amount of
	// donations made from their wallet. Owners with no donations appear with
	// a zero total.
	ListDonorTotals(ctx context.Context, q DBExecutor) ([]DonorTotal, error)
}
