// internal/repository/postgres/wallet_pg.go
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
	"github.com/shopspring/decimal"
)

const walletColumns = `id, owner_id, currency, amount, created_at, updated_at`

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// Stateless; methods receive a DBExecutor directly.
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet into the database using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (id, owner_id, currency, amount, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := q.ExecContext(ctx, query, wallet.ID, wallet.OwnerID, wallet.Currency, wallet.Amount, wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by ID %s: %w", id, err)
	}
	return &wallet, nil
}

// GetWalletByOwnerID retrieves the wallet owned by the given user.
func (r *WalletRepository) GetWalletByOwnerID(ctx context.Context, q repository.DBExecutor, ownerID uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1`
	err := q.GetContext(ctx, &wallet, query, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by owner ID %s: %w", ownerID, err)
	}
	return &wallet, nil
}

// GetWalletForUpdate retrieves a wallet and locks its row for the duration of
// the surrounding transaction.
func (r *WalletRepository) GetWalletForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet %s: %w", id, err)
	}
	return &wallet, nil
}

// AddToAmount atomically adds delta to the wallet balance using the provided DBExecutor.
func (r *WalletRepository) AddToAmount(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE wallets SET amount = COALESCE(amount, 0) + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update balance for wallet %s: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet %s: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return util.ErrWalletNotFound
	}
	return nil
}

// ListDonorTotals returns the summed donation amount per wallet owner.
func (r *WalletRepository) ListDonorTotals(ctx context.Context, q repository.DBExecutor) ([]repository.DonorTotal, error) {
	totals := []repository.DonorTotal{}
	query := `
		SELECT u.username, u.profile_picture, COALESCE(SUM(d.amount), 0) AS total
		FROM wallets w
		JOIN users u ON u.id = w.owner_id
		LEFT JOIN donations d ON d.wallet_id = w.id
		GROUP BY u.username, u.profile_picture
		ORDER BY u.username`
	if err := q.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("failed to list donor totals: %w", err)
	}
	return totals, nil
}
