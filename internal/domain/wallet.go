// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// DefaultCurrency is the only currency the platform handles.
const DefaultCurrency = "EUR"

// Wallet holds a user's spendable balance. Every user owns exactly one
// wallet, created at registration. Amount never goes below zero after a
// committed operation.
type Wallet struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	OwnerID   uuid.UUID       `db:"owner_id" json:"owner_id"` // 1:1 with User
	Currency  string          `db:"currency" json:"currency"`
	Amount    decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20, 2) in DB
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates a zero-balance EUR wallet for the given owner.
func NewWallet(ownerID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Currency:  DefaultCurrency,
		Amount:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
