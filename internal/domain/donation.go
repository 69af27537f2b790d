// internal/domain/donation.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// MaxDonationMessageLength bounds the optional donor message.
const MaxDonationMessageLength = 300

// MinDonationAmount is the smallest accepted donation, in EUR.
var MinDonationAmount = decimal.NewFromInt(1)

// Donation is an immutable record of a transfer from a Wallet to a Spark.
// Donations are never updated or deleted; cancelling a spark creates
// compensating wallet credits but leaves the rows intact as an audit trail.
type Donation struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	WalletID  uuid.UUID       `db:"wallet_id" json:"wallet_id"` // Originating wallet
	SparkID   uuid.UUID       `db:"spark_id" json:"spark_id"`   // Target spark
	Amount    decimal.Decimal `db:"amount" json:"amount"`       // NUMERIC(20, 2) in DB
	Message   *string         `db:"message" json:"message"`     // Optional, bounded length
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NewDonation creates a new Donation record.
func NewDonation(walletID, sparkID uuid.UUID, amount decimal.Decimal, message *string) *Donation {
	return &Donation{
		ID:        uuid.New(),
		WalletID:  walletID,
		SparkID:   sparkID,
		Amount:    amount,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
