// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"sparkfund/internal/domain"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"
	"sparkfund/pkg/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletDonationInfo summarizes a wallet's giving history.
type WalletDonationInfo struct {
	TotalDonated    decimal.Decimal `json:"total_donated"`
	SparksSupported int             `json:"sparks_supported"`
}

// WalletService defines the interface for wallet-related business logic.
//
// Debit, Credit and CreateWallet take a DBExecutor so callers can compose
// them into a larger transaction (the donation recorder, registration,
// cancellation refunds). Deposit manages its own transaction.
type WalletService interface {
	CreateWallet(ctx context.Context, q repository.DBExecutor, ownerID uuid.UUID) (*domain.Wallet, error)
	Debit(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, amount decimal.Decimal) error
	Credit(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, amount decimal.Decimal) error
	Deposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error)
	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
	GetWalletByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error)
	DonationSummary(ctx context.Context, walletID uuid.UUID) (*WalletDonationInfo, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner   db.DBTxBeginner       // For starting transactions (e.g. *sqlx.DB)
	dbExecutor   repository.DBExecutor // For non-transactional reads
	userRepo     repository.UserRepository
	walletRepo   repository.WalletRepository
	donationRepo repository.DonationRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
	logger       *slog.Logger
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	donationRepo repository.DonationRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) WalletService {
	return &walletService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		userRepo:     userRepo,
		walletRepo:   walletRepo,
		donationRepo: donationRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
		logger:       logger,
	}
}

// CreateWallet creates a zero-balance wallet for the given owner inside the
// caller's transaction.
func (s *walletService) CreateWallet(ctx context.Context, q repository.DBExecutor, ownerID uuid.UUID) (*domain.Wallet, error) {
	wallet := domain.NewWallet(ownerID)
	if err := s.walletRepo.CreateWallet(ctx, q, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}
	return wallet, nil
}

// Debit subtracts amount from the wallet balance. The wallet row is locked
// for the rest of the caller's transaction, so the sufficient-funds check and
// the write are atomic. A debit of exactly the full balance succeeds and
// leaves the balance at zero.
func (s *walletService) Debit(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}

	wallet, err := s.walletRepo.GetWalletForUpdate(ctx, q, walletID)
	if err != nil {
		return fmt.Errorf("debit: failed to lock wallet %s: %w", walletID, err)
	}

	if wallet.Amount.Sub(amount).IsNegative() {
		return util.ErrInsufficientFunds
	}

	if err := s.walletRepo.AddToAmount(ctx, q, walletID, amount.Neg()); err != nil {
		return fmt.Errorf("debit: failed to update wallet balance: %w", err)
	}
	return nil
}

// Credit unconditionally adds amount to the wallet balance. An absent prior
// amount counts as zero. Refunds use this path regardless of the owner's
// status.
func (s *walletService) Credit(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}
	if err := s.walletRepo.AddToAmount(ctx, q, walletID, amount); err != nil {
		return fmt.Errorf("credit: failed to update wallet balance: %w", err)
	}
	return nil
}

// Deposit adds funds to a wallet after verifying the owner is ACTIVE.
func (s *walletService) Deposit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.walletRepo.GetWalletByID(ctx, txExecutor, walletID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to get wallet %s: %w", walletID, err)
	}

	owner, err := s.userRepo.GetUserByID(ctx, txExecutor, wallet.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to get wallet owner: %w", err)
	}
	if owner.Status != domain.UserStatusActive {
		return nil, fmt.Errorf("deposit: funds cannot be added to the wallet of an inactive user: %w", util.ErrActionDenied)
	}

	if err := s.Credit(ctx, txExecutor, walletID, amount); err != nil {
		return nil, err
	}

	updatedWallet, err := s.walletRepo.GetWalletByID(ctx, txExecutor, walletID)
	if err != nil {
		return nil, fmt.Errorf("deposit: failed to re-fetch updated wallet %s: %w", walletID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return updatedWallet, nil
}

// GetWallet retrieves a wallet by ID.
func (s *walletService) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, walletID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: failed to get wallet %s: %w", walletID, err)
	}
	return wallet, nil
}

// GetWalletByOwner retrieves the wallet owned by the given user.
func (s *walletService) GetWalletByOwner(ctx context.Context, ownerID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByOwnerID(ctx, s.dbExecutor, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get wallet by owner: failed to get wallet for user %s: %w", ownerID, err)
	}
	return wallet, nil
}

// DonationSummary returns the total donated from a wallet and the number of
// distinct sparks it has supported.
func (s *walletService) DonationSummary(ctx context.Context, walletID uuid.UUID) (*WalletDonationInfo, error) {
	donations, err := s.donationRepo.GetDonationsByWalletID(ctx, s.dbExecutor, walletID)
	if err != nil {
		return nil, fmt.Errorf("donation summary: %w", err)
	}
	total := decimal.Zero
	for _, d := range donations {
		total = total.Add(d.Amount)
	}
	count, err := s.donationRepo.CountDistinctSparksByWalletID(ctx, s.dbExecutor, walletID)
	if err != nil {
		return nil, fmt.Errorf("donation summary: %w", err)
	}
	return &WalletDonationInfo{TotalDonated: total, SparksSupported: count}, nil
}
