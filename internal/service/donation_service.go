// internal/service/donation_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"sparkfund/internal/dedup"
	"sparkfund/internal/domain"
	"sparkfund/internal/notify"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"
	"sparkfund/pkg/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonorRank is one entry on the top-donors board.
type DonorRank struct {
	Username       string          `json:"username"`
	ProfilePicture *string         `json:"profile_picture"`
	Total          decimal.Decimal `json:"total"`
}

// TotalDonationsInfo aggregates platform-wide donation statistics.
// TopDonors holds up to three donors in descending order of total donated;
// unfilled ranks have an empty username and a zero total.
type TotalDonationsInfo struct {
	TotalRaised  decimal.Decimal `json:"total_raised"` // Rounded to whole euro
	SparksFunded int             `json:"sparks_funded"`
	TopDonors    [3]DonorRank    `json:"top_donors"`
}

// DonationService defines the interface for donation business logic.
type DonationService interface {
	// Record moves amount from the user's wallet to the spark and persists
	// the donation, all as one atomic unit.
	Record(ctx context.Context, userID, sparkID uuid.UUID, amount decimal.Decimal, message *string) (*domain.Donation, error)
	// TotalDonationsInfo computes platform-wide donation statistics.
	TotalDonationsInfo(ctx context.Context) (*TotalDonationsInfo, error)
}

// donationService implements the DonationService interface.
type donationService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	walletRepo repository.WalletRepository
	sparkRepo  repository.SparkRepository
	donRepo    repository.DonationRepository
	walletSvc  WalletService
	sparkSvc   SparkService
	notifier   notify.Notifier
	guard      dedup.Guard
	guardTTL   time.Duration
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	logger     *slog.Logger
}

// NewDonationService creates a new instance of DonationService.
func NewDonationService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletRepo repository.WalletRepository,
	sparkRepo repository.SparkRepository,
	donRepo repository.DonationRepository,
	walletSvc WalletService,
	sparkSvc SparkService,
	notifier notify.Notifier,
	guard dedup.Guard,
	guardTTL time.Duration,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) DonationService {
	return &donationService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		walletRepo: walletRepo,
		sparkRepo:  sparkRepo,
		donRepo:    donRepo,
		walletSvc:  walletSvc,
		sparkSvc:   sparkSvc,
		notifier:   notifier,
		guard:      guard,
		guardTTL:   guardTTL,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		logger:     logger,
	}
}

// Record validates the donation, then debits the donor wallet, raises the
// spark's accumulated amount and inserts the donation record in one
// transaction. Any failure after the debit rolls the whole unit back, so
// wallet and spark balances stay conserved.
func (s *donationService) Record(ctx context.Context, userID, sparkID uuid.UUID, amount decimal.Decimal, message *string) (*domain.Donation, error) {
	if amount.LessThan(domain.MinDonationAmount) {
		return nil, fmt.Errorf("record donation: amount must be at least %s: %w", domain.MinDonationAmount, util.ErrInvalidInput)
	}
	if message != nil && len(*message) > domain.MaxDonationMessageLength {
		return nil, fmt.Errorf("record donation: message cannot exceed %d symbols: %w", domain.MaxDonationMessageLength, util.ErrInvalidInput)
	}

	key := fmt.Sprintf("donate;%s;%s", sparkID, userID)
	if !s.guard.CheckAndMark(key, s.guardTTL) {
		return nil, util.ErrDuplicateSubmission
	}

	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("record donation: failed to get user: %w", err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, fmt.Errorf("record donation: inactive user cannot make donation: %w", util.ErrActionDenied)
	}

	spark, err := s.sparkRepo.GetSparkByID(ctx, s.dbExecutor, sparkID)
	if err != nil {
		return nil, fmt.Errorf("record donation: failed to get spark: %w", err)
	}
	if spark.Status != domain.SparkStatusActive {
		return nil, fmt.Errorf("record donation: cannot donate to a spark that is not active: %w", util.ErrActionDenied)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("record donation: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("record donation: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.walletRepo.GetWalletByOwnerID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("record donation: failed to get donor wallet: %w", err)
	}

	if err := s.walletSvc.Debit(ctx, txExecutor, wallet.ID, amount); err != nil {
		return nil, err
	}

	donation := domain.NewDonation(wallet.ID, sparkID, amount, message)

	if err := s.sparkSvc.IncreaseCurrentAmount(ctx, txExecutor, sparkID, amount); err != nil {
		return nil, err
	}

	if err := s.donRepo.CreateDonation(ctx, txExecutor, donation); err != nil {
		return nil, fmt.Errorf("record donation: failed to persist donation: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("record donation: failed to commit transaction: %w", err)
	}

	s.notifyCreator(ctx, spark, user.Username, message, amount)

	return donation, nil
}

// notifyCreator tells the spark's creator about a received donation.
// Failures are logged; the resend sweep picks them up on the mail side.
func (s *donationService) notifyCreator(ctx context.Context, spark *domain.Spark, donorName string, message *string, amount decimal.Decimal) {
	creator, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, spark.CreatorID)
	if err != nil {
		s.logger.Error("failed to get creator for donation notification", "spark_id", spark.ID, "error", err)
		return
	}
	subject := "Your Spark received donation"
	body := fmt.Sprintf("Your Spark [%s] received donation for %s euro from donor with username: %s", spark.Title, amount.StringFixed(2), donorName)
	if message != nil && *message != "" {
		body += fmt.Sprintf("\n\n They sent you the following message: %s", *message)
	}
	if err := s.notifier.Send(ctx, creator.Email, subject, body); err != nil {
		s.logger.Error("failed to send donation notification", "recipient", creator.Email, "error", err)
	}
}

// TotalDonationsInfo computes the grand total raised, the number of funded
// sparks, and the top three donors with at least one euro donated.
func (s *donationService) TotalDonationsInfo(ctx context.Context) (*TotalDonationsInfo, error) {
	totals, err := s.walletRepo.ListDonorTotals(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("total donations info: %w", err)
	}

	grandTotal := decimal.Zero
	candidates := make([]repository.DonorTotal, 0, len(totals))
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Total)
		if t.Total.GreaterThanOrEqual(domain.MinDonationAmount) {
			candidates = append(candidates, t)
		}
	}

	// Stable sort keeps the underlying (username) order for equal totals.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Total.GreaterThan(candidates[j].Total)
	})

	sparksFunded, err := s.sparkRepo.CountFunded(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("total donations info: %w", err)
	}

	info := &TotalDonationsInfo{
		TotalRaised:  grandTotal.Round(0),
		SparksFunded: sparksFunded,
	}
	for i := range info.TopDonors {
		info.TopDonors[i].Total = decimal.Zero
		if i < len(candidates) {
			info.TopDonors[i] = DonorRank{
				Username:       candidates[i].Username,
				ProfilePicture: candidates[i].ProfilePicture,
				Total:          candidates[i].Total,
			}
		}
	}
	return info, nil
}
