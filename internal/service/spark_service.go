// internal/service/spark_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"sparkfund/internal/domain"
	"sparkfund/internal/notify"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"
	"sparkfund/pkg/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManageSparkInput carries the caller-editable fields of a spark.
type ManageSparkInput struct {
	Title            string
	Description      string
	GoalAmount       decimal.Decimal
	InitialAmount    *decimal.Decimal // Create only; nil starts at zero
	Category         domain.SparkCategory
	FirstPictureURL  string
	SecondPictureURL *string
	ThirdPictureURL  *string
}

// SparkService defines the interface for campaign business logic.
//
// IncreaseCurrentAmount takes a DBExecutor so the donation recorder can run
// it inside its own transaction.
type SparkService interface {
	Create(ctx context.Context, creatorID uuid.UUID, input ManageSparkInput) (*domain.Spark, error)
	Update(ctx context.Context, sparkID, userID uuid.UUID, input ManageSparkInput) (*domain.Spark, error)
	Get(ctx context.Context, sparkID uuid.UUID) (*domain.Spark, error)
	List(ctx context.Context, viewerID uuid.UUID, filter domain.SparkFilter) ([]domain.Spark, error)
	IncreaseCurrentAmount(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID, amount decimal.Decimal) error
	CancelAndRefund(ctx context.Context, sparkID uuid.UUID) error
	Complete(ctx context.Context, sparkID uuid.UUID) error
	FindCompletable(ctx context.Context) ([]domain.Spark, error)
}

// sparkService implements the SparkService interface.
type sparkService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	sparkRepo  repository.SparkRepository
	walletRepo repository.WalletRepository
	donRepo    repository.DonationRepository
	walletSvc  WalletService
	notifier   notify.Notifier
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	logger     *slog.Logger
}

// NewSparkService creates a new instance of SparkService.
func NewSparkService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	sparkRepo repository.SparkRepository,
	walletRepo repository.WalletRepository,
	donRepo repository.DonationRepository,
	walletSvc WalletService,
	notifier notify.Notifier,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) SparkService {
	return &sparkService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		sparkRepo:  sparkRepo,
		walletRepo: walletRepo,
		donRepo:    donRepo,
		walletSvc:  walletSvc,
		notifier:   notifier,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		logger:     logger,
	}
}

func validateSparkInput(input ManageSparkInput) error {
	if input.Title == "" || input.Description == "" {
		return util.ErrInvalidInput
	}
	if input.GoalAmount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}
	if input.InitialAmount != nil && input.InitialAmount.IsNegative() {
		return util.ErrInvalidInput
	}
	return nil
}

// Create creates a new ACTIVE spark. Only ACTIVE users can create sparks.
func (s *sparkService) Create(ctx context.Context, creatorID uuid.UUID, input ManageSparkInput) (*domain.Spark, error) {
	if err := validateSparkInput(input); err != nil {
		return nil, err
	}

	creator, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, creatorID)
	if err != nil {
		return nil, fmt.Errorf("create spark: failed to get creator: %w", err)
	}
	if creator.Status != domain.UserStatusActive {
		return nil, fmt.Errorf("create spark: inactive users cannot create sparks: %w", util.ErrActionDenied)
	}

	spark := domain.NewSpark(creatorID, input.Title, input.Description, input.GoalAmount, input.InitialAmount, input.Category)
	spark.FirstPictureURL = input.FirstPictureURL
	spark.SecondPictureURL = input.SecondPictureURL
	spark.ThirdPictureURL = input.ThirdPictureURL

	if err := s.sparkRepo.CreateSpark(ctx, s.dbExecutor, spark); err != nil {
		return nil, fmt.Errorf("create spark: %w", err)
	}
	return spark, nil
}

// Update changes the mutable fields of an ACTIVE spark, including the goal
// amount. Only ACTIVE users may update, and only ACTIVE sparks can change.
func (s *sparkService) Update(ctx context.Context, sparkID, userID uuid.UUID, input ManageSparkInput) (*domain.Spark, error) {
	if err := validateSparkInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("update spark: failed to get user: %w", err)
	}
	if user.Status != domain.UserStatusActive {
		return nil, fmt.Errorf("update spark: inactive users cannot update sparks: %w", util.ErrActionDenied)
	}

	spark, err := s.sparkRepo.GetSparkByID(ctx, s.dbExecutor, sparkID)
	if err != nil {
		return nil, fmt.Errorf("update spark: %w", err)
	}
	if spark.Status != domain.SparkStatusActive {
		return nil, fmt.Errorf("update spark: only active sparks can be updated: %w", util.ErrActionDenied)
	}

	spark.Title = input.Title
	spark.Description = input.Description
	spark.GoalAmount = input.GoalAmount
	spark.Category = input.Category
	spark.FirstPictureURL = input.FirstPictureURL
	spark.SecondPictureURL = input.SecondPictureURL
	spark.ThirdPictureURL = input.ThirdPictureURL

	if err := s.sparkRepo.UpdateSpark(ctx, s.dbExecutor, spark); err != nil {
		return nil, fmt.Errorf("update spark: %w", err)
	}
	return spark, nil
}

// Get retrieves a spark by ID.
func (s *sparkService) Get(ctx context.Context, sparkID uuid.UUID) (*domain.Spark, error) {
	spark, err := s.sparkRepo.GetSparkByID(ctx, s.dbExecutor, sparkID)
	if err != nil {
		return nil, fmt.Errorf("get spark: %w", err)
	}
	return spark, nil
}

// List retrieves sparks matching the filter. A zero filter lists all active
// sparks, newest first.
func (s *sparkService) List(ctx context.Context, viewerID uuid.UUID, filter domain.SparkFilter) ([]domain.Spark, error) {
	sparks, err := s.sparkRepo.ListSparks(ctx, s.dbExecutor, viewerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list sparks: %w", err)
	}
	return sparks, nil
}

// IncreaseCurrentAmount adds amount to the spark's accumulated total inside
// the caller's transaction. Overshoot past the goal is allowed; the
// completion sweep picks it up.
func (s *sparkService) IncreaseCurrentAmount(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return util.ErrInvalidInput
	}
	if err := s.sparkRepo.AddToCurrentAmount(ctx, q, sparkID, amount); err != nil {
		return fmt.Errorf("increase current amount: %w", err)
	}
	return nil
}

// refundNote pairs a queued refund notification with its recipient.
type refundNote struct {
	email  string
	amount decimal.Decimal
}

// CancelAndRefund cancels an ACTIVE spark. Every donation is returned to its
// origin wallet regardless of the donor's status, the accumulated amount is
// reset to zero, and the spark becomes CANCELLED. The refunds and the state
// change commit as one transaction; donor notifications go out afterwards.
func (s *sparkService) CancelAndRefund(ctx context.Context, sparkID uuid.UUID) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("cancel spark: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("cancel spark: transaction controller does not implement DBExecutor")
	}

	spark, err := s.sparkRepo.GetSparkByID(ctx, txExecutor, sparkID)
	if err != nil {
		return fmt.Errorf("cancel spark: %w", err)
	}
	if spark.Status != domain.SparkStatusActive {
		return fmt.Errorf("cancel spark: spark is already %s: %w", spark.Status, util.ErrActionDenied)
	}

	var notes []refundNote
	if !spark.CurrentAmount.IsZero() {
		donations, err := s.donRepo.GetDonationsBySparkID(ctx, txExecutor, sparkID)
		if err != nil {
			return fmt.Errorf("cancel spark: failed to load donations: %w", err)
		}
		if len(donations) > 0 {
			for _, donation := range donations {
				if err := s.walletSvc.Credit(ctx, txExecutor, donation.WalletID, donation.Amount); err != nil {
					return fmt.Errorf("cancel spark: failed to refund donation %s: %w", donation.ID, err)
				}
				wallet, err := s.walletRepo.GetWalletByID(ctx, txExecutor, donation.WalletID)
				if err != nil {
					return fmt.Errorf("cancel spark: failed to get donor wallet: %w", err)
				}
				donor, err := s.userRepo.GetUserByID(ctx, txExecutor, wallet.OwnerID)
				if err != nil {
					return fmt.Errorf("cancel spark: failed to get donor: %w", err)
				}
				notes = append(notes, refundNote{email: donor.Email, amount: donation.Amount})
			}
			if err := s.sparkRepo.ZeroCurrentAmount(ctx, txExecutor, sparkID); err != nil {
				return fmt.Errorf("cancel spark: %w", err)
			}
		}
	}

	if err := s.sparkRepo.SetStatus(ctx, txExecutor, sparkID, domain.SparkStatusCancelled); err != nil {
		return fmt.Errorf("cancel spark: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("cancel spark: failed to commit transaction: %w", err)
	}

	for _, note := range notes {
		subject := "Refund from SparkFund"
		body := fmt.Sprintf("Spark [%s] was cancelled and your donation for %s euro is refunded", spark.Title, note.amount.StringFixed(2))
		if err := s.notifier.Send(ctx, note.email, subject, body); err != nil {
			s.logger.Error("failed to send refund notification", "recipient", note.email, "error", err)
		}
	}
	return nil
}

// Complete promotes an ACTIVE spark to COMPLETED and notifies its creator.
func (s *sparkService) Complete(ctx context.Context, sparkID uuid.UUID) error {
	spark, err := s.sparkRepo.GetSparkByID(ctx, s.dbExecutor, sparkID)
	if err != nil {
		return fmt.Errorf("complete spark: %w", err)
	}
	if spark.Status != domain.SparkStatusActive {
		return fmt.Errorf("complete spark: spark is already %s: %w", spark.Status, util.ErrActionDenied)
	}

	if err := s.sparkRepo.SetStatus(ctx, s.dbExecutor, sparkID, domain.SparkStatusCompleted); err != nil {
		return fmt.Errorf("complete spark: %w", err)
	}

	creator, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, spark.CreatorID)
	if err != nil {
		s.logger.Error("failed to get creator for completion notification", "spark_id", sparkID, "error", err)
		return nil
	}
	subject := "Your Spark is completed"
	body := fmt.Sprintf("Your Spark [%s] is completed after the goal amount of %s was raised!", spark.Title, spark.GoalAmount.StringFixed(2))
	if err := s.notifier.Send(ctx, creator.Email, subject, body); err != nil {
		s.logger.Error("failed to send completion notification", "recipient", creator.Email, "error", err)
	}
	return nil
}

// FindCompletable returns ACTIVE sparks whose accumulated amount has reached
// the goal.
func (s *sparkService) FindCompletable(ctx context.Context) ([]domain.Spark, error) {
	sparks, err := s.sparkRepo.ListCompletable(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("find completable sparks: %w", err)
	}
	return sparks, nil
}
