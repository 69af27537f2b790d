// internal/service/signal_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"sparkfund/internal/domain"
	"sparkfund/internal/notify"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"

	"github.com/google/uuid"
)

// SignalService defines the interface for support-signal business logic.
type SignalService interface {
	Open(ctx context.Context, userID uuid.UUID, title, description string) (*domain.Signal, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error)
	ListOpen(ctx context.Context) ([]domain.Signal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Signal, error)
	// Resolve closes a signal with an admin response and notifies the author.
	Resolve(ctx context.Context, id uuid.UUID, adminResponse string) error
}

type signalService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	signalRepo repository.SignalRepository
	notifier   notify.Notifier
	logger     *slog.Logger
}

// NewSignalService creates a new instance of SignalService.
func NewSignalService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	signalRepo repository.SignalRepository,
	notifier notify.Notifier,
	logger *slog.Logger,
) SignalService {
	return &signalService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		signalRepo: signalRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Open files a new signal for the given user.
func (s *signalService) Open(ctx context.Context, userID uuid.UUID, title, description string) (*domain.Signal, error) {
	if title == "" || description == "" {
		return nil, util.ErrInvalidInput
	}
	if _, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID); err != nil {
		return nil, fmt.Errorf("open signal: failed to get user: %w", err)
	}
	signal := domain.NewSignal(userID, title, description)
	if err := s.signalRepo.CreateSignal(ctx, s.dbExecutor, signal); err != nil {
		return nil, fmt.Errorf("open signal: %w", err)
	}
	return signal, nil
}

// Get retrieves a signal by ID.
func (s *signalService) Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error) {
	signal, err := s.signalRepo.GetSignalByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get signal: %w", err)
	}
	return signal, nil
}

// ListOpen retrieves all OPEN signals, oldest first.
func (s *signalService) ListOpen(ctx context.Context) ([]domain.Signal, error) {
	signals, err := s.signalRepo.ListOpenSignals(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list open signals: %w", err)
	}
	return signals, nil
}

// ListByUser retrieves all signals filed by the given user, newest first.
func (s *signalService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Signal, error) {
	signals, err := s.signalRepo.ListSignalsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list signals by user: %w", err)
	}
	return signals, nil
}

// Resolve closes an OPEN signal and notifies its author.
func (s *signalService) Resolve(ctx context.Context, id uuid.UUID, adminResponse string) error {
	if adminResponse == "" {
		return util.ErrInvalidInput
	}
	signal, err := s.signalRepo.GetSignalByID(ctx, s.dbExecutor, id)
	if err != nil {
		return fmt.Errorf("resolve signal: %w", err)
	}
	if signal.Status != domain.SignalStatusOpen {
		return fmt.Errorf("resolve signal: signal is already closed: %w", util.ErrActionDenied)
	}
	if err := s.signalRepo.CloseSignal(ctx, s.dbExecutor, id, adminResponse); err != nil {
		return fmt.Errorf("resolve signal: %w", err)
	}

	author, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, signal.UserID)
	if err != nil {
		s.logger.Error("failed to get author for signal notification", "signal_id", id, "error", err)
		return nil
	}
	subject := "Your signal has been resolved"
	body := fmt.Sprintf("Your signal titled %q has been reviewed and closed by our team.\n\nAdmin Response:\n%q\n\nIf you have any further questions or concerns, feel free to reach out to us.\n\nBest regards,\nThe SparkFund Team", signal.Title, adminResponse)
	if err := s.notifier.Send(ctx, author.Email, subject, body); err != nil {
		s.logger.Error("failed to send signal notification", "recipient", author.Email, "error", err)
	}
	return nil
}
