// internal/service/user_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sparkfund/internal/domain"
	"sparkfund/internal/repository"
	"sparkfund/internal/util"
	"sparkfund/pkg/db"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	LastName  *string
}

// UserService defines the interface for user account business logic.
type UserService interface {
	// Register creates a user and their wallet in one transaction.
	Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Wallet, error)
	// Authenticate verifies a username/password pair.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// SetStatus switches a user between ACTIVE and INACTIVE (admin action).
	SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) error
}

// userService implements the UserService interface.
type userService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	walletSvc  WalletService
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	logger     *slog.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	walletSvc WalletService,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) UserService {
	return &userService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		walletSvc:  walletSvc,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		logger:     logger,
	}
}

// Register creates a new active user and a zero-balance wallet for them.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Wallet, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, nil, util.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("register: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("register: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByUsername(ctx, txExecutor, input.Username)
	if err == nil {
		return nil, nil, fmt.Errorf("register: username '%s' is taken: %w", input.Username, util.ErrDuplicateEntry)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}

	user := domain.NewUser(input.Username, input.Email, string(hash))
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		return nil, nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	wallet, err := s.walletSvc.CreateWallet(ctx, txExecutor, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("register: failed to commit transaction: %w", err)
	}

	return user, wallet, nil
}

// Authenticate verifies the password against the stored hash.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authenticate: wrong password: %w", util.ErrActionDenied)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// SetStatus switches a user between ACTIVE and INACTIVE.
func (s *userService) SetStatus(ctx context.Context, id uuid.UUID, status domain.UserStatus) error {
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return util.ErrInvalidInput
	}
	if err := s.userRepo.UpdateUserStatus(ctx, s.dbExecutor, id, status); err != nil {
		return fmt.Errorf("set user status: %w", err)
	}
	return nil
}
