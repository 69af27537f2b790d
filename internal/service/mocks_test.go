// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"sparkfund/internal/domain"
	"sparkfund/internal/notify"
	"sparkfund/internal/repository"
	"sparkfund/pkg/db"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, q repository.DBExecutor, username string) (*domain.User, error) {
	args := m.Called(ctx, q, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserStatus(ctx context.Context, q repository.DBExecutor, id uuid.UUID, status domain.UserStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByOwnerID(ctx context.Context, q repository.DBExecutor, ownerID uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, q, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletForUpdate(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) AddToAmount(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) ListDonorTotals(ctx context.Context, q repository.DBExecutor) ([]repository.DonorTotal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DonorTotal), args.Error(1)
}

// MockSparkRepository is a mock implementation of repository.SparkRepository.
type MockSparkRepository struct {
	mock.Mock
}

func (m *MockSparkRepository) CreateSpark(ctx context.Context, q repository.DBExecutor, spark *domain.Spark) error {
	args := m.Called(ctx, q, spark)
	return args.Error(0)
}

func (m *MockSparkRepository) GetSparkByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Spark, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Spark), args.Error(1)
}

func (m *MockSparkRepository) UpdateSpark(ctx context.Context, q repository.DBExecutor, spark *domain.Spark) error {
	args := m.Called(ctx, q, spark)
	return args.Error(0)
}

func (m *MockSparkRepository) AddToCurrentAmount(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, q, sparkID, delta)
	return args.Error(0)
}

func (m *MockSparkRepository) SetStatus(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID, status domain.SparkStatus) error {
	args := m.Called(ctx, q, sparkID, status)
	return args.Error(0)
}

func (m *MockSparkRepository) ZeroCurrentAmount(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID) error {
	args := m.Called(ctx, q, sparkID)
	return args.Error(0)
}

func (m *MockSparkRepository) ListSparks(ctx context.Context, q repository.DBExecutor, viewerID uuid.UUID, filter domain.SparkFilter) ([]domain.Spark, error) {
	args := m.Called(ctx, q, viewerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Spark), args.Error(1)
}

func (m *MockSparkRepository) ListCompletable(ctx context.Context, q repository.DBExecutor) ([]domain.Spark, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Spark), args.Error(1)
}

func (m *MockSparkRepository) CountFunded(ctx context.Context, q repository.DBExecutor) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

// MockDonationRepository is a mock implementation of repository.DonationRepository.
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) CreateDonation(ctx context.Context, q repository.DBExecutor, donation *domain.Donation) error {
	args := m.Called(ctx, q, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) GetDonationsBySparkID(ctx context.Context, q repository.DBExecutor, sparkID uuid.UUID) ([]domain.Donation, error) {
	args := m.Called(ctx, q, sparkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetDonationsByWalletID(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID) ([]domain.Donation, error) {
	args := m.Called(ctx, q, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) CountDistinctSparksByWalletID(ctx context.Context, q repository.DBExecutor, walletID uuid.UUID) (int, error) {
	args := m.Called(ctx, q, walletID)
	return args.Int(0), args.Error(1)
}

// MockSignalRepository is a mock implementation of repository.SignalRepository.
type MockSignalRepository struct {
	mock.Mock
}

func (m *MockSignalRepository) CreateSignal(ctx context.Context, q repository.DBExecutor, signal *domain.Signal) error {
	args := m.Called(ctx, q, signal)
	return args.Error(0)
}

func (m *MockSignalRepository) GetSignalByID(ctx context.Context, q repository.DBExecutor, id uuid.UUID) (*domain.Signal, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Signal), args.Error(1)
}

func (m *MockSignalRepository) ListOpenSignals(ctx context.Context, q repository.DBExecutor) ([]domain.Signal, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Signal), args.Error(1)
}

func (m *MockSignalRepository) ListSignalsByUserID(ctx context.Context, q repository.DBExecutor, userID uuid.UUID) ([]domain.Signal, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Signal), args.Error(1)
}

func (m *MockSignalRepository) CloseSignal(ctx context.Context, q repository.DBExecutor, id uuid.UUID, adminResponse string) error {
	args := m.Called(ctx, q, id, adminResponse)
	return args.Error(0)
}

// MockNotifier is a mock implementation of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

func (m *MockNotifier) FailedMessages(ctx context.Context) ([]notify.FailedMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notify.FailedMessage), args.Error(1)
}

func (m *MockNotifier) DeleteFailed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It also implicitly implements repository.DBExecutor for testing purposes
// by embedding MockDBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor // Embed MockDBExecutor to satisfy repository.DBExecutor interface
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// txFuncs wires a MockTxController into the injectable transaction functions.
func txFuncs(txc *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return txc, nil
	}
	commit := func(tx db.TxController) error {
		return txc.Commit()
	}
	rollback := func(tx db.TxController) {
		_ = txc.Rollback()
	}
	return begin, commit, rollback
}
