// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "sparkfund/internal/api"
	"sparkfund/internal/api/handler"
	"sparkfund/internal/config"
	"sparkfund/internal/dedup"
	"sparkfund/internal/notify"
	"sparkfund/internal/repository"
	"sparkfund/internal/repository/postgres"
	"sparkfund/internal/scheduler"
	"sparkfund/internal/service"
	"sparkfund/internal/util"
	"sparkfund/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository     repository.UserRepository
	WalletRepository   repository.WalletRepository
	SparkRepository    repository.SparkRepository
	DonationRepository repository.DonationRepository
	SignalRepository   repository.SignalRepository

	// Outbound boundaries
	Notifier   notify.Notifier
	DedupGuard dedup.Guard

	// Services
	UserService     service.UserService
	WalletService   service.WalletService
	SparkService    service.SparkService
	DonationService service.DonationService
	SignalService   service.SignalService

	// Background sweeps
	CompletionSweeper *scheduler.CompletionSweeper
	ResendSweeper     *scheduler.ResendSweeper

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and apply migrations
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := db.RunMigrations(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.SparkRepository = postgres.NewSparkRepository(app.DB)
	app.DonationRepository = postgres.NewDonationRepository(app.DB)
	app.SignalRepository = postgres.NewSignalRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize outbound boundaries
	app.Notifier = notify.NewHTTPMailer(app.Config.MailServiceURL)
	app.DedupGuard = dedup.NewMemoryGuard()

	// 6. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.WalletRepository,
		app.DonationRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.SparkService = service.NewSparkService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.SparkRepository,
		app.WalletRepository,
		app.DonationRepository,
		app.WalletService,
		app.Notifier,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.DonationService = service.NewDonationService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.WalletRepository,
		app.SparkRepository,
		app.DonationRepository,
		app.WalletService,
		app.SparkService,
		app.Notifier,
		app.DedupGuard,
		app.Config.DedupTTL,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.UserService = service.NewUserService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.WalletService,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.SignalService = service.NewSignalService(
		app.DB,
		app.UserRepository,
		app.SignalRepository,
		app.Notifier,
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize background sweeps
	app.CompletionSweeper = scheduler.NewCompletionSweeper(app.SparkService, app.Config.SweepInterval, app.Logger)
	app.ResendSweeper = scheduler.NewResendSweeper(app.Notifier, app.Config.SweepInterval, app.Logger)

	// 8. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger)
	sparkHandler := handler.NewSparkHandler(app.SparkService, app.Logger)
	donationHandler := handler.NewDonationHandler(app.DonationService, app.Logger)
	signalHandler := handler.NewSignalHandler(app.SignalService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, walletHandler, sparkHandler, donationHandler, signalHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
