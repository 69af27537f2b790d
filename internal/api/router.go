// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sparkfund/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	userHandler *handler.UserHandler,
	walletHandler *handler.WalletHandler,
	sparkHandler *handler.SparkHandler,
	donationHandler *handler.DonationHandler,
	signalHandler *handler.SignalHandler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)                       // Add a request ID to the context
	r.Use(middleware.RealIP)                          // Use the real IP address
	r.Use(middleware.Logger)                          // Log HTTP requests
	r.Use(middleware.Recoverer)                       // Recover from panics and return 500
	r.Use(middleware.Timeout(handler.DefaultTimeout)) // Set a default timeout for requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Account routes
	r.Post("/users", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/", userHandler.GetUser)
		r.Put("/status", userHandler.SetStatus)
	})

	// Wallet routes
	r.Route("/wallets/{walletID}", func(r chi.Router) {
		r.Get("/", walletHandler.GetWallet)
		r.Post("/deposit", walletHandler.Deposit)
		r.Get("/summary", walletHandler.GetDonationSummary)
	})
	r.Get("/me/wallet", walletHandler.GetOwnWallet)

	// Spark routes
	r.Route("/sparks", func(r chi.Router) {
		r.Post("/", sparkHandler.Create)
		r.Get("/", sparkHandler.List)
		r.Route("/{sparkID}", func(r chi.Router) {
			r.Get("/", sparkHandler.Get)
			r.Put("/", sparkHandler.Update)
			r.Post("/cancel", sparkHandler.Cancel)
			r.Post("/donations", donationHandler.Donate)
		})
	})

	// Donation statistics for the landing page
	r.Get("/stats/donations", donationHandler.Stats)

	// Support signal routes
	r.Route("/signals", func(r chi.Router) {
		r.Post("/", signalHandler.Open)
		r.Get("/open", signalHandler.ListOpen)
		r.Route("/{signalID}", func(r chi.Router) {
			r.Get("/", signalHandler.Get)
			r.Post("/resolve", signalHandler.Resolve)
		})
	})
	r.Get("/me/signals", signalHandler.ListMine)

	return r
}
