// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "sparkfund/internal"
	"sparkfund/internal/domain"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// TestMain is the special entry point for Go tests, executed once before all tests.
func TestMain(m *testing.M) {
	// 1. Set up environment variables (ensure DB_NAME points to the test database).
	// In a real CI/CD environment, these variables would be provided by the CI system.
	setupEnvVars()

	// 2. Initialize the application. Migrations run against the test database.
	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1) // Exit tests if initialization fails
	}

	// 3. Start an httptest server to test the HTTP handling layer.
	testServer = httptest.NewServer(testApp.HTTPHandler)
	// Ensure the server is closed after all tests are run.
	defer testServer.Close()

	// 4. Run all tests.
	code := m.Run()

	// 5. Shut down application resources after tests (e.g., database connections).
	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// setupEnvVars helper function: sets or checks database environment variables required for testing.
func setupEnvVars() {
	// Ensure these environment variables point to your test database
	if os.Getenv("DB_HOST") == "" {
		os.Setenv("DB_HOST", "localhost")
	}
	if os.Getenv("DB_PORT") == "" {
		os.Setenv("DB_PORT", "5432")
	}
	if os.Getenv("DB_USER") == "" {
		os.Setenv("DB_USER", "user") // Replace with your PostgreSQL username
	}
	if os.Getenv("DB_PASSWORD") == "" {
		os.Setenv("DB_PASSWORD", "password") // Replace with your PostgreSQL password
	}
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "sparkfund_test") // Ensure this is your test database name
	}
	if os.Getenv("DB_SSLMODE") == "" {
		os.Setenv("DB_SSLMODE", "disable")
	}
	// Keep the duplicate-submission window out of the way; it has its own tests.
	if os.Getenv("DEDUP_TTL") == "" {
		os.Setenv("DEDUP_TTL", "1ms")
	}
}

// clearDatabase helper function: truncates all relevant tables to ensure a clean database state for each test case.
func clearDatabase(t *testing.T) {
	// Order is important due to foreign key dependencies.
	tables := []string{"signals", "donations", "sparks", "wallets", "users"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// registerUser helper function: creates a user through the API and returns
// their ID together with the wallet ID.
func registerUser(t *testing.T, username string) (userID, walletID string) {
	body := fmt.Sprintf(`{"username": %q, "email": %q, "password": "s3cret"}`, username, username+"@example.com")
	resp, respBody := makeRequest(t, "POST", "/users", "", strings.NewReader(body))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, respBody)

	var result struct {
		User   struct{ ID string } `json:"user"`
		Wallet struct{ ID string } `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal([]byte(respBody), &result))
	return result.User.ID, result.Wallet.ID
}

// fundWallet helper function: sets the wallet balance directly. This is a
// test setup trick to avoid depending on the deposit endpoint in every test.
func fundWallet(t *testing.T, walletID string, amount decimal.Decimal) {
	_, err := testApp.DB.ExecContext(context.Background(), "UPDATE wallets SET amount = $1 WHERE id = $2", amount, walletID)
	require.NoError(t, err)
}

// createSpark helper function: creates an active spark through the API.
func createSpark(t *testing.T, creatorID string, goal decimal.Decimal) string {
	body := fmt.Sprintf(`{"title": "Shelter roof", "description": "New roof for the shelter", "goal_amount": "%s", "category": "ANIMALS", "first_picture_url": "https://cdn.example.com/roof.png"}`, goal.String())
	resp, respBody := makeRequest(t, "POST", "/sparks", creatorID, strings.NewReader(body))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, respBody)

	var spark struct{ ID string }
	require.NoError(t, json.Unmarshal([]byte(respBody), &spark))
	return spark.ID
}

// makeRequest helper function: sends an HTTP request to the test server.
// A non-empty userID goes out as the X-User-ID header.
func makeRequest(t *testing.T, method, path, userID string, body io.Reader) (*http.Response, string) {
	req, err := http.NewRequest(method, testServer.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

// walletAmount helper function: reads a wallet balance via the API.
func walletAmount(t *testing.T, walletID string) decimal.Decimal {
	resp, body := makeRequest(t, "GET", "/wallets/"+walletID, "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var wallet struct{ Amount string }
	require.NoError(t, json.Unmarshal([]byte(body), &wallet))
	amount, err := decimal.NewFromString(wallet.Amount)
	require.NoError(t, err)
	return amount
}

// TestDonationIntegration exercises the donate endpoint end to end: balance
// movement, conservation on failure, and the insufficient-funds boundary.
func TestDonationIntegration(t *testing.T) {
	clearDatabase(t)
	creatorID, _ := registerUser(t, "spark_creator")
	donorID, donorWalletID := registerUser(t, "donor")
	fundWallet(t, donorWalletID, decimal.NewFromInt(100))
	sparkID := createSpark(t, creatorID, decimal.NewFromInt(500))

	t.Run("SuccessfulDonation", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", donorID, strings.NewReader(`{"amount": "60"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
		assert.True(t, decimal.NewFromInt(40).Equal(walletAmount(t, donorWalletID)))

		respSpark, sparkBody := makeRequest(t, "GET", "/sparks/"+sparkID, "", nil)
		defer respSpark.Body.Close()
		var spark struct {
			CurrentAmount string `json:"current_amount"`
			Status        string `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(sparkBody), &spark))
		current, err := decimal.NewFromString(spark.CurrentAmount)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(60).Equal(current))
		assert.Equal(t, string(domain.SparkStatusActive), spark.Status)
	})

	t.Run("InsufficientFundsLeavesBalancesUntouched", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", donorID, strings.NewReader(`{"amount": "41"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
		assert.Contains(t, body, "Insufficient funds")
		assert.True(t, decimal.NewFromInt(40).Equal(walletAmount(t, donorWalletID)))
	})

	t.Run("ExactBalanceDonationSucceeds", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", donorID, strings.NewReader(`{"amount": "40"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode, body)
		assert.True(t, walletAmount(t, donorWalletID).IsZero())
	})

	t.Run("BelowMinimumRejected", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", donorID, strings.NewReader(`{"amount": "0.50"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("MissingActingUserDenied", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", "", strings.NewReader(`{"amount": "10"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

// TestCancelIntegration exercises cancellation with refunds: wallets are made
// whole, the spark resets and ends CANCELLED, and donation rows survive as an
// audit trail.
func TestCancelIntegration(t *testing.T) {
	clearDatabase(t)
	creatorID, _ := registerUser(t, "cancel_creator")
	donorID, donorWalletID := registerUser(t, "cancel_donor")
	fundWallet(t, donorWalletID, decimal.NewFromInt(100))
	sparkID := createSpark(t, creatorID, decimal.NewFromInt(500))

	resp, body := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", donorID, strings.NewReader(`{"amount": "60"}`))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	require.True(t, decimal.NewFromInt(40).Equal(walletAmount(t, donorWalletID)))

	t.Run("CancelRefundsDonors", func(t *testing.T) {
		resp, body := makeRequest(t, "POST", "/sparks/"+sparkID+"/cancel", creatorID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, body)
		assert.True(t, decimal.NewFromInt(100).Equal(walletAmount(t, donorWalletID)))

		respSpark, sparkBody := makeRequest(t, "GET", "/sparks/"+sparkID, "", nil)
		defer respSpark.Body.Close()
		var spark struct {
			CurrentAmount string `json:"current_amount"`
			Status        string `json:"status"`
		}
		require.NoError(t, json.Unmarshal([]byte(sparkBody), &spark))
		current, err := decimal.NewFromString(spark.CurrentAmount)
		require.NoError(t, err)
		assert.True(t, current.IsZero())
		assert.Equal(t, string(domain.SparkStatusCancelled), spark.Status)

		// The donation record is preserved.
		var donationCount int
		err = testApp.DB.GetContext(context.Background(), &donationCount, "SELECT COUNT(*) FROM donations WHERE spark_id = $1", sparkID)
		require.NoError(t, err)
		assert.Equal(t, 1, donationCount)
	})

	t.Run("SecondCancelDenied", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", "/sparks/"+sparkID+"/cancel", creatorID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("DonationToCancelledSparkDenied", func(t *testing.T) {
		resp, _ := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", donorID, strings.NewReader(`{"amount": "10"}`))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

// TestSparkListingIntegration exercises the closed filter vocabulary.
func TestSparkListingIntegration(t *testing.T) {
	clearDatabase(t)
	creatorID, _ := registerUser(t, "list_creator")
	createSpark(t, creatorID, decimal.NewFromInt(300))

	t.Run("DefaultListingShowsActive", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/sparks", "", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var listing struct {
			Data  []json.RawMessage `json:"data"`
			Count int               `json:"count"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &listing))
		assert.Equal(t, 1, listing.Count)
	})

	t.Run("UnknownCategoryRejected", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/sparks?category=GARDENING", "", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("OwnershipFilterRequiresActingUser", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/sparks?ownership=MINE", "", nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("OwnershipMine", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/sparks?ownership=MINE", creatorID, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var listing struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &listing))
		assert.Equal(t, 1, listing.Count)
	})
}

// TestDonationStatsIntegration exercises the landing-page aggregate.
func TestDonationStatsIntegration(t *testing.T) {
	clearDatabase(t)
	creatorID, _ := registerUser(t, "stats_creator")
	sparkID := createSpark(t, creatorID, decimal.NewFromInt(1000))

	donors := []struct {
		name   string
		amount string
	}{
		{"stats_ana", "18.10"},
		{"stats_boris", "17"},
		{"stats_elena", "15"},
		{"stats_ivan", "1"},
	}
	for _, d := range donors {
		id, walletID := registerUser(t, d.name)
		fundWallet(t, walletID, decimal.NewFromInt(100))
		resp, body := makeRequest(t, "POST", "/sparks/"+sparkID+"/donations", id, strings.NewReader(fmt.Sprintf(`{"amount": %q}`, d.amount)))
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	}

	resp, body := makeRequest(t, "GET", "/stats/donations", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		TotalRaised  string `json:"total_raised"`
		SparksFunded int    `json:"sparks_funded"`
		TopDonors    []struct {
			Username string `json:"username"`
			Total    string `json:"total"`
		} `json:"top_donors"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &stats))

	// 18.10 + 17 + 15 + 1 = 51.10, rounded to a whole euro.
	total, err := decimal.NewFromString(stats.TotalRaised)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(51).Equal(total), "got %s", stats.TotalRaised)
	assert.Equal(t, 1, stats.SparksFunded)
	require.Len(t, stats.TopDonors, 3)
	assert.Equal(t, "stats_ana", stats.TopDonors[0].Username)
	assert.Equal(t, "stats_boris", stats.TopDonors[1].Username)
	assert.Equal(t, "stats_elena", stats.TopDonors[2].Username)
}

// TestUserIntegration exercises registration and the status switch.
func TestUserIntegration(t *testing.T) {
	clearDatabase(t)

	t.Run("DuplicateUsernameConflicts", func(t *testing.T) {
		registerUser(t, "taken")
		body := `{"username": "taken", "email": "other@example.com", "password": "s3cret"}`
		resp, _ := makeRequest(t, "POST", "/users", "", strings.NewReader(body))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("InactiveUserCannotCreateSpark", func(t *testing.T) {
		userID, _ := registerUser(t, "to_deactivate")
		resp, _ := makeRequest(t, "PUT", "/users/"+userID+"/status", "", strings.NewReader(`{"status": "INACTIVE"}`))
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		sparkBody := `{"title": "t", "description": "d", "goal_amount": "100", "category": "OTHER", "first_picture_url": "u"}`
		respSpark, _ := makeRequest(t, "POST", "/sparks", userID, strings.NewReader(sparkBody))
		defer respSpark.Body.Close()

		assert.Equal(t, http.StatusForbidden, respSpark.StatusCode)
	})
}
