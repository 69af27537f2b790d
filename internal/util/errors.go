// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input provided")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrActionDenied        = errors.New("action denied")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrDuplicateEntry      = errors.New("duplicate entry") // For cases like registering with an existing username
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrSparkNotFound       = errors.New("spark not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrSignalNotFound      = errors.New("signal not found")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
