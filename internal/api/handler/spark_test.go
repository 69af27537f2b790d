// internal/api/handler/spark_test.go
package handler

import (
	"testing"

	"sparkfund/internal/domain"
	"sparkfund/internal/util"

	"github.com/stretchr/testify/assert"
)

// The filter vocabulary is closed: anything outside it is a validation error,
// never a silent fallback.

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"EDUCATION", "MEDICAL", "CHARITY", "SPORT", "ANIMALS", "OTHER"} {
		category, err := parseCategory(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, domain.SparkCategory(raw), category)
	}

	for _, raw := range []string{"", "GARDENING", "education", "Medical "} {
		_, err := parseCategory(raw)
		assert.ErrorIs(t, err, util.ErrInvalidInput, raw)
	}
}

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"ACTIVE", "COMPLETED", "CANCELLED"} {
		status, err := parseStatus(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, domain.SparkStatus(raw), status)
	}

	for _, raw := range []string{"", "DONE", "active"} {
		_, err := parseStatus(raw)
		assert.ErrorIs(t, err, util.ErrInvalidInput, raw)
	}
}

func TestParseOwnership(t *testing.T) {
	for _, raw := range []string{"MINE", "DONATED_TO"} {
		ownership, err := parseOwnership(raw)
		assert.NoError(t, err, raw)
		assert.Equal(t, domain.SparkOwnership(raw), ownership)
	}

	for _, raw := range []string{"", "THEIRS", "mine"} {
		_, err := parseOwnership(raw)
		assert.ErrorIs(t, err, util.ErrInvalidInput, raw)
	}
}
