package apperr

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", Validation("insufficient balance: required %s, available %s", "505.00", "100.00"), IsValidation},
		{"conflict", Conflict("AAPL", "cannot short AAPL while holding a long position"), IsConflict},
		{"not found", NotFound("game", "g-1"), IsNotFound},
		{"rate limited", &RateLimitedError{Limit: 100, ResetAt: time.Now()}, IsRateLimited},
		{"external", &ExternalAPIError{Provider: "marketstack", StatusCode: 401, Message: "invalid key"}, IsExternalAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestKindsDoNotOverlap(t *testing.T) {
	err := Conflict("AAPL", "conflict")
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsRateLimited(err))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "game g-1 not found", NotFound("game", "g-1").Error())
	assert.Equal(t, "price not found", NotFound("price", "").Error())

	ext := &ExternalAPIError{Provider: "marketstack", StatusCode: 422, Code: "validation_error", Message: "bad symbols"}
	assert.Equal(t, "marketstack error (status 422, code validation_error): bad symbols", ext.Error())
}
