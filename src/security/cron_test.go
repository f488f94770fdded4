package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronGuard_PlainSecret(t *testing.T) {
	g := NewCronGuard(Config{CronSecret: "s3cret"})
	assert.NoError(t, g.Verify("s3cret"))
	assert.Error(t, g.Verify("s3cre"))
	assert.Error(t, g.Verify(""))
}

func TestCronGuard_HashWins(t *testing.T) {
	hash, err := HashSecret("from-hash")
	require.NoError(t, err)

	g := NewCronGuard(Config{CronSecret: "plain", CronSecretHash: hash})
	assert.NoError(t, g.Verify("from-hash"))
	assert.Error(t, g.Verify("plain"))
}

func TestCronGuard_NotConfigured(t *testing.T) {
	g := NewCronGuard(Config{})
	assert.ErrorIs(t, g.Verify("anything"), ErrCronNotConfigured)

	_, err := HashSecret("")
	assert.Error(t, err)
}

func TestCronGuard_Middleware(t *testing.T) {
	g := NewCronGuard(Config{CronSecret: "s3cret"})
	h := g.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid", header: "Bearer s3cret", want: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer s3cret", want: http.StatusNoContent},
		{name: "wrong secret", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "basic auth", header: "Basic czNjcmV0", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cron/update-cache", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
