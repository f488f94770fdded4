// Package security guards the scheduled job endpoints.
package security

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrCronNotConfigured = errors.New("cron secret not configured")

// CronGuard verifies bearer tokens presented by the job runner.
type CronGuard struct {
	secret []byte
	hash   []byte
}

func NewCronGuard(cfg Config) *CronGuard {
	g := &CronGuard{}
	if cfg.CronSecretHash != "" {
		g.hash = []byte(cfg.CronSecretHash)
	} else if cfg.CronSecret != "" {
		g.secret = []byte(cfg.CronSecret)
	}
	return g
}

// Verify reports whether token matches the configured secret. With nothing configured
// every token is refused.
func (g *CronGuard) Verify(token string) error {
	switch {
	case len(g.hash) > 0:
		return bcrypt.CompareHashAndPassword(g.hash, []byte(token))
	case len(g.secret) > 0:
		if subtle.ConstantTimeCompare(g.secret, []byte(token)) != 1 {
			return bcrypt.ErrMismatchedHashAndPassword
		}
		return nil
	}
	return ErrCronNotConfigured
}

// Middleware rejects requests without a valid "Authorization: Bearer <secret>" header.
func (g *CronGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r.Header.Get("Authorization"))
		if !ok {
			http.Error(w, `{"success":false,"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		if err := g.Verify(token); err != nil {
			logger.WithFields(map[string]interface{}{
				"component": "CronGuard",
				"path":      r.URL.Path,
				"remote":    r.RemoteAddr,
			}).WithError(err).Warn("cron request refused")
			http.Error(w, `{"success":false,"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// HashSecret produces a CRON_SECRET_HASH value.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
