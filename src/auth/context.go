// Package auth carries the caller identity set by the upstream gateway.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

// HeaderUserID is set by the gateway after it authenticated the caller.
const HeaderUserID = "X-User-ID"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserKey).(string)
	return id, ok && id != ""
}

// Middleware copies a well formed X-User-ID into the request context. Requests without
// one pass through anonymously.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.WithField("component", "auth").WithError(err).Warn("malformed user id header")
			http.Error(w, `{"success":false,"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id.String())))
	})
}

// RequireUser refuses anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			http.Error(w, `{"success":false,"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin refuses callers that are not listed in cfg.AdminUserIDs.
func RequireAdmin(cfg Config) func(http.Handler) http.Handler {
	admins := make(map[string]struct{}, len(cfg.AdminUserIDs))
	for _, id := range cfg.AdminUserIDs {
		if id = strings.ToLower(strings.TrimSpace(id)); id != "" {
			admins[id] = struct{}{}
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := GetUserIDFromContext(r.Context())
			if _, ok := admins[id]; !ok {
				http.Error(w, `{"success":false,"error":"Forbidden"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
