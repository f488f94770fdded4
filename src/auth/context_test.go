package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, _ := GetUserIDFromContext(r.Context())
	_, _ = w.Write([]byte(id))
}

func TestMiddleware(t *testing.T) {
	h := Middleware(http.HandlerFunc(echoUser))
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, id)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != id {
		t.Fatalf("expected user %s, got %d %q", id, rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "" {
		t.Fatalf("anonymous requests pass without a user, got %d %q", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "not-a-uuid")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a malformed id, got %d", rr.Code)
	}
}

func TestRequireUser(t *testing.T) {
	h := RequireUser(http.HandlerFunc(echoUser))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUserID(req.Context(), "u1"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := uuid.NewString()
	h := RequireAdmin(Config{AdminUserIDs: []string{" " + admin + " ", ""}})(http.HandlerFunc(echoUser))

	for _, tt := range []struct {
		user string
		want int
	}{
		{user: admin, want: http.StatusOK},
		{user: uuid.NewString(), want: http.StatusForbidden},
		{user: "", want: http.StatusForbidden},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.user != "" {
			req = req.WithContext(WithUserID(req.Context(), tt.user))
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != tt.want {
			t.Errorf("user %q: expected %d, got %d", tt.user, tt.want, rr.Code)
		}
	}
}
