package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/httputil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubVerifier accepts exactly one token
type stubVerifier struct {
	token  string
	userID string
}

func (v stubVerifier) VerifyToken(token string) (*models.SupabaseClaims, error) {
	if token != v.token {
		return nil, domain.ErrUnauthorized
	}
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: v.userID},
		Role:             "authenticated",
	}, nil
}

func (stubVerifier) Close() error { return nil }

func TestAuth(t *testing.T) {
	verifier := stubVerifier{token: "good", userID: "u1"}

	tests := []struct {
		name        string
		requireAuth bool
		method      string
		header      string
		wantStatus  int
		wantUserID  string
	}{
		{name: "anonymous read", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "anonymous write allowed", method: http.MethodPost, wantStatus: http.StatusOK},
		{name: "anonymous write required", requireAuth: true, method: http.MethodPost, wantStatus: http.StatusUnauthorized},
		{name: "anonymous read when required", requireAuth: true, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "valid token", method: http.MethodPut, header: "Bearer good", wantStatus: http.StatusOK, wantUserID: "u1"},
		{name: "lowercase scheme", method: http.MethodPut, header: "bearer good", wantStatus: http.StatusOK, wantUserID: "u1"},
		{name: "invalid token", method: http.MethodGet, header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", method: http.MethodPost, header: "Basic dTE6cHc=", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", method: http.MethodPost, header: "Bearer ", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = httputil.GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})
			h := Auth(verifier, AuthOptions{RequireAuth: tt.requireAuth}, discardLogger())(next)

			req := httptest.NewRequest(tt.method, "/api/projects", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}
