package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"projectboard/internal/auth"
	"projectboard/internal/httputil"
)

// AuthOptions configures the Auth middleware
type AuthOptions struct {
	// RequireAuth rejects mutating requests that carry no bearer token.
	// Reads are always public.
	RequireAuth bool
}

// Auth verifies an optional Supabase bearer token. A valid token puts the
// caller's user id on the request context; an invalid one is always a 401.
func Auth(verifier auth.JWTVerifier, opts AuthOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if opts.RequireAuth && isMutation(r.Method) {
					httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "authorization header must be 'Bearer <token>'")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("bearer token rejected",
					"path", r.URL.Path,
					"method", r.Method,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// isMutation reports whether method changes server state
func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
