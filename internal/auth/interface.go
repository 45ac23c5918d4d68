package auth

import "projectboard/internal/domain/models"

// JWTVerifier verifies Supabase access tokens sent as bearer tokens.
type JWTVerifier interface {
	// VerifyToken validates a JWT and returns its claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired or anonymous.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases any resources held by the verifier.
	Close() error
}
