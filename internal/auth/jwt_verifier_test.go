package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
)

func newTestVerifier(t *testing.T) (*SupabaseJWTVerifier, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	kf := func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewKeyfuncVerifier(kf, logger), key
}

func signES256(t *testing.T, key *ecdsa.PrivateKey, claims models.SupabaseClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() models.SupabaseClaims {
	return models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "authenticated",
	}
}

func TestVerifyToken_Valid(t *testing.T) {
	v, key := newTestVerifier(t)

	claims, err := v.VerifyToken(signES256(t, key, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.GetUserID())
}

func TestVerifyToken_Rejected(t *testing.T) {
	v, key := newTestVerifier(t)
	other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	anon := validClaims()
	anon.Role = "anon"

	anonymousUser := validClaims()
	anonymousUser.IsAnonymous = true

	noSubject := validClaims()
	noSubject.Subject = ""

	hmac, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":        signES256(t, key, expired),
		"no expiry":      signES256(t, key, noExpiry),
		"anon role":      signES256(t, key, anon),
		"anonymous user": signES256(t, key, anonymousUser),
		"no subject":     signES256(t, key, noSubject),
		"wrong key":      signES256(t, other, validClaims()),
		"hmac algorithm": hmac,
		"garbage":        "not.a.jwt",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.VerifyToken(token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
