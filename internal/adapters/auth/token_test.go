package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invy/internal/domain"
)

const testSecret = "test-secret"

func mintToken(t *testing.T, secret string, claims jwtClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwtClaims {
	now := time.Now()
	return jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth0|user-123",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "host@example.com",
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	t.Run("valid token", func(t *testing.T) {
		identity, err := verifier.Verify(mintToken(t, testSecret, validClaims()))
		require.NoError(t, err)
		assert.Equal(t, "auth0|user-123", identity.UserID)
		assert.Equal(t, "host@example.com", identity.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := verifier.Verify(mintToken(t, "other-secret", validClaims()))
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := verifier.Verify(mintToken(t, testSecret, claims))
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("missing email claim", func(t *testing.T) {
		claims := validClaims()
		claims.Email = ""
		_, err := verifier.Verify(mintToken(t, testSecret, claims))
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := verifier.Verify("not-a-jwt")
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = verifier.Verify(signed)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
