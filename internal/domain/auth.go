package domain

// Identity is the authenticated principal extracted from a bearer token.
// Sign-in itself happens at the identity provider; the API only verifies
// the tokens it issues.
type Identity struct {
	UserID string
	Email  string
}

// TokenVerifier validates a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(tokenString string) (*Identity, error)
}
