// Package service provides session token generation and password verification.
package service

// TokenService generates opaque session tokens and hashes them for storage.
type TokenService interface {
	// GenerateToken creates a random token and returns the plain token with
	// its SHA-256 hash. The plain token is shown to the client once.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token for lookup.
	HashToken(plainToken string) string
}

// PasswordService verifies login passwords against stored Argon2id hashes.
type PasswordService interface {
	// Compare performs a constant-time comparison between a plain password and
	// its stored hash.
	Compare(plainPassword, passwordHash string) bool
}
