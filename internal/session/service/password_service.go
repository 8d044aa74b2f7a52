package service

import (
	"github.com/allisson/go-pwdhash"
)

// passwordService implements PasswordService over Argon2id hashes.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Compare performs a constant-time comparison between a plain password and
// its stored hash. Any verification error counts as a mismatch.
func (p *passwordService) Compare(plainPassword, passwordHash string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), passwordHash)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a PasswordService. The interactive policy
// matches the one used when principal passwords are hashed at registration.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		// Only reachable with an invalid policy constant.
		panic(err)
	}

	return &passwordService{hasher: hasher}
}
