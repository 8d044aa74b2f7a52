// Package domain defines the identity models: principals with PII encrypted
// at rest and a blind index used as the email lookup key.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Principal is a user record. Name, Surname, Email, and Cargo are encrypted
// at rest; MailIndex is the blind index derived from the normalized email and
// is the only way to query by email. Company is plaintext: it partitions
// tenants and carries no PII.
//
// The email ciphertext and MailIndex always change together: updating one
// without the other would break equality search or leak a stale address.
type Principal struct {
	ID           uuid.UUID
	Company      string
	Name         string
	Surname      string
	Email        string
	Cargo        string
	MailIndex    string
	Role         string
	Status       string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
