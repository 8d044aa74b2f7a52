package domain

import (
	"encoding/base64"
	"fmt"
)

// MasterKey is the single process-wide key that backs field encryption and
// blind index derivation. It is loaded once at startup (from configuration or
// unwrapped through a KMS keeper) and is read-only afterwards, which makes it
// safe for concurrent use by request handlers.
type MasterKey struct {
	key []byte
}

// NewMasterKey creates a MasterKey from raw key material.
// The key must be exactly 32 bytes (256 bits).
func NewMasterKey(key []byte) (*MasterKey, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeySize
	}
	return &MasterKey{key: key}, nil
}

// MasterKeyFromBase64 decodes a base64-encoded master key, as stored in the
// ENCRYPTION_KEY environment variable.
func MasterKeyFromBase64(encoded string) (*MasterKey, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	return NewMasterKey(key)
}

// Bytes returns the raw key material. Callers must not retain or mutate
// the returned slice beyond constructing a cipher or deriving a subkey.
func (m *MasterKey) Bytes() []byte {
	return m.key
}

// Destroy overwrites the key material in memory. The MasterKey is unusable
// afterwards; intended for shutdown paths and short-lived CLI commands.
func (m *MasterKey) Destroy() {
	Zero(m.key)
}
