package domain

import (
	"github.com/allisson/trustcore/internal/errors"
)

// Cryptographic operation error definitions.
//
// The distinction between ErrNotEncrypted and ErrDecryptionFailed is load
// bearing: callers that tolerate legacy plaintext records may fall back on a
// format mismatch, but a key mismatch or tampered ciphertext must always
// propagate.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	// Supported algorithms: AESGCM (aes-gcm), ChaCha20 (chacha20-poly1305).
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the encryption key is not exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrNotEncrypted indicates the value does not carry the encrypted blob envelope.
	// Returned on format mismatch only; authentication failures never map to this error.
	ErrNotEncrypted = errors.Wrap(errors.ErrInvalidInput, "value is not an encrypted blob")

	// ErrDecryptionFailed indicates an authenticated decryption failed: wrong key,
	// tampered ciphertext, or a corrupted nonce. The specific cause is not disclosed
	// to prevent information leakage.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrIndexDerivationFailed indicates the blind index key could not be derived.
	// This is a configuration error and should be treated as fatal at startup.
	ErrIndexDerivationFailed = errors.New("blind index key derivation failed")
)
