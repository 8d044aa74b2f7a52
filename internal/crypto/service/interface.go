// Package service provides the cryptographic services of the trust core:
// AEAD ciphers for field encryption and keyed blind index derivation for
// equality search over encrypted fields.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Cipher encrypts and decrypts scalar string fields and recursively encrypts
// the string leaves of maps and slices, preserving structure and non-string types.
type Cipher interface {
	// Encrypt encrypts a plaintext string into an opaque blob.
	Encrypt(plaintext string) (string, error)

	// Decrypt decrypts a blob produced by Encrypt. Returns ErrNotEncrypted when
	// the value lacks the blob envelope and ErrDecryptionFailed when
	// authentication fails.
	Decrypt(value string) (string, error)

	// TryDecrypt decrypts a value that may be legacy plaintext. Returns the
	// plaintext and true when the value was encrypted, the raw input and false
	// when it was never encrypted. Authentication failures still return an error:
	// a key mismatch must never be masked as plaintext.
	TryDecrypt(value string) (plaintext string, wasEncrypted bool, err error)

	// EncryptMap returns a copy of obj with every string leaf encrypted,
	// recursing into nested maps and slices. Empty or nil input is returned unchanged.
	EncryptMap(obj map[string]any) (map[string]any, error)

	// DecryptMap reverses EncryptMap. String leaves without the blob envelope
	// are kept as-is (legacy plaintext); authentication failures propagate.
	DecryptMap(obj map[string]any) (map[string]any, error)

	// EncryptSlice returns a copy of list with every string element encrypted,
	// recursing into nested maps and slices. Empty or nil input is returned unchanged.
	EncryptSlice(list []any) ([]any, error)

	// DecryptSlice reverses EncryptSlice with the same legacy-plaintext rules as DecryptMap.
	DecryptSlice(list []any) ([]any, error)
}

// Indexer derives deterministic, keyed, non-reversible lookup tokens from
// normalized plaintext. The token is an equality-search key only: it is never
// decrypted and carries no other semantic value.
type Indexer interface {
	// Index derives the blind index token for the given plaintext.
	// Inputs that differ only by case or surrounding whitespace yield the same token.
	Index(plaintext string) string
}

// KMSKeeper abstracts a gocloud.dev secrets keeper used to unwrap the master key.
type KMSKeeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Close() error
}
