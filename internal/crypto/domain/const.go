// Package domain defines the cryptographic domain models for field encryption
// and blind index derivation.
package domain

// Algorithm represents the cryptographic algorithm used for field encryption.
//
// All supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// ensuring both confidentiality and authenticity of encrypted fields. AEAD prevents both
// unauthorized reading and tampering with encrypted data at rest.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	// Uses a 256-bit key, a 12-byte nonce and a 16-byte authentication tag.
	// Preferred on CPUs with AES-NI hardware acceleration.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption algorithm.
	// Uses a 256-bit key, a 12-byte nonce and a 16-byte authentication tag.
	// Constant-time in software, preferred on platforms without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// BlobPrefix marks a string value as a trustcore encrypted blob. Any value that
// does not start with this prefix is treated as never-encrypted legacy plaintext
// by TryDecrypt, never as a decryption failure.
const BlobPrefix = "$tc1$"
