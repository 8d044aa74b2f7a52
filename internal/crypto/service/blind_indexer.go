package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// blindIndexInfo is the HKDF info string for the blind index MAC key.
// Distinct from fieldEncryptionInfo so the MAC key and the encryption key
// derived from the same master key are cryptographically independent.
const blindIndexInfo = "blind-index-v1"

// BlindIndexer derives deterministic, keyed, non-reversible lookup tokens via
// HMAC-SHA256 over normalized plaintext. Equal normalized plaintexts always
// yield the same token, which enables equality search on encrypted fields
// (e.g. findOne by mail_index) without decrypting any record. Without the key
// the token cannot be reversed to the plaintext, and a plain unkeyed hash
// would be vulnerable to offline dictionary attacks on low-entropy inputs
// such as email addresses.
type BlindIndexer struct {
	macKey []byte
}

// NewBlindIndexer creates a BlindIndexer keyed by a subkey derived from the
// master key. A derivation failure is a configuration error and should be
// treated as fatal at startup.
func NewBlindIndexer(masterKey *cryptoDomain.MasterKey) (*BlindIndexer, error) {
	macKey, err := deriveSubkey(masterKey.Bytes(), blindIndexInfo)
	if err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrIndexDerivationFailed, err.Error())
	}

	return &BlindIndexer{macKey: macKey}, nil
}

// Index derives the blind index token for the given plaintext.
// The input is normalized (trimmed, lowercased) before derivation, so
// "User@X.com" and "user@x.com " produce the same token. The token is a
// 64-character hex string used purely as an equality-search key.
func (b *BlindIndexer) Index(plaintext string) string {
	normalized := Normalize(plaintext)

	mac := hmac.New(sha256.New, b.macKey)
	mac.Write([]byte(normalized))

	return hex.EncodeToString(mac.Sum(nil))
}

// Normalize applies the canonical normalization used for blind index
// derivation: trim surrounding whitespace and lowercase. Writers and readers
// must use the same normalization or equality search breaks.
func Normalize(plaintext string) string {
	return strings.ToLower(strings.TrimSpace(plaintext))
}
