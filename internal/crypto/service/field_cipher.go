package service

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
)

// fieldEncryptionInfo is the HKDF info string for the field encryption subkey.
// Versioned so the derivation can change without invalidating stored blobs.
const fieldEncryptionInfo = "field-encryption-v1"

// FieldCipher implements Cipher over an AEAD keyed by a subkey derived from
// the process-wide master key. The encryption subkey is separated from the
// blind index MAC key via HKDF so a compromise of one derived key never
// exposes the other.
//
// Encrypted values are serialized as opaque string blobs:
//
//	$tc1$<algorithm>$<base64url nonce>$<base64url ciphertext+tag>
//
// The algorithm travels inside the blob, so records written under aes-gcm stay
// readable after the configured algorithm switches to chacha20-poly1305 and
// vice versa.
type FieldCipher struct {
	alg   cryptoDomain.Algorithm
	aeads map[cryptoDomain.Algorithm]AEAD
}

// NewFieldCipher creates a FieldCipher for the given master key and write
// algorithm. Both supported AEADs are initialized for decryption.
func NewFieldCipher(masterKey *cryptoDomain.MasterKey, alg cryptoDomain.Algorithm) (*FieldCipher, error) {
	if alg != cryptoDomain.AESGCM && alg != cryptoDomain.ChaCha20 {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}

	subkey, err := deriveSubkey(masterKey.Bytes(), fieldEncryptionInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to derive field encryption key: %w", err)
	}

	manager := NewAEADManager()
	aeads := make(map[cryptoDomain.Algorithm]AEAD, 2)
	for _, a := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		aead, err := manager.CreateCipher(subkey, a)
		if err != nil {
			return nil, err
		}
		aeads[a] = aead
	}

	return &FieldCipher{alg: alg, aeads: aeads}, nil
}

// deriveSubkey derives a 32-byte subkey from the master key using HKDF-SHA256.
// The info string separates key usages (field encryption vs blind indexing).
func deriveSubkey(masterKey []byte, info string) ([]byte, error) {
	reader := hkdf.New(sha256.New, masterKey, nil, []byte(info))

	subkey := make([]byte, 32)
	if _, err := io.ReadFull(reader, subkey); err != nil {
		return nil, err
	}

	return subkey, nil
}

// Encrypt encrypts a plaintext string into an opaque blob using the configured algorithm.
func (f *FieldCipher) Encrypt(plaintext string) (string, error) {
	ciphertext, nonce, err := f.aeads[f.alg].Encrypt([]byte(plaintext), nil)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt field: %w", err)
	}

	return cryptoDomain.BlobPrefix + string(f.alg) +
		"$" + base64.RawURLEncoding.EncodeToString(nonce) +
		"$" + base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt decrypts a blob produced by Encrypt.
//
// A value without the blob envelope fails with ErrNotEncrypted so callers can
// detect "never encrypted" explicitly. A value carrying the envelope that does
// not authenticate fails with ErrDecryptionFailed; that failure is never
// downgraded to a plaintext fallback.
func (f *FieldCipher) Decrypt(value string) (string, error) {
	if !strings.HasPrefix(value, cryptoDomain.BlobPrefix) {
		return "", cryptoDomain.ErrNotEncrypted
	}

	// Layout: ["", "tc1", algorithm, nonce, ciphertext]
	parts := strings.Split(value, "$")
	if len(parts) != 5 {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	aead, ok := f.aeads[cryptoDomain.Algorithm(parts[2])]
	if !ok {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	nonce, err := base64.RawURLEncoding.DecodeString(parts[3])
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	ciphertext, err := base64.RawURLEncoding.DecodeString(parts[4])
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := aead.Decrypt(ciphertext, nonce, nil)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// TryDecrypt decrypts a value that may be legacy plaintext. The fallback fires
// only on a format mismatch: authentication failures always propagate so a key
// mismatch cannot be silently read back as plaintext.
func (f *FieldCipher) TryDecrypt(value string) (string, bool, error) {
	plaintext, err := f.Decrypt(value)
	if err != nil {
		if errors.Is(err, cryptoDomain.ErrNotEncrypted) {
			return value, false, nil
		}
		return "", false, err
	}
	return plaintext, true, nil
}

// EncryptMap returns a copy of obj with every string leaf encrypted, recursing
// into nested maps and slices. Non-string leaves are preserved unchanged.
// Empty or nil input is returned unchanged.
func (f *FieldCipher) EncryptMap(obj map[string]any) (map[string]any, error) {
	if len(obj) == 0 {
		return obj, nil
	}

	result := make(map[string]any, len(obj))
	for key, value := range obj {
		encrypted, err := f.encryptValue(value)
		if err != nil {
			return nil, err
		}
		result[key] = encrypted
	}

	return result, nil
}

// EncryptSlice returns a copy of list with every string element encrypted,
// recursing into nested maps and slices. Empty or nil input is returned unchanged.
func (f *FieldCipher) EncryptSlice(list []any) ([]any, error) {
	if len(list) == 0 {
		return list, nil
	}

	result := make([]any, len(list))
	for i, value := range list {
		encrypted, err := f.encryptValue(value)
		if err != nil {
			return nil, err
		}
		result[i] = encrypted
	}

	return result, nil
}

// DecryptMap reverses EncryptMap. String leaves without the blob envelope are
// kept as-is (legacy plaintext); authentication failures propagate.
func (f *FieldCipher) DecryptMap(obj map[string]any) (map[string]any, error) {
	if len(obj) == 0 {
		return obj, nil
	}

	result := make(map[string]any, len(obj))
	for key, value := range obj {
		decrypted, err := f.decryptValue(value)
		if err != nil {
			return nil, err
		}
		result[key] = decrypted
	}

	return result, nil
}

// DecryptSlice reverses EncryptSlice with the same legacy-plaintext rules as DecryptMap.
func (f *FieldCipher) DecryptSlice(list []any) ([]any, error) {
	if len(list) == 0 {
		return list, nil
	}

	result := make([]any, len(list))
	for i, value := range list {
		decrypted, err := f.decryptValue(value)
		if err != nil {
			return nil, err
		}
		result[i] = decrypted
	}

	return result, nil
}

// encryptValue encrypts a single leaf, recursing into containers.
func (f *FieldCipher) encryptValue(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return f.Encrypt(v)
	case map[string]any:
		return f.EncryptMap(v)
	case []any:
		return f.EncryptSlice(v)
	default:
		return value, nil
	}
}

// decryptValue decrypts a single leaf, recursing into containers.
func (f *FieldCipher) decryptValue(value any) (any, error) {
	switch v := value.(type) {
	case string:
		plaintext, _, err := f.TryDecrypt(v)
		if err != nil {
			return nil, err
		}
		return plaintext, nil
	case map[string]any:
		return f.DecryptMap(v)
	case []any:
		return f.DecryptSlice(v)
	default:
		return value, nil
	}
}
