package service

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
)

func newTestMasterKey(t *testing.T) *cryptoDomain.MasterKey {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	masterKey, err := cryptoDomain.NewMasterKey(key)
	require.NoError(t, err)
	return masterKey
}

func TestNewFieldCipher(t *testing.T) {
	masterKey := newTestMasterKey(t)

	t.Run("creates cipher for supported algorithms", func(t *testing.T) {
		for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
			cipher, err := NewFieldCipher(masterKey, alg)
			require.NoError(t, err)
			assert.NotNil(t, cipher)
		}
	})

	t.Run("rejects unsupported algorithm", func(t *testing.T) {
		_, err := NewFieldCipher(masterKey, cryptoDomain.Algorithm("des"))
		assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	})
}

func TestFieldCipher_EncryptDecrypt(t *testing.T) {
	masterKey := newTestMasterKey(t)
	cipher, err := NewFieldCipher(masterKey, cryptoDomain.AESGCM)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		for _, plaintext := range []string{"", "ana@corp.com", "Ana María", "a:b:c", strings.Repeat("x", 4096)} {
			blob, err := cipher.Encrypt(plaintext)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(blob, cryptoDomain.BlobPrefix))

			decrypted, err := cipher.Decrypt(blob)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)
		}
	})

	t.Run("encryption is randomized", func(t *testing.T) {
		first, err := cipher.Encrypt("ana@corp.com")
		require.NoError(t, err)
		second, err := cipher.Encrypt("ana@corp.com")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("plaintext value fails with ErrNotEncrypted", func(t *testing.T) {
		_, err := cipher.Decrypt("ana@corp.com")
		assert.ErrorIs(t, err, cryptoDomain.ErrNotEncrypted)
	})

	t.Run("wrong key fails with ErrDecryptionFailed", func(t *testing.T) {
		blob, err := cipher.Encrypt("ana@corp.com")
		require.NoError(t, err)

		otherCipher, err := NewFieldCipher(newTestMasterKey(t), cryptoDomain.AESGCM)
		require.NoError(t, err)

		_, err = otherCipher.Decrypt(blob)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("tampered blob fails with ErrDecryptionFailed", func(t *testing.T) {
		blob, err := cipher.Encrypt("ana@corp.com")
		require.NoError(t, err)

		tampered := blob[:len(blob)-2] + "zz"
		_, err = cipher.Decrypt(tampered)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("truncated envelope fails with ErrDecryptionFailed", func(t *testing.T) {
		_, err := cipher.Decrypt(cryptoDomain.BlobPrefix + "aes-gcm$only-three-parts")
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("blobs survive algorithm switch", func(t *testing.T) {
		blob, err := cipher.Encrypt("ana@corp.com")
		require.NoError(t, err)

		chachaCipher, err := NewFieldCipher(masterKey, cryptoDomain.ChaCha20)
		require.NoError(t, err)

		decrypted, err := chachaCipher.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, "ana@corp.com", decrypted)
	})
}

func TestFieldCipher_TryDecrypt(t *testing.T) {
	masterKey := newTestMasterKey(t)
	cipher, err := NewFieldCipher(masterKey, cryptoDomain.AESGCM)
	require.NoError(t, err)

	t.Run("decrypts encrypted value", func(t *testing.T) {
		blob, err := cipher.Encrypt("García")
		require.NoError(t, err)

		plaintext, wasEncrypted, err := cipher.TryDecrypt(blob)
		require.NoError(t, err)
		assert.True(t, wasEncrypted)
		assert.Equal(t, "García", plaintext)
	})

	t.Run("falls back on legacy plaintext", func(t *testing.T) {
		plaintext, wasEncrypted, err := cipher.TryDecrypt("legacy plaintext record")
		require.NoError(t, err)
		assert.False(t, wasEncrypted)
		assert.Equal(t, "legacy plaintext record", plaintext)
	})

	t.Run("key mismatch is never masked as plaintext", func(t *testing.T) {
		blob, err := cipher.Encrypt("García")
		require.NoError(t, err)

		otherCipher, err := NewFieldCipher(newTestMasterKey(t), cryptoDomain.AESGCM)
		require.NoError(t, err)

		_, _, err = otherCipher.TryDecrypt(blob)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

func TestFieldCipher_EncryptMap(t *testing.T) {
	masterKey := newTestMasterKey(t)
	cipher, err := NewFieldCipher(masterKey, cryptoDomain.AESGCM)
	require.NoError(t, err)

	t.Run("round trip preserves structure and non-string types", func(t *testing.T) {
		original := map[string]any{
			"name":    "Ana",
			"surname": "García",
			"age":     34,
			"active":  true,
			"address": map[string]any{
				"street": "Av. Siempre Viva 742",
				"number": 742,
			},
			"tags": []any{"hr", "payroll", 3},
		}

		encrypted, err := cipher.EncryptMap(original)
		require.NoError(t, err)

		// String leaves are blobs, everything else untouched
		assert.True(t, strings.HasPrefix(encrypted["name"].(string), cryptoDomain.BlobPrefix))
		assert.Equal(t, 34, encrypted["age"])
		assert.Equal(t, true, encrypted["active"])
		nested := encrypted["address"].(map[string]any)
		assert.True(t, strings.HasPrefix(nested["street"].(string), cryptoDomain.BlobPrefix))
		assert.Equal(t, 742, nested["number"])
		tags := encrypted["tags"].([]any)
		assert.True(t, strings.HasPrefix(tags[0].(string), cryptoDomain.BlobPrefix))
		assert.Equal(t, 3, tags[2])

		decrypted, err := cipher.DecryptMap(encrypted)
		require.NoError(t, err)
		assert.Equal(t, original, decrypted)
	})

	t.Run("empty map returned unchanged", func(t *testing.T) {
		empty := map[string]any{}
		result, err := cipher.EncryptMap(empty)
		require.NoError(t, err)
		assert.Equal(t, empty, result)

		result, err = cipher.EncryptMap(nil)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("original map is not mutated", func(t *testing.T) {
		original := map[string]any{"name": "Ana"}
		_, err := cipher.EncryptMap(original)
		require.NoError(t, err)
		assert.Equal(t, "Ana", original["name"])
	})
}

func TestFieldCipher_EncryptSlice(t *testing.T) {
	masterKey := newTestMasterKey(t)
	cipher, err := NewFieldCipher(masterKey, cryptoDomain.AESGCM)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		original := []any{"one", 2, []any{"three"}}

		encrypted, err := cipher.EncryptSlice(original)
		require.NoError(t, err)
		assert.Len(t, encrypted, 3)
		assert.Equal(t, 2, encrypted[1])

		decrypted, err := cipher.DecryptSlice(encrypted)
		require.NoError(t, err)
		assert.Equal(t, original, decrypted)
	})

	t.Run("empty slice returned unchanged", func(t *testing.T) {
		result, err := cipher.EncryptSlice(nil)
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}
