package domain

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMasterKey(t *testing.T) {
	t.Run("accepts 32-byte key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		mk, err := NewMasterKey(key)
		require.NoError(t, err)
		assert.Equal(t, key, mk.Bytes())
	})

	t.Run("rejects short key", func(t *testing.T) {
		_, err := NewMasterKey(make([]byte, 16))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})

	t.Run("rejects nil key", func(t *testing.T) {
		_, err := NewMasterKey(nil)
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})
}

func TestMasterKeyFromBase64(t *testing.T) {
	t.Run("decodes valid key", func(t *testing.T) {
		key := make([]byte, 32)
		_, err := rand.Read(key)
		require.NoError(t, err)

		mk, err := MasterKeyFromBase64(base64.StdEncoding.EncodeToString(key))
		require.NoError(t, err)
		assert.Equal(t, key, mk.Bytes())
	})

	t.Run("rejects invalid base64", func(t *testing.T) {
		_, err := MasterKeyFromBase64("not-base64!!!")
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := MasterKeyFromBase64(base64.StdEncoding.EncodeToString(make([]byte, 8)))
		assert.ErrorIs(t, err, ErrInvalidKeySize)
	})
}

func TestMasterKeyDestroy(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}

	mk, err := NewMasterKey(key)
	require.NoError(t, err)

	mk.Destroy()
	assert.Equal(t, make([]byte, 32), mk.Bytes())
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	// nil must not panic
	Zero(nil)
}
