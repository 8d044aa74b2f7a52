package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMSService_OpenKeeper(t *testing.T) {
	kms := NewKMSService()

	t.Run("opens local base64key keeper", func(t *testing.T) {
		keeperKey := make([]byte, 32)
		_, err := rand.Read(keeperKey)
		require.NoError(t, err)

		keyURI := "base64key://" + base64.URLEncoding.EncodeToString(keeperKey)
		keeper, err := kms.OpenKeeper(context.Background(), keyURI)
		require.NoError(t, err)
		defer func() { _ = keeper.Close() }()

		assert.NotNil(t, keeper)
	})

	t.Run("fails on invalid URI", func(t *testing.T) {
		_, err := kms.OpenKeeper(context.Background(), "not-a-valid-scheme://key")
		assert.Error(t, err)
	})
}

func TestUnwrapMasterKey(t *testing.T) {
	kms := NewKMSService()

	keeperKey := make([]byte, 32)
	_, err := rand.Read(keeperKey)
	require.NoError(t, err)
	keyURI := "base64key://" + base64.URLEncoding.EncodeToString(keeperKey)

	t.Run("round trip through local keeper", func(t *testing.T) {
		masterKeyBytes := make([]byte, 32)
		_, err := rand.Read(masterKeyBytes)
		require.NoError(t, err)

		keeper, err := kms.OpenKeeper(context.Background(), keyURI)
		require.NoError(t, err)
		wrapped, err := keeper.Encrypt(context.Background(), masterKeyBytes)
		require.NoError(t, err)
		require.NoError(t, keeper.Close())

		masterKey, err := UnwrapMasterKey(
			context.Background(),
			kms,
			keyURI,
			base64.StdEncoding.EncodeToString(wrapped),
		)
		require.NoError(t, err)
		assert.Equal(t, masterKeyBytes, masterKey.Bytes())
	})

	t.Run("fails on invalid base64", func(t *testing.T) {
		_, err := UnwrapMasterKey(context.Background(), kms, keyURI, "%%%")
		assert.Error(t, err)
	})
}
