package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlindIndexer_Index(t *testing.T) {
	masterKey := newTestMasterKey(t)
	indexer, err := NewBlindIndexer(masterKey)
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, indexer.Index("ana@corp.com"), indexer.Index("ana@corp.com"))
	})

	t.Run("fixed length hex token", func(t *testing.T) {
		token := indexer.Index("ana@corp.com")
		assert.Len(t, token, 64)
		assert.Regexp(t, "^[0-9a-f]+$", token)
	})

	t.Run("normalization equivalence", func(t *testing.T) {
		base := indexer.Index("ana@corp.com")

		for _, variant := range []string{
			"Ana@Corp.com",
			"ANA@CORP.COM",
			"  ana@corp.com",
			"ana@corp.com \t",
			"  ANA@corp.com ",
		} {
			assert.Equal(t, base, indexer.Index(variant), "variant %q", variant)
		}
	})

	t.Run("distinct plaintexts yield distinct tokens", func(t *testing.T) {
		seen := make(map[string]string, 10000)
		for i := 0; i < 10000; i++ {
			plaintext := fmt.Sprintf("user%d@corp.com", i)
			token := indexer.Index(plaintext)
			previous, collision := seen[token]
			require.False(t, collision, "collision between %q and %q", plaintext, previous)
			seen[token] = plaintext
		}
	})

	t.Run("token depends on the key", func(t *testing.T) {
		otherIndexer, err := NewBlindIndexer(newTestMasterKey(t))
		require.NoError(t, err)

		assert.NotEqual(t, indexer.Index("ana@corp.com"), otherIndexer.Index("ana@corp.com"))
	})

	t.Run("mac key is independent from the field encryption key", func(t *testing.T) {
		encryptionKey, err := deriveSubkey(masterKey.Bytes(), fieldEncryptionInfo)
		require.NoError(t, err)
		macKey, err := deriveSubkey(masterKey.Bytes(), blindIndexInfo)
		require.NoError(t, err)
		assert.NotEqual(t, encryptionKey, macKey)
	})
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ana@corp.com", Normalize("  Ana@Corp.COM "))
	assert.Equal(t, "", Normalize("   "))
}

func TestNewBlindIndexer(t *testing.T) {
	indexer, err := NewBlindIndexer(newTestMasterKey(t))
	require.NoError(t, err)
	assert.NotNil(t, indexer)
}
