package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
)

// MasterKey returns the process-wide master key loaded from configuration.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = c.initMasterKey()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// FieldCipher returns the field cipher used for encryption at rest.
func (c *Container) FieldCipher() (*cryptoService.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		c.fieldCipher, err = c.initFieldCipher()
		if err != nil {
			c.initErrors["fieldCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// BlindIndexer returns the blind indexer used for searchable encryption.
func (c *Container) BlindIndexer() (*cryptoService.BlindIndexer, error) {
	var err error
	c.blindIndexerInit.Do(func() {
		c.blindIndexer, err = c.initBlindIndexer()
		if err != nil {
			c.initErrors["blindIndexer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["blindIndexer"]; exists {
		return nil, storedErr
	}
	return c.blindIndexer, nil
}

// initMasterKey loads the master key from configuration. A KMS-wrapped key
// takes precedence over a plaintext base64 key: in that mode the raw key
// material never appears in the environment.
func (c *Container) initMasterKey() (*cryptoDomain.MasterKey, error) {
	if c.config.EncryptionKeyEncrypted != "" && c.config.KMSKeyURI != "" {
		masterKey, err := cryptoService.UnwrapMasterKey(
			context.Background(),
			c.KMSService(),
			c.config.KMSKeyURI,
			c.config.EncryptionKeyEncrypted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap master key: %w", err)
		}
		return masterKey, nil
	}

	if c.config.EncryptionKey == "" {
		return nil, fmt.Errorf("no encryption key configured: set ENCRYPTION_KEY or ENCRYPTION_KEY_ENCRYPTED with KMS_KEY_URI")
	}

	masterKey, err := cryptoDomain.MasterKeyFromBase64(c.config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	return masterKey, nil
}

// initFieldCipher creates the field cipher with the configured algorithm.
func (c *Container) initFieldCipher() (*cryptoService.FieldCipher, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for field cipher: %w", err)
	}

	cipher, err := cryptoService.NewFieldCipher(masterKey, cryptoDomain.Algorithm(c.config.EncryptionAlgorithm))
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}
	return cipher, nil
}

// initBlindIndexer creates the blind indexer keyed from the master key.
func (c *Container) initBlindIndexer() (*cryptoService.BlindIndexer, error) {
	masterKey, err := c.MasterKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key for blind indexer: %w", err)
	}

	indexer, err := cryptoService.NewBlindIndexer(masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create blind indexer: %w", err)
	}
	return indexer, nil
}
