package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
)

// RunCreateEncryptionKey generates a cryptographically secure 32-byte key for
// field encryption and blind index derivation. Key material is zeroed from
// memory after encoding.
//
// Without KMS flags the key is printed as a plaintext base64 ENCRYPTION_KEY.
// With kmsProvider and kmsKeyURI the key is wrapped by the KMS first and
// printed as ENCRYPTION_KEY_ENCRYPTED, so the raw key never reaches the
// environment.
//
// Security: Never use the localsecrets provider in production. Use cloud KMS
// providers (gcpkms, awskms, azurekeyvault, hashivault).
func RunCreateEncryptionKey(
	ctx context.Context,
	kms cryptoService.KMSService,
	out io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	// Generate a cryptographically secure 32-byte key
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	// Plaintext mode: print the base64 key directly
	if kmsProvider == "" && kmsKeyURI == "" {
		fmt.Fprintln(out, "# Field Encryption Key Configuration")
		fmt.Fprintln(out, "# Copy this environment variable to your .env file or secrets manager")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(key))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "# For production, prefer a KMS-wrapped key:")
		fmt.Fprintln(out, "#   trustcore create-encryption-key --kms-provider=gcpkms --kms-key-uri=\"gcpkms://projects/.../cryptoKeys/...\"")
		return nil
	}

	if kmsProvider == "" || kmsKeyURI == "" {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be set together")
	}

	// Open a keeper for the key-wrapping key
	keeper, err := kms.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			fmt.Fprintf(out, "Warning: failed to close KMS keeper: %v\n", closeErr)
		}
	}()

	// Encrypt the key with KMS
	ciphertext, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt key with KMS: %w", err)
	}

	fmt.Fprintln(out, "# Field Encryption Key Configuration (KMS Mode)")
	fmt.Fprintln(out, "# Copy these environment variables to your .env file or secrets manager")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	fmt.Fprintf(out, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	fmt.Fprintf(out, "ENCRYPTION_KEY_ENCRYPTED=\"%s\"\n", base64.StdEncoding.EncodeToString(ciphertext))

	return nil
}
