package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
)

type mockKMSService struct {
	mock.Mock
}

func (m *mockKMSService) OpenKeeper(ctx context.Context, keyURI string) (cryptoService.KMSKeeper, error) {
	args := m.Called(ctx, keyURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoService.KMSKeeper), args.Error(1)
}

type mockKMSKeeper struct {
	mock.Mock
}

func (m *mockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockKMSKeeper) Close() error {
	return m.Called().Error(0)
}

func TestRunCreateEncryptionKey(t *testing.T) {
	ctx := context.Background()

	t.Run("plaintext-mode", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCreateEncryptionKey(ctx, nil, &out, "", "")

		require.NoError(t, err)
		require.Contains(t, out.String(), "ENCRYPTION_KEY=\"")
		require.NotContains(t, out.String(), "ENCRYPTION_KEY_ENCRYPTED")
	})

	t.Run("kms-mode", func(t *testing.T) {
		mockService := &mockKMSService{}
		mockKeeper := &mockKMSKeeper{}

		mockService.On("OpenKeeper", ctx, "base64key://...").Return(mockKeeper, nil)
		mockKeeper.On("Encrypt", ctx, mock.AnythingOfType("[]uint8")).Return([]byte("wrapped"), nil)
		mockKeeper.On("Close").Return(nil)

		var out bytes.Buffer
		err := RunCreateEncryptionKey(ctx, mockService, &out, "localsecrets", "base64key://...")

		require.NoError(t, err)
		require.Contains(t, out.String(), "ENCRYPTION_KEY_ENCRYPTED=\"")
		require.Contains(t, out.String(), "KMS_PROVIDER=\"localsecrets\"")

		mockService.AssertExpectations(t)
		mockKeeper.AssertExpectations(t)
	})

	t.Run("partial-kms-flags", func(t *testing.T) {
		err := RunCreateEncryptionKey(ctx, nil, &bytes.Buffer{}, "localsecrets", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "must be set together")
	})

	t.Run("kms-error", func(t *testing.T) {
		mockService := &mockKMSService{}
		mockService.On("OpenKeeper", ctx, "invalid").Return(nil, errors.New("kms error"))

		err := RunCreateEncryptionKey(ctx, mockService, &bytes.Buffer{}, "localsecrets", "invalid")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}
