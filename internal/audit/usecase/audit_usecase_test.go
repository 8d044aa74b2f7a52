package usecase

import (
	"context"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	cryptoDomain "github.com/allisson/trustcore/internal/crypto/domain"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// fakeAuditRepo implements AuditEventRepository for tests.
type fakeAuditRepo struct {
	events    []*auditDomain.AuditEvent
	createErr error
	listErr   error
	removed   int64
}

func (f *fakeAuditRepo) Create(_ context.Context, event *auditDomain.AuditEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAuditRepo) List(
	_ context.Context,
	_ string,
	_, _ int,
	_, _ *time.Time,
) ([]*auditDomain.AuditEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeAuditRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return f.removed, nil
}

// fakeActorResolver implements ActorResolver for tests.
type fakeActorResolver struct {
	actor *auditDomain.ActorSnapshot
	err   error
}

func (f *fakeActorResolver) Resolve(
	_ context.Context,
	_ string,
	_ uuid.UUID,
) (*auditDomain.ActorSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.actor, nil
}

func newTestCipher(t *testing.T) cryptoService.Cipher {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	masterKey, err := cryptoDomain.NewMasterKey(key)
	require.NoError(t, err)

	cipher, err := cryptoService.NewFieldCipher(masterKey, cryptoDomain.AESGCM)
	require.NoError(t, err)

	return cipher
}

func testActor() *auditDomain.ActorSnapshot {
	return &auditDomain.ActorSnapshot{
		Name:    "Ana",
		Surname: "García",
		Role:    "supervisor",
		Email:   "ana@corp.com",
		Company: "acme",
		Status:  "active",
	}
}

func TestAuditUseCase_Register(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.Must(uuid.NewV7())

	t.Run("registers event with actor snapshot and static description", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		event, err := uc.Register(ctx, RegisterInput{
			Company: "acme",
			ActorID: actorID,
			Event:   auditDomain.EventPrincipalCreated,
			Target:  auditDomain.Target{Type: auditDomain.TargetPrincipal, ID: "42"},
		})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, "acme", event.Company)
		assert.Equal(t, actorID, event.ActorID)
		assert.Equal(t, "Ana", event.Actor.Name)
		assert.Equal(t, auditDomain.EventPrincipalCreated.Description(), event.Description)
		assert.False(t, event.Sensitive)
		assert.False(t, event.CreatedAt.IsZero())
		require.Len(t, repo.events, 1)
	})

	t.Run("sensitive description is encrypted at rest", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		cipher := newTestCipher(t)
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, cipher)

		event, err := uc.Register(ctx, RegisterInput{
			Company:     "acme",
			ActorID:     actorID,
			Event:       auditDomain.EventTicketDeleted,
			Target:      auditDomain.Target{Type: auditDomain.TargetTicket, ID: "7"},
			Description: "removed ticket about salary dispute",
			Sensitive:   true,
		})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(event.Description, cryptoDomain.BlobPrefix))
		assert.True(t, event.Sensitive)

		plaintext, wasEncrypted, err := cipher.TryDecrypt(event.Description)
		require.NoError(t, err)
		assert.True(t, wasEncrypted)
		assert.Equal(t, "removed ticket about salary dispute", plaintext)
	})

	t.Run("non-sensitive description stays plaintext", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		event, err := uc.Register(ctx, RegisterInput{
			Company:     "acme",
			ActorID:     actorID,
			Event:       auditDomain.EventRoleCreated,
			Target:      auditDomain.Target{Type: auditDomain.TargetRole},
			Description: "Rol: supervisor",
		})
		require.NoError(t, err)
		assert.Equal(t, "Rol: supervisor", event.Description)
	})

	t.Run("metadata round trips through encryption", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		cipher := newTestCipher(t)
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, cipher)

		metadata := map[string]any{
			"previous_email": "old@corp.com",
			"attempts":       3,
			"nested":         map[string]any{"field": "value"},
		}

		event, err := uc.Register(ctx, RegisterInput{
			Company:  "acme",
			ActorID:  actorID,
			Event:    auditDomain.EventPrincipalUpdated,
			Target:   auditDomain.Target{Type: auditDomain.TargetPrincipal, ID: "42"},
			Metadata: metadata,
		})
		require.NoError(t, err)

		// String leaves are ciphertext, non-string leaves untouched.
		assert.True(t, strings.HasPrefix(event.Metadata["previous_email"].(string), cryptoDomain.BlobPrefix))
		assert.Equal(t, 3, event.Metadata["attempts"])

		decrypted, err := cipher.DecryptMap(event.Metadata)
		require.NoError(t, err)
		assert.Equal(t, "old@corp.com", decrypted["previous_email"])
		assert.Equal(t, map[string]any{"field": "value"}, decrypted["nested"])
	})

	t.Run("unknown event code rejected", func(t *testing.T) {
		uc := NewAuditUseCase(&fakeAuditRepo{}, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		_, err := uc.Register(ctx, RegisterInput{
			Company: "acme",
			ActorID: actorID,
			Event:   auditDomain.EventCode("BOGUS"),
			Target:  auditDomain.Target{Type: auditDomain.TargetPrincipal},
		})
		assert.ErrorIs(t, err, auditDomain.ErrUnknownEventCode)
	})

	t.Run("unknown target type rejected", func(t *testing.T) {
		uc := NewAuditUseCase(&fakeAuditRepo{}, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		_, err := uc.Register(ctx, RegisterInput{
			Company: "acme",
			ActorID: actorID,
			Event:   auditDomain.EventPrincipalCreated,
			Target:  auditDomain.Target{Type: auditDomain.TargetType("Bogus")},
		})
		assert.ErrorIs(t, err, auditDomain.ErrUnknownTargetType)
	})

	t.Run("write failure propagates as ErrAuditWriteFailed", func(t *testing.T) {
		repo := &fakeAuditRepo{createErr: apperrors.New("no id returned")}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		_, err := uc.Register(ctx, RegisterInput{
			Company: "acme",
			ActorID: actorID,
			Event:   auditDomain.EventSessionStarted,
			Target:  auditDomain.Target{Type: auditDomain.TargetSession},
		})
		assert.ErrorIs(t, err, auditDomain.ErrAuditWriteFailed)
	})

	t.Run("actor resolution failure propagates", func(t *testing.T) {
		uc := NewAuditUseCase(
			&fakeAuditRepo{},
			&fakeActorResolver{err: apperrors.ErrNotFound},
			newTestCipher(t),
		)

		_, err := uc.Register(ctx, RegisterInput{
			Company: "acme",
			ActorID: actorID,
			Event:   auditDomain.EventSessionStarted,
			Target:  auditDomain.Target{Type: auditDomain.TargetSession},
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAuditUseCase_List(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.Must(uuid.NewV7())

	register := func(t *testing.T, uc AuditUseCase) {
		t.Helper()
		_, err := uc.Register(ctx, RegisterInput{
			Company:     "acme",
			ActorID:     actorID,
			Event:       auditDomain.EventTicketDeleted,
			Target:      auditDomain.Target{Type: auditDomain.TargetTicket, ID: "7"},
			Description: "free-form note",
			Sensitive:   true,
			Metadata:    map[string]any{"reason": "duplicate"},
		})
		require.NoError(t, err)
	}

	t.Run("without reveal returns stored ciphertext", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))
		register(t, uc)

		events, err := uc.List(ctx, "acme", 0, 10, nil, nil, false)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.True(t, strings.HasPrefix(events[0].Description, cryptoDomain.BlobPrefix))
	})

	t.Run("with reveal decrypts description and metadata", func(t *testing.T) {
		repo := &fakeAuditRepo{}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))
		register(t, uc)

		events, err := uc.List(ctx, "acme", 0, 10, nil, nil, true)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "free-form note", events[0].Description)
		assert.Equal(t, "duplicate", events[0].Metadata["reason"])
	})

	t.Run("legacy plaintext description passes through on reveal", func(t *testing.T) {
		repo := &fakeAuditRepo{events: []*auditDomain.AuditEvent{{
			Description: "written before encryption existed",
		}}}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		events, err := uc.List(ctx, "acme", 0, 10, nil, nil, true)
		require.NoError(t, err)
		assert.Equal(t, "written before encryption existed", events[0].Description)
	})

	t.Run("list failure propagates", func(t *testing.T) {
		repo := &fakeAuditRepo{listErr: apperrors.New("db down")}
		uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

		_, err := uc.List(ctx, "acme", 0, 10, nil, nil, false)
		assert.Error(t, err)
	})
}

func TestAuditUseCase_CleanUp(t *testing.T) {
	repo := &fakeAuditRepo{removed: 12}
	uc := NewAuditUseCase(repo, &fakeActorResolver{actor: testActor()}, newTestCipher(t))

	removed, err := uc.CleanUp(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(12), removed)
}
