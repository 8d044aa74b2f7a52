package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// auditUseCase implements AuditUseCase.
type auditUseCase struct {
	auditRepo     AuditEventRepository
	actorResolver ActorResolver
	cipher        cryptoService.Cipher
}

// Register records an audit event.
//
// The actor snapshot is resolved from the live principal record at write time
// so the event stays readable after the principal changes. When the caller
// marks the description sensitive it is encrypted at rest; non-empty metadata
// is always encrypted, string leaf by string leaf. The write fails loudly: if
// the repository cannot confirm a generated identifier the caller receives
// ErrAuditWriteFailed and decides whether the surrounding operation proceeds.
func (a *auditUseCase) Register(
	ctx context.Context,
	input RegisterInput,
) (*auditDomain.AuditEvent, error) {
	if !input.Event.Valid() {
		return nil, auditDomain.ErrUnknownEventCode
	}
	if !input.Target.Type.Valid() {
		return nil, auditDomain.ErrUnknownTargetType
	}

	actor, err := a.actorResolver.Resolve(ctx, input.Company, input.ActorID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to resolve audit actor")
	}

	description := input.Description
	if description == "" {
		description = input.Event.Description()
	}
	if input.Sensitive {
		description, err = a.cipher.Encrypt(description)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encrypt audit description")
		}
	}

	metadata := input.Metadata
	if len(metadata) > 0 {
		metadata, err = a.cipher.EncryptMap(metadata)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encrypt audit metadata")
		}
	}

	event := &auditDomain.AuditEvent{
		ID:          uuid.Must(uuid.NewV7()),
		Company:     input.Company,
		ActorID:     input.ActorID,
		Actor:       *actor,
		Event:       input.Event,
		Target:      input.Target,
		Description: description,
		Sensitive:   input.Sensitive,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC(),
	}

	if err := a.auditRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("%w: %v", auditDomain.ErrAuditWriteFailed, err)
	}

	return event, nil
}

// List retrieves audit events for a tenant, newest first. With reveal set,
// encrypted descriptions and metadata are decrypted in place before returning.
// Legacy plaintext descriptions pass through unchanged; a key mismatch still
// fails the call.
func (a *auditUseCase) List(
	ctx context.Context,
	company string,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
	reveal bool,
) ([]*auditDomain.AuditEvent, error) {
	events, err := a.auditRepo.List(ctx, company, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}

	if !reveal {
		return events, nil
	}

	for _, event := range events {
		plaintext, _, err := a.cipher.TryDecrypt(event.Description)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decrypt audit description")
		}
		event.Description = plaintext

		if len(event.Metadata) > 0 {
			metadata, err := a.cipher.DecryptMap(event.Metadata)
			if err != nil {
				return nil, apperrors.Wrap(err, "failed to decrypt audit metadata")
			}
			event.Metadata = metadata
		}
	}

	return events, nil
}

// CleanUp removes audit events older than the retention period.
func (a *auditUseCase) CleanUp(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)

	removed, err := a.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to clean up audit events")
	}

	return removed, nil
}

// NewAuditUseCase creates a new AuditUseCase with the provided dependencies.
func NewAuditUseCase(
	auditRepo AuditEventRepository,
	actorResolver ActorResolver,
	cipher cryptoService.Cipher,
) AuditUseCase {
	return &auditUseCase{
		auditRepo:     auditRepo,
		actorResolver: actorResolver,
		cipher:        cipher,
	}
}
