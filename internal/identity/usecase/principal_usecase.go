package usecase

import (
	"context"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
	"github.com/allisson/trustcore/internal/database"
	apperrors "github.com/allisson/trustcore/internal/errors"
	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
	appValidation "github.com/allisson/trustcore/internal/validation"
)

// principalUseCase implements PrincipalUseCase.
type principalUseCase struct {
	txManager      database.TxManager
	principalRepo  PrincipalRepository
	cipher         cryptoService.Cipher
	indexer        cryptoService.Indexer
	auditUseCase   auditUseCase.AuditUseCase
	passwordHasher *pwdhash.PasswordHasher
}

// validateRegisterInput validates registration input before any encryption work.
func validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Company, validation.Required),
		validation.Field(&input.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&input.Surname, validation.Required, validation.Length(1, 255)),
		validation.Field(&input.Email, validation.Required, appValidation.Email{}),
		validation.Field(&input.Role, validation.Required),
		validation.Field(&input.Password, validation.Required, validation.Length(8, 128)),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a principal.
//
// PII fields are encrypted immediately and the mail blind index is computed
// once from the normalized email. The insert and the audit record run in one
// transaction: either the principal exists with its creation audited, or
// neither happened. Duplicate emails surface as ErrEmailTaken from the
// mail_index unique constraint, which also closes the concurrent
// check-then-insert race.
func (p *principalUseCase) Register(
	ctx context.Context,
	actorID uuid.UUID,
	input RegisterInput,
) (*identityDomain.Principal, error) {
	if err := validateRegisterInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := p.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	encrypted, err := p.encryptPII(input.Name, input.Surname, input.Email, input.Cargo)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	principal := &identityDomain.Principal{
		ID:           uuid.Must(uuid.NewV7()),
		Company:      input.Company,
		Name:         encrypted[0],
		Surname:      encrypted[1],
		Email:        encrypted[2],
		Cargo:        encrypted[3],
		MailIndex:    p.indexer.Index(input.Email),
		Role:         input.Role,
		Status:       identityDomain.StatusActive,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Self-registration has no separate actor; the new principal is the actor.
	if actorID == uuid.Nil {
		actorID = principal.ID
	}

	err = p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := p.principalRepo.Create(txCtx, principal); err != nil {
			return err
		}

		_, err := p.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: input.Company,
			ActorID: actorID,
			Event:   auditDomain.EventPrincipalCreated,
			Target: auditDomain.Target{
				Type: auditDomain.TargetPrincipal,
				ID:   principal.ID.String(),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	// Hand the caller the plaintext view of what was just stored.
	result := *principal
	result.Name = input.Name
	result.Surname = input.Surname
	result.Email = input.Email
	result.Cargo = input.Cargo
	return &result, nil
}

// GetByEmail retrieves a principal by email. The lookup uses the blind index
// only: the stored email ciphertext is never scanned or compared.
func (p *principalUseCase) GetByEmail(
	ctx context.Context,
	company, email string,
) (*identityDomain.Principal, error) {
	principal, err := p.principalRepo.GetByMailIndex(ctx, company, p.indexer.Index(email))
	if err != nil {
		return nil, err
	}

	return p.decryptPrincipal(principal)
}

// GetByID retrieves a principal by ID with PII fields decrypted.
func (p *principalUseCase) GetByID(
	ctx context.Context,
	company string,
	id uuid.UUID,
) (*identityDomain.Principal, error) {
	principal, err := p.principalRepo.GetByID(ctx, company, id)
	if err != nil {
		return nil, err
	}

	return p.decryptPrincipal(principal)
}

// UpdateEmail changes a principal's email. The new ciphertext and the new
// blind index are computed together and written in one statement, so a reader
// can never observe an index pointing at a stale address.
func (p *principalUseCase) UpdateEmail(
	ctx context.Context,
	actorID uuid.UUID,
	company string,
	id uuid.UUID,
	newEmail string,
) error {
	if err := (appValidation.Email{}).Validate(newEmail); err != nil {
		return appValidation.WrapValidationError(err)
	}

	principal, err := p.principalRepo.GetByID(ctx, company, id)
	if err != nil {
		return err
	}

	encryptedEmail, err := p.cipher.Encrypt(newEmail)
	if err != nil {
		return apperrors.Wrap(err, "failed to encrypt email")
	}

	return p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := p.principalRepo.UpdateEmail(txCtx, principal.ID, encryptedEmail, p.indexer.Index(newEmail)); err != nil {
			return err
		}

		_, err := p.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: company,
			ActorID: actorID,
			Event:   auditDomain.EventPrincipalUpdated,
			Target: auditDomain.Target{
				Type: auditDomain.TargetPrincipal,
				ID:   principal.ID.String(),
			},
			Metadata: map[string]any{"field": "email"},
		})
		return err
	})
}

// Deactivate marks a principal inactive and audits the change.
func (p *principalUseCase) Deactivate(
	ctx context.Context,
	actorID uuid.UUID,
	company string,
	id uuid.UUID,
) error {
	principal, err := p.principalRepo.GetByID(ctx, company, id)
	if err != nil {
		return err
	}

	return p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := p.principalRepo.UpdateStatus(txCtx, principal.ID, identityDomain.StatusInactive); err != nil {
			return err
		}

		_, err := p.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: company,
			ActorID: actorID,
			Event:   auditDomain.EventPrincipalDeleted,
			Target: auditDomain.Target{
				Type: auditDomain.TargetPrincipal,
				ID:   principal.ID.String(),
			},
		})
		return err
	})
}

// List retrieves principals for a tenant with PII fields decrypted.
func (p *principalUseCase) List(
	ctx context.Context,
	company string,
	offset, limit int,
) ([]*identityDomain.Principal, error) {
	principals, err := p.principalRepo.List(ctx, company, offset, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*identityDomain.Principal, 0, len(principals))
	for _, principal := range principals {
		decrypted, err := p.decryptPrincipal(principal)
		if err != nil {
			return nil, err
		}
		result = append(result, decrypted)
	}

	return result, nil
}

// encryptPII encrypts the given PII fields in order.
func (p *principalUseCase) encryptPII(fields ...string) ([]string, error) {
	result := make([]string, len(fields))
	for i, field := range fields {
		encrypted, err := p.cipher.Encrypt(field)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to encrypt principal field")
		}
		result[i] = encrypted
	}
	return result, nil
}

// decryptPrincipal returns a copy with PII fields decrypted. Records that
// predate encryption pass through as-is; a key mismatch still fails.
func (p *principalUseCase) decryptPrincipal(
	principal *identityDomain.Principal,
) (*identityDomain.Principal, error) {
	result := *principal

	for _, field := range []*string{&result.Name, &result.Surname, &result.Email, &result.Cargo} {
		plaintext, _, err := p.cipher.TryDecrypt(*field)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decrypt principal field")
		}
		*field = plaintext
	}

	return &result, nil
}

// NewPrincipalUseCase creates a new PrincipalUseCase with the provided dependencies.
func NewPrincipalUseCase(
	txManager database.TxManager,
	principalRepo PrincipalRepository,
	cipher cryptoService.Cipher,
	indexer cryptoService.Indexer,
	audit auditUseCase.AuditUseCase,
) (PrincipalUseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &principalUseCase{
		txManager:      txManager,
		principalRepo:  principalRepo,
		cipher:         cipher,
		indexer:        indexer,
		auditUseCase:   audit,
		passwordHasher: hasher,
	}, nil
}
