package usecase

import (
	"context"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	cryptoService "github.com/allisson/trustcore/internal/crypto/service"
	apperrors "github.com/allisson/trustcore/internal/errors"
)

// actorResolver resolves principals into audit actor snapshots. Kept separate
// from PrincipalUseCase so the audit trail depends on a single small surface
// instead of the whole identity API.
type actorResolver struct {
	principalRepo PrincipalRepository
	cipher        cryptoService.Cipher
}

// Resolve loads the principal and returns its display fields decrypted.
// The snapshot is captured by the audit trail at write time.
func (a *actorResolver) Resolve(
	ctx context.Context,
	company string,
	principalID uuid.UUID,
) (*auditDomain.ActorSnapshot, error) {
	principal, err := a.principalRepo.GetByID(ctx, company, principalID)
	if err != nil {
		return nil, err
	}

	name, _, err := a.cipher.TryDecrypt(principal.Name)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt actor name")
	}

	surname, _, err := a.cipher.TryDecrypt(principal.Surname)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt actor surname")
	}

	email, _, err := a.cipher.TryDecrypt(principal.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt actor email")
	}

	return &auditDomain.ActorSnapshot{
		Name:    name,
		Surname: surname,
		Role:    principal.Role,
		Email:   email,
		Company: principal.Company,
		Status:  principal.Status,
	}, nil
}

// NewActorResolver creates the audit actor resolver backed by the principal
// repository.
func NewActorResolver(
	principalRepo PrincipalRepository,
	cipher cryptoService.Cipher,
) auditUseCase.ActorResolver {
	return &actorResolver{principalRepo: principalRepo, cipher: cipher}
}
