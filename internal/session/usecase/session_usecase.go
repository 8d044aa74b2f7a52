package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/trustcore/internal/audit/domain"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	"github.com/allisson/trustcore/internal/database"
	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
	sessionDomain "github.com/allisson/trustcore/internal/session/domain"
	sessionService "github.com/allisson/trustcore/internal/session/service"
)

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	txManager       database.TxManager
	sessionRepo     SessionRepository
	identity        IdentityProvider
	tokenService    sessionService.TokenService
	passwordService sessionService.PasswordService
	auditUseCase    auditUseCase.AuditUseCase
	expiration      time.Duration
}

// Login authenticates an email/password pair and issues a session token.
//
// The email is resolved through the blind index, so the lookup never touches
// plaintext at rest. Unknown email, wrong password, and inactive principal all
// collapse into ErrInvalidCredentials to prevent account enumeration. The
// session insert and the login audit event run in one transaction.
func (s *sessionUseCase) Login(
	ctx context.Context,
	company, email, password string,
) (*LoginOutput, error) {
	principal, err := s.identity.GetByEmail(ctx, company, email)
	if err != nil {
		if errors.Is(err, identityDomain.ErrPrincipalNotFound) {
			return nil, identityDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if principal.Status != identityDomain.StatusActive {
		return nil, identityDomain.ErrInvalidCredentials
	}

	if !s.passwordService.Compare(password, principal.PasswordHash) {
		return nil, identityDomain.ErrInvalidCredentials
	}

	plainToken, tokenHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &sessionDomain.Session{
		ID:          uuid.Must(uuid.NewV7()),
		PrincipalID: principal.ID,
		Company:     principal.Company,
		TokenHash:   tokenHash,
		ExpiresAt:   now.Add(s.expiration),
		CreatedAt:   now,
	}

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.Create(txCtx, session); err != nil {
			return err
		}

		_, err := s.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: principal.Company,
			ActorID: principal.ID,
			Event:   auditDomain.EventSessionStarted,
			Target: auditDomain.Target{
				Type: auditDomain.TargetSession,
				ID:   session.ID.String(),
			},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{PlainToken: plainToken, Principal: principal}, nil
}

// Validate resolves a plain token to its principal.
//
// A missing token fails with ErrTokenNotFound. An expired session is deleted
// before failing with ErrTokenExpired: the record is gone, so retrying the
// same token yields ErrTokenNotFound. Expiry is the only lifetime check.
func (s *sessionUseCase) Validate(
	ctx context.Context,
	plainToken string,
) (*identityDomain.Principal, error) {
	if plainToken == "" {
		return nil, sessionDomain.ErrTokenMalformed
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, s.tokenService.HashToken(plainToken))
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, sessionDomain.ErrTokenExpired
	}

	return s.identity.GetByID(ctx, session.Company, session.PrincipalID)
}

// Logout deletes the session for the given token and audits the closure.
// Unknown tokens succeed silently: logout is idempotent.
func (s *sessionUseCase) Logout(ctx context.Context, plainToken string) error {
	if plainToken == "" {
		return sessionDomain.ErrTokenMalformed
	}

	session, err := s.sessionRepo.GetByTokenHash(ctx, s.tokenService.HashToken(plainToken))
	if err != nil {
		if errors.Is(err, sessionDomain.ErrTokenNotFound) {
			return nil
		}
		return err
	}

	return s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.sessionRepo.Delete(txCtx, session.ID); err != nil {
			return err
		}

		_, err := s.auditUseCase.Register(txCtx, auditUseCase.RegisterInput{
			Company: session.Company,
			ActorID: session.PrincipalID,
			Event:   auditDomain.EventSessionClosed,
			Target: auditDomain.Target{
				Type: auditDomain.TargetSession,
				ID:   session.ID.String(),
			},
		})
		return err
	})
}

// CleanExpired removes all expired sessions.
func (s *sessionUseCase) CleanExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	txManager database.TxManager,
	sessionRepo SessionRepository,
	identity IdentityProvider,
	tokenService sessionService.TokenService,
	passwordService sessionService.PasswordService,
	audit auditUseCase.AuditUseCase,
	expiration time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		txManager:       txManager,
		sessionRepo:     sessionRepo,
		identity:        identity,
		tokenService:    tokenService,
		passwordService: passwordService,
		auditUseCase:    audit,
		expiration:      expiration,
	}
}
