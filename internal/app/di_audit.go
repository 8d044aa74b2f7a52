package app

import (
	"fmt"

	auditRepository "github.com/allisson/trustcore/internal/audit/repository"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
)

// AuditEventRepository returns the audit event repository based on the database driver.
func (c *Container) AuditEventRepository() (auditUseCase.AuditEventRepository, error) {
	var err error
	c.auditRepoInit.Do(func() {
		c.auditRepo, err = c.initAuditEventRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUseCase.AuditUseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// initAuditEventRepository creates the audit event repository based on the database driver.
func (c *Container) initAuditEventRepository() (auditUseCase.AuditEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit event repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return auditRepository.NewPostgreSQLAuditEventRepository(db), nil
	case "mysql":
		return auditRepository.NewMySQLAuditEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUseCase.AuditUseCase, error) {
	auditRepo, err := c.AuditEventRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event repository for audit use case: %w", err)
	}

	actorResolver, err := c.ActorResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get actor resolver for audit use case: %w", err)
	}

	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for audit use case: %w", err)
	}

	return auditUseCase.NewAuditUseCase(auditRepo, actorResolver, cipher), nil
}
