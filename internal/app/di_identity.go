package app

import (
	"fmt"

	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	identityRepository "github.com/allisson/trustcore/internal/identity/repository"
	identityUseCase "github.com/allisson/trustcore/internal/identity/usecase"
)

// PrincipalRepository returns the principal repository based on the database driver.
func (c *Container) PrincipalRepository() (identityUseCase.PrincipalRepository, error) {
	var err error
	c.principalRepoInit.Do(func() {
		c.principalRepo, err = c.initPrincipalRepository()
		if err != nil {
			c.initErrors["principalRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalRepo"]; exists {
		return nil, storedErr
	}
	return c.principalRepo, nil
}

// ActorResolver returns the audit actor resolver.
func (c *Container) ActorResolver() (auditUseCase.ActorResolver, error) {
	var err error
	c.actorResolverInit.Do(func() {
		c.actorResolver, err = c.initActorResolver()
		if err != nil {
			c.initErrors["actorResolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["actorResolver"]; exists {
		return nil, storedErr
	}
	return c.actorResolver, nil
}

// PrincipalUseCase returns the principal use case.
func (c *Container) PrincipalUseCase() (identityUseCase.PrincipalUseCase, error) {
	var err error
	c.principalUseCaseInit.Do(func() {
		c.principalUseCase, err = c.initPrincipalUseCase()
		if err != nil {
			c.initErrors["principalUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["principalUseCase"]; exists {
		return nil, storedErr
	}
	return c.principalUseCase, nil
}

// initPrincipalRepository creates the principal repository based on the database driver.
func (c *Container) initPrincipalRepository() (identityUseCase.PrincipalRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for principal repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return identityRepository.NewPostgreSQLPrincipalRepository(db), nil
	case "mysql":
		return identityRepository.NewMySQLPrincipalRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initActorResolver creates the actor resolver backed by the principal repository.
func (c *Container) initActorResolver() (auditUseCase.ActorResolver, error) {
	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for actor resolver: %w", err)
	}

	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for actor resolver: %w", err)
	}

	return identityUseCase.NewActorResolver(principalRepo, cipher), nil
}

// initPrincipalUseCase creates the principal use case with all its dependencies.
func (c *Container) initPrincipalUseCase() (identityUseCase.PrincipalUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for principal use case: %w", err)
	}

	principalRepo, err := c.PrincipalRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get principal repository for principal use case: %w", err)
	}

	cipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for principal use case: %w", err)
	}

	indexer, err := c.BlindIndexer()
	if err != nil {
		return nil, fmt.Errorf("failed to get blind indexer for principal use case: %w", err)
	}

	audit, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for principal use case: %w", err)
	}

	useCase, err := identityUseCase.NewPrincipalUseCase(txManager, principalRepo, cipher, indexer, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to create principal use case: %w", err)
	}

	return useCase, nil
}
