package app

import (
	"fmt"

	authzRepository "github.com/allisson/trustcore/internal/authz/repository"
	authzService "github.com/allisson/trustcore/internal/authz/service"
	authzUseCase "github.com/allisson/trustcore/internal/authz/usecase"
)

// RoleRepository returns the role repository based on the database driver.
func (c *Container) RoleRepository() (authzUseCase.RoleRepository, error) {
	var err error
	c.roleRepoInit.Do(func() {
		c.roleRepo, err = c.initRoleRepository()
		if err != nil {
			c.initErrors["roleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleRepo"]; exists {
		return nil, storedErr
	}
	return c.roleRepo, nil
}

// TenantRepository returns the tenant repository based on the database driver.
func (c *Container) TenantRepository() (authzUseCase.TenantRepository, error) {
	var err error
	c.tenantRepoInit.Do(func() {
		c.tenantRepo, err = c.initTenantRepository()
		if err != nil {
			c.initErrors["tenantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantRepo"]; exists {
		return nil, storedErr
	}
	return c.tenantRepo, nil
}

// Hierarchy returns the role hierarchy service.
func (c *Container) Hierarchy() (authzService.RoleHierarchy, error) {
	var err error
	c.hierarchyInit.Do(func() {
		c.hierarchy, err = c.initHierarchy()
		if err != nil {
			c.initErrors["hierarchy"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hierarchy"]; exists {
		return nil, storedErr
	}
	return c.hierarchy, nil
}

// Gate returns the permission gate service.
func (c *Container) Gate() authzService.PermissionGate {
	c.gateInit.Do(func() {
		c.gate = authzService.NewGate()
	})
	return c.gate
}

// RoleUseCase returns the role use case.
func (c *Container) RoleUseCase() (authzUseCase.RoleUseCase, error) {
	var err error
	c.roleUseCaseInit.Do(func() {
		c.roleUseCase, err = c.initRoleUseCase()
		if err != nil {
			c.initErrors["roleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["roleUseCase"]; exists {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

// TenantUseCase returns the tenant use case.
func (c *Container) TenantUseCase() (authzUseCase.TenantUseCase, error) {
	var err error
	c.tenantUseCaseInit.Do(func() {
		c.tenantUseCase, err = c.initTenantUseCase()
		if err != nil {
			c.initErrors["tenantUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantUseCase"]; exists {
		return nil, storedErr
	}
	return c.tenantUseCase, nil
}

// initRoleRepository creates the role repository based on the database driver.
func (c *Container) initRoleRepository() (authzUseCase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLRoleRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLRoleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTenantRepository creates the tenant repository based on the database driver.
func (c *Container) initTenantRepository() (authzUseCase.TenantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tenant repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authzRepository.NewPostgreSQLTenantRepository(db), nil
	case "mysql":
		return authzRepository.NewMySQLTenantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initHierarchy creates the role hierarchy backed by the role repository.
func (c *Container) initHierarchy() (authzService.RoleHierarchy, error) {
	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for hierarchy: %w", err)
	}

	return authzService.NewHierarchy(roleRepo, c.Logger()), nil
}

// initRoleUseCase creates the role use case with all its dependencies.
func (c *Container) initRoleUseCase() (authzUseCase.RoleUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for role use case: %w", err)
	}

	roleRepo, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for role use case: %w", err)
	}

	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for role use case: %w", err)
	}

	hierarchy, err := c.Hierarchy()
	if err != nil {
		return nil, fmt.Errorf("failed to get hierarchy for role use case: %w", err)
	}

	audit, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for role use case: %w", err)
	}

	baseUseCase := authzUseCase.NewRoleUseCase(txManager, roleRepo, tenantRepo, hierarchy, c.Gate(), audit)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for role use case: %w", err)
		}
		return authzUseCase.NewRoleUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTenantUseCase creates the tenant use case with all its dependencies.
func (c *Container) initTenantUseCase() (authzUseCase.TenantUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for tenant use case: %w", err)
	}

	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for tenant use case: %w", err)
	}

	hierarchy, err := c.Hierarchy()
	if err != nil {
		return nil, fmt.Errorf("failed to get hierarchy for tenant use case: %w", err)
	}

	audit, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for tenant use case: %w", err)
	}

	return authzUseCase.NewTenantUseCase(txManager, tenantRepo, hierarchy, audit), nil
}
