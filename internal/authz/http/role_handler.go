// Package http provides HTTP handlers for role and tenant management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	"github.com/allisson/trustcore/internal/authz/http/dto"
	authzUseCase "github.com/allisson/trustcore/internal/authz/usecase"
	apperrors "github.com/allisson/trustcore/internal/errors"
	"github.com/allisson/trustcore/internal/httputil"
	sessionHTTP "github.com/allisson/trustcore/internal/session/http"
	customValidation "github.com/allisson/trustcore/internal/validation"
)

// RoleHandler handles HTTP requests for role operations.
type RoleHandler struct {
	roles  authzUseCase.RoleUseCase
	logger *slog.Logger
}

// NewRoleHandler creates a new role handler with required dependencies.
func NewRoleHandler(roles authzUseCase.RoleUseCase, logger *slog.Logger) *RoleHandler {
	return &RoleHandler{
		roles:  roles,
		logger: logger,
	}
}

// requesterFromContext resolves the acting principal into a Requester.
func requesterFromContext(c *gin.Context, logger *slog.Logger) (authzDomain.Requester, bool) {
	principal, ok := sessionHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return authzDomain.Requester{}, false
	}
	return authzDomain.Requester{
		PrincipalID: principal.ID,
		Role:        principal.Role,
		Company:     principal.Company,
	}, true
}

// CreateHandler creates a new role in the requester's tenant.
// POST /v1/roles - The assignment ceiling is enforced by the use case.
// Returns 201 Created with the role.
func (h *RoleHandler) CreateHandler(c *gin.Context) {
	requester, ok := requesterFromContext(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	role, err := h.roles.Create(c.Request.Context(), requester, authzUseCase.CreateRoleInput{
		Name:        req.Name,
		Level:       req.Level,
		Permissions: req.Permissions,
		Color:       req.Color,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRoleResponse(role))
}

// UpdateHandler updates an existing role.
// PUT /v1/roles/:id - The ceiling applies to the current and requested levels.
// Returns 200 OK with the updated role.
func (h *RoleHandler) UpdateHandler(c *gin.Context) {
	requester, ok := requesterFromContext(c, h.logger)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	role, err := h.roles.Update(c.Request.Context(), requester, id, authzUseCase.UpdateRoleInput{
		Name:        req.Name,
		Level:       req.Level,
		Permissions: req.Permissions,
		Color:       req.Color,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewRoleResponse(role))
}

// ListHandler retrieves the roles visible to the requester.
// GET /v1/roles?offset=0&limit=50 - Suspension narrowing and maestro
// visibility are applied by the use case.
func (h *RoleHandler) ListHandler(c *gin.Context) {
	requester, ok := requesterFromContext(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	roles, err := h.roles.List(c.Request.Context(), requester, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRolesToListResponse(roles, offset, limit))
}
