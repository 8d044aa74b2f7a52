// Package http provides HTTP handlers for principal management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	authzUseCase "github.com/allisson/trustcore/internal/authz/usecase"
	apperrors "github.com/allisson/trustcore/internal/errors"
	"github.com/allisson/trustcore/internal/httputil"
	"github.com/allisson/trustcore/internal/identity/http/dto"
	identityUseCase "github.com/allisson/trustcore/internal/identity/usecase"
	sessionHTTP "github.com/allisson/trustcore/internal/session/http"
	customValidation "github.com/allisson/trustcore/internal/validation"
)

// Permissions guarding principal management endpoints.
const (
	PermissionViewPrincipals   = "view_panel_admin"
	PermissionManagePrincipals = "manage_usuarios"
)

// PrincipalHandler handles HTTP requests for principal operations.
type PrincipalHandler struct {
	principals identityUseCase.PrincipalUseCase
	roles      authzUseCase.RoleUseCase
	logger     *slog.Logger
}

// NewPrincipalHandler creates a new principal handler with required dependencies.
func NewPrincipalHandler(
	principals identityUseCase.PrincipalUseCase,
	roles authzUseCase.RoleUseCase,
	logger *slog.Logger,
) *PrincipalHandler {
	return &PrincipalHandler{
		principals: principals,
		roles:      roles,
		logger:     logger,
	}
}

// requester resolves the acting principal from the request context.
func (h *PrincipalHandler) requester(c *gin.Context) (authzDomain.Requester, bool) {
	principal, ok := sessionHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return authzDomain.Requester{}, false
	}
	return authzDomain.Requester{
		PrincipalID: principal.ID,
		Role:        principal.Role,
		Company:     principal.Company,
	}, true
}

// RegisterHandler creates a new principal in the requester's tenant.
// POST /v1/principals - Requires the manage permission.
// Returns 201 Created with the decrypted principal view.
func (h *PrincipalHandler) RegisterHandler(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	if err := h.roles.Authorize(c.Request.Context(), requester, PermissionManagePrincipals); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var req dto.RegisterPrincipalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, err := h.principals.Register(c.Request.Context(), requester.PrincipalID, identityUseCase.RegisterInput{
		Company:  requester.Company,
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Cargo:    req.Cargo,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPrincipalResponse(principal))
}

// GetHandler retrieves a principal by ID within the requester's tenant.
// GET /v1/principals/:id - Requires the view permission.
func (h *PrincipalHandler) GetHandler(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	if err := h.roles.Authorize(c.Request.Context(), requester, PermissionViewPrincipals); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	principal, err := h.principals.GetByID(c.Request.Context(), requester.Company, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewPrincipalResponse(principal))
}

// ListHandler retrieves principals for the requester's tenant.
// GET /v1/principals?offset=0&limit=50 - Requires the view permission.
func (h *PrincipalHandler) ListHandler(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	if err := h.roles.Authorize(c.Request.Context(), requester, PermissionViewPrincipals); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	principals, err := h.principals.List(c.Request.Context(), requester.Company, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalsToListResponse(principals, offset, limit))
}

// UpdateEmailHandler changes a principal's email address.
// PUT /v1/principals/:id/email - Requires the manage permission.
// Returns 204 No Content.
func (h *PrincipalHandler) UpdateEmailHandler(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	if err := h.roles.Authorize(c.Request.Context(), requester, PermissionManagePrincipals); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err = h.principals.UpdateEmail(c.Request.Context(), requester.PrincipalID, requester.Company, id, req.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeactivateHandler marks a principal inactive.
// DELETE /v1/principals/:id - Requires the manage permission.
// Returns 204 No Content.
func (h *PrincipalHandler) DeactivateHandler(c *gin.Context) {
	requester, ok := h.requester(c)
	if !ok {
		return
	}

	if err := h.roles.Authorize(c.Request.Context(), requester, PermissionManagePrincipals); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid id format: must be a valid UUID"),
			h.logger)
		return
	}

	err = h.principals.Deactivate(c.Request.Context(), requester.PrincipalID, requester.Company, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
