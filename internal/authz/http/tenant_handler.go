package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustcore/internal/authz/http/dto"
	authzUseCase "github.com/allisson/trustcore/internal/authz/usecase"
	"github.com/allisson/trustcore/internal/httputil"
)

// TenantHandler handles HTTP requests for tenant operations.
type TenantHandler struct {
	tenants authzUseCase.TenantUseCase
	logger  *slog.Logger
}

// NewTenantHandler creates a new tenant handler with required dependencies.
func NewTenantHandler(tenants authzUseCase.TenantUseCase, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{
		tenants: tenants,
		logger:  logger,
	}
}

// GetHandler retrieves the requester's tenant.
// GET /v1/tenant
func (h *TenantHandler) GetHandler(c *gin.Context) {
	requester, ok := requesterFromContext(c, h.logger)
	if !ok {
		return
	}

	tenant, err := h.tenants.GetByCompany(c.Request.Context(), requester.Company)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTenantResponse(tenant))
}

// SuspendHandler marks a tenant as suspended.
// POST /v1/tenants/:company/suspend - Maximum authority level only.
// Returns 204 No Content.
func (h *TenantHandler) SuspendHandler(c *gin.Context) {
	requester, ok := requesterFromContext(c, h.logger)
	if !ok {
		return
	}

	if err := h.tenants.Suspend(c.Request.Context(), requester, c.Param("company")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ReinstateHandler clears a tenant's suspension flag.
// POST /v1/tenants/:company/reinstate - Maximum authority level only.
// Returns 204 No Content.
func (h *TenantHandler) ReinstateHandler(c *gin.Context) {
	requester, ok := requesterFromContext(c, h.logger)
	if !ok {
		return
	}

	if err := h.tenants.Reinstate(c.Request.Context(), requester, c.Param("company")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
