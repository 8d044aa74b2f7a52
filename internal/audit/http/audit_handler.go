// Package http provides HTTP handlers for the audit trail.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustcore/internal/audit/http/dto"
	auditUseCase "github.com/allisson/trustcore/internal/audit/usecase"
	authzDomain "github.com/allisson/trustcore/internal/authz/domain"
	authzService "github.com/allisson/trustcore/internal/authz/service"
	apperrors "github.com/allisson/trustcore/internal/errors"
	"github.com/allisson/trustcore/internal/httputil"
	sessionHTTP "github.com/allisson/trustcore/internal/session/http"
)

// AuditHandler handles HTTP requests for audit trail operations.
type AuditHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	hierarchy    authzService.RoleHierarchy
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler with required dependencies.
func NewAuditHandler(
	audit auditUseCase.AuditUseCase,
	hierarchy authzService.RoleHierarchy,
	logger *slog.Logger,
) *AuditHandler {
	return &AuditHandler{
		auditUseCase: audit,
		hierarchy:    hierarchy,
		logger:       logger,
	}
}

// ListHandler retrieves audit events with pagination and optional time filtering.
// GET /v1/audit-events?offset=0&limit=50&created_at_from=...&created_at_to=...&reveal=true
// Events are scoped to the requester's tenant and ordered newest first. Time
// boundaries are RFC3339 and inclusive. The reveal flag decrypts sensitive
// descriptions and metadata, and only the maximum authority level may use it.
func (h *AuditHandler) ListHandler(c *gin.Context) {
	principal, ok := sessionHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var createdAtFrom *time.Time
	if fromStr := c.Query("created_at_from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_from format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtFrom = &utcTime
	}

	var createdAtTo *time.Time
	if toStr := c.Query("created_at_to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid created_at_to format: must be RFC3339 (e.g., 2026-02-14T23:59:59Z)"),
				h.logger)
			return
		}
		utcTime := parsed.UTC()
		createdAtTo = &utcTime
	}

	if createdAtFrom != nil && createdAtTo != nil && createdAtFrom.After(*createdAtTo) {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("created_at_from must be before or equal to created_at_to"),
			h.logger)
		return
	}

	reveal := c.Query("reveal") == "true"
	if reveal {
		level := h.hierarchy.Level(c.Request.Context(), principal.Company, principal.Role)
		if level != authzDomain.LevelMaestro {
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, h.logger)
			return
		}
	}

	events, err := h.auditUseCase.List(
		c.Request.Context(),
		principal.Company,
		offset, limit,
		createdAtFrom, createdAtTo,
		reveal,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditEventsToListResponse(events, offset, limit))
}
