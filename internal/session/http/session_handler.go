package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustcore/internal/httputil"
	"github.com/allisson/trustcore/internal/session/http/dto"
	sessionUseCase "github.com/allisson/trustcore/internal/session/usecase"
	customValidation "github.com/allisson/trustcore/internal/validation"
)

// SessionHandler handles HTTP requests for session operations.
type SessionHandler struct {
	sessions sessionUseCase.SessionUseCase
	logger   *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessions sessionUseCase.SessionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// LoginHandler authenticates an email/password pair and issues a session token.
// POST /v1/login - No authentication required (this is the authentication endpoint).
// Returns 201 Created with the token and the decrypted principal.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessions.Login(c.Request.Context(), req.Company, req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.LoginResponse{
		Token:     output.PlainToken,
		Principal: dto.NewPrincipalResponse(output.Principal),
	}

	c.JSON(http.StatusCreated, response)
}

// LogoutHandler closes the session for the presented token.
// POST /v1/logout - Accepts the token from any of the supported sources.
// Returns 204 No Content. Unknown tokens still succeed: logout is idempotent.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	plainToken := ExtractToken(c)

	if err := h.sessions.Logout(c.Request.Context(), plainToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
