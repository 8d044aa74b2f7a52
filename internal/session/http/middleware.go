package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/trustcore/internal/httputil"
	sessionUseCase "github.com/allisson/trustcore/internal/session/usecase"
)

// tokenBodyEnvelope matches the legacy request shape that carries the session
// token inside the user object of the JSON body.
type tokenBodyEnvelope struct {
	User struct {
		Token string `json:"token"`
	} `json:"user"`
}

// ExtractToken returns the session token from the request, checking sources in
// order of precedence: Authorization header (Bearer scheme, case-insensitive),
// then the user.token field of a JSON body, then the token query parameter.
// The first non-empty value wins. The request body is restored after reading
// so downstream handlers can bind it again.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "bearer "
	if len(authHeader) >= len(bearerPrefix) &&
		strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		if token := strings.TrimSpace(authHeader[len(bearerPrefix):]); token != "" {
			return token
		}
	}

	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			var envelope tokenBodyEnvelope
			if err := json.Unmarshal(body, &envelope); err == nil && envelope.User.Token != "" {
				return envelope.User.Token
			}
		}
	}

	return c.Query("token")
}

// SessionMiddleware authenticates requests via session token.
//
// The token is extracted with ExtractToken, validated against the session
// store, and the resolved principal is placed in the request context for
// downstream handlers via GetPrincipal. All validation failures collapse into
// a generic 401 so callers cannot probe for token state.
func SessionMiddleware(
	sessions sessionUseCase.SessionUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken := ExtractToken(c)

		principal, err := sessions.Validate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("session authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
