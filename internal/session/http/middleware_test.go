package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/trustcore/internal/identity/domain"
	sessionDomain "github.com/allisson/trustcore/internal/session/domain"
	sessionUseCase "github.com/allisson/trustcore/internal/session/usecase"
)

// fakeSessions accepts a single known token.
type fakeSessions struct {
	validToken string
	principal  *identityDomain.Principal
	loggedOut  []string
}

func (f *fakeSessions) Login(
	_ context.Context,
	_, _, _ string,
) (*sessionUseCase.LoginOutput, error) {
	return nil, identityDomain.ErrInvalidCredentials
}

func (f *fakeSessions) Validate(
	_ context.Context,
	plainToken string,
) (*identityDomain.Principal, error) {
	if plainToken == "" {
		return nil, sessionDomain.ErrTokenMalformed
	}
	if plainToken != f.validToken {
		return nil, sessionDomain.ErrTokenNotFound
	}
	return f.principal, nil
}

func (f *fakeSessions) Logout(_ context.Context, plainToken string) error {
	f.loggedOut = append(f.loggedOut, plainToken)
	return nil
}

func (f *fakeSessions) CleanExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func testMiddlewareLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupProtectedRouter(sessions sessionUseCase.SessionUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/protected", SessionMiddleware(sessions, testMiddlewareLogger()), func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": principal.Email})
	})
	return router
}

func TestSessionMiddleware(t *testing.T) {
	principal := &identityDomain.Principal{
		ID:      uuid.Must(uuid.NewV7()),
		Company: "acme",
		Email:   "ana@corp.com",
		Status:  identityDomain.StatusActive,
	}

	t.Run("bearer header token authenticates", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		router := setupProtectedRouter(sessions)

		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ana@corp.com")
	})

	t.Run("bearer scheme is case-insensitive", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		router := setupProtectedRouter(sessions)

		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		req.Header.Set("Authorization", "BEARER good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("body token authenticates when header is absent", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		router := setupProtectedRouter(sessions)

		body := strings.NewReader(`{"user": {"token": "good-token"}}`)
		req := httptest.NewRequest(http.MethodPost, "/protected", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("query token authenticates as last resort", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		router := setupProtectedRouter(sessions)

		req := httptest.NewRequest(http.MethodPost, "/protected?token=good-token", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("header wins over body and query", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "header-token", principal: principal}
		router := setupProtectedRouter(sessions)

		body := strings.NewReader(`{"user": {"token": "body-token"}}`)
		req := httptest.NewRequest(http.MethodPost, "/protected?token=query-token", body)
		req.Header.Set("Authorization", "Bearer header-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token yields generic 401", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		router := setupProtectedRouter(sessions)

		req := httptest.NewRequest(http.MethodPost, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})

	t.Run("unknown token yields the same generic 401", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		router := setupProtectedRouter(sessions)

		missing := httptest.NewRequest(http.MethodPost, "/protected", nil)
		missingRec := httptest.NewRecorder()
		router.ServeHTTP(missingRec, missing)

		unknown := httptest.NewRequest(http.MethodPost, "/protected", nil)
		unknown.Header.Set("Authorization", "Bearer wrong-token")
		unknownRec := httptest.NewRecorder()
		router.ServeHTTP(unknownRec, unknown)

		assert.Equal(t, http.StatusUnauthorized, unknownRec.Code)
		assert.Equal(t, missingRec.Body.String(), unknownRec.Body.String())
	})

	t.Run("body is restored for downstream handlers", func(t *testing.T) {
		sessions := &fakeSessions{validToken: "good-token", principal: principal}
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/echo", SessionMiddleware(sessions, testMiddlewareLogger()), func(c *gin.Context) {
			payload, err := io.ReadAll(c.Request.Body)
			require.NoError(t, err)
			c.String(http.StatusOK, string(payload))
		})

		raw := `{"user": {"token": "good-token"}, "note": "keep me"}`
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader([]byte(raw)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, raw, w.Body.String())
	})
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", LoginRateLimitMiddleware(1.0, 2, testMiddlewareLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// Burst of 2 passes, the third request is limited.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
