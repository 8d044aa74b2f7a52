// Package http provides the API server: routing, health endpoints, and the
// shared HTTP middleware stack.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/allisson/trustcore/internal/audit/http"
	authzHTTP "github.com/allisson/trustcore/internal/authz/http"
	identityHTTP "github.com/allisson/trustcore/internal/identity/http"
	sessionHTTP "github.com/allisson/trustcore/internal/session/http"
	sessionUseCase "github.com/allisson/trustcore/internal/session/usecase"
)

// Handlers bundles the route handlers and optional middleware the API server
// mounts. Nil optional entries are skipped.
type Handlers struct {
	Sessions   sessionUseCase.SessionUseCase
	Session    *sessionHTTP.SessionHandler
	Principal  *identityHTTP.PrincipalHandler
	Role       *authzHTTP.RoleHandler
	Tenant     *authzHTTP.TenantHandler
	Audit      *auditHTTP.AuditHandler
	LoginLimit gin.HandlerFunc
	CORS       gin.HandlerFunc
	Metrics    gin.HandlerFunc
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new API server with all routes registered.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
	handlers Handlers,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if handlers.CORS != nil {
		router.Use(handlers.CORS)
	}
	if handlers.Metrics != nil {
		router.Use(handlers.Metrics)
	}

	server := &Server{
		router: router,
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	server.registerRoutes(handlers)

	return server
}

// registerRoutes mounts the v1 API routes.
func (s *Server) registerRoutes(handlers Handlers) {
	v1 := s.router.Group("/v1")

	if handlers.Session != nil {
		if handlers.LoginLimit != nil {
			v1.POST("/login", handlers.LoginLimit, handlers.Session.LoginHandler)
		} else {
			v1.POST("/login", handlers.Session.LoginHandler)
		}
	}

	if handlers.Sessions == nil {
		return
	}

	authenticated := v1.Group("")
	authenticated.Use(sessionHTTP.SessionMiddleware(handlers.Sessions, s.logger))

	if handlers.Session != nil {
		authenticated.POST("/logout", handlers.Session.LogoutHandler)
	}

	if handlers.Principal != nil {
		authenticated.POST("/principals", handlers.Principal.RegisterHandler)
		authenticated.GET("/principals", handlers.Principal.ListHandler)
		authenticated.GET("/principals/:id", handlers.Principal.GetHandler)
		authenticated.PUT("/principals/:id/email", handlers.Principal.UpdateEmailHandler)
		authenticated.DELETE("/principals/:id", handlers.Principal.DeactivateHandler)
	}

	if handlers.Role != nil {
		authenticated.POST("/roles", handlers.Role.CreateHandler)
		authenticated.GET("/roles", handlers.Role.ListHandler)
		authenticated.PUT("/roles/:id", handlers.Role.UpdateHandler)
	}

	if handlers.Tenant != nil {
		authenticated.GET("/tenant", handlers.Tenant.GetHandler)
		authenticated.POST("/tenants/:company/suspend", handlers.Tenant.SuspendHandler)
		authenticated.POST("/tenants/:company/reinstate", handlers.Tenant.ReinstateHandler)
	}

	if handlers.Audit != nil {
		authenticated.GET("/audit-events", handlers.Audit.ListHandler)
	}
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness including database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := "ready"
	code := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		} else {
			components["database"] = "ok"
		}
	}

	c.JSON(code, gin.H{"status": status, "components": components})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting api server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start api server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down api server")
	return s.server.Shutdown(ctx)
}
