// Package auth provides the authentication module: JWT login and refresh for
// API access plus admin-managed user accounts.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"usinagem_backend/internal/auth/handler"
	"usinagem_backend/internal/auth/repository"
	"usinagem_backend/internal/auth/service"
	apphttp "usinagem_backend/internal/http"
	"usinagem_backend/platform/config"
	"usinagem_backend/platform/httpkit"
	"usinagem_backend/platform/logger"
	"usinagem_backend/platform/validator"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes. Credential endpoints sit on the public
// group behind the stricter auth rate limiter; user management is admin-only.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.POST("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
	authGroup.POST("/refresh", ctx.AuthRateLimiter.RateLimit(), m.handler.Refresh)
	authGroup.GET("/me", httpkit.AuthRequired(ctx.Config), m.handler.Me)

	users := ctx.Admin.Group("/users")
	users.GET("", m.handler.ListUsers)
	users.POST("", m.handler.CreateUser)
	users.PATCH("/:id", m.handler.UpdateUser)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
