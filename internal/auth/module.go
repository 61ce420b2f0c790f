// Package auth provides the authentication bounded context: login and JWT
// issuance with hierarchy claims.
package auth

import (
	"salesops_backend/internal/auth/handler"
	"salesops_backend/internal/auth/repository"
	"salesops_backend/internal/auth/service"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes. Login sits behind the stricter auth rate
// limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/login", m.handler.Login)

	ctx.Protected.GET("/me", m.handler.Me)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
