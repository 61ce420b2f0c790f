// Package organization provides the directory bounded context: offices, users,
// and the hierarchy links (consultant→owner→office→managers) that scope lead
// distribution.
package organization

import (
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/organization/handler"
	"salesops_backend/internal/organization/repository"
	"salesops_backend/internal/organization/service"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the organization bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the organization module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "organization"
}

// Service returns the directory service for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts directory routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/escritorios", m.handler.ListOffices)
	ctx.Protected.GET("/usuarios", m.handler.ListUsers)

	ctx.Admin.POST("/escritorios", m.handler.CreateOffice)
	ctx.Admin.POST("/usuarios", m.handler.CreateUser)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
