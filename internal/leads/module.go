// Package leads provides the lead bounded context: import, listing,
// tratativas, and the ownership audit trail.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/leads/handler"
	"salesops_backend/internal/leads/repository"
	"salesops_backend/internal/leads/service"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service exposes the lead service so the distribution and enrichment modules
// can reach the lead store without re-wiring it.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the lead store directly.
func (m *Module) Repository() *repository.Repository {
	return m.service.Repository()
}

// RegisterRoutes mounts the lead routes. Import is restricted to the admin
// group; everything else is visible to any authenticated user with the
// service layer enforcing per-consultant visibility.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.POST("/campanhas/:id/leads/importar", m.handler.Import)

	ctx.Protected.GET("/campanhas/:id/leads", m.handler.List)
	ctx.Protected.GET("/leads/:id", m.handler.Get)
	ctx.Protected.GET("/leads/:id/historico", m.handler.History)
	ctx.Protected.POST("/leads/:id/tratativas", m.handler.RecordActivity)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
