// Package campaigns provides the campaign bounded context: creation, office
// targeting, listing, and pipeline summaries.
package campaigns

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/campaigns/handler"
	"salesops_backend/internal/campaigns/repository"
	"salesops_backend/internal/campaigns/service"
	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

// Module is the campaigns bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the campaigns module. The summarizer is
// the leads repository; campaigns only read aggregates from it.
func NewModule(pool *pgxpool.Pool, summaries service.LeadSummarizer, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, summaries, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campaigns"
}

// Service exposes the campaign service to the distribution module.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the campaign routes. Creation and toggling are
// restricted to the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.POST("/campanhas", m.handler.Create)
	ctx.Admin.PATCH("/campanhas/:id/ativa", m.handler.SetActive)

	ctx.Protected.GET("/campanhas", m.handler.List)
	ctx.Protected.GET("/campanhas/:id", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
