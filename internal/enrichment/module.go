// Package enrichment provides the company-enrichment bounded context: merging
// public registry data into leads by CNPJ.
package enrichment

import (
	"salesops_backend/internal/enrichment/client"
	"salesops_backend/internal/enrichment/handler"
	"salesops_backend/internal/enrichment/service"
	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// Module is the enrichment bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the enrichment module.
func NewModule(leads service.LeadStore, cfg config.EnrichmentConfig, enqueuer handler.BackfillEnqueuer, bus events.Bus, log *logger.Logger) *Module {
	registry := client.New(cfg.GetRegistryBaseURL())
	svc := service.New(leads, registry, bus, log, cfg.IsEnrichmentEnabled())
	h := handler.New(svc, enqueuer)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "enrichment"
}

// Service exposes the enrichment service to the worker binary.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the enrichment routes. The campaign-wide backfill is
// admin-only; single-lead enrichment is open to any authenticated user.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/leads/:id/enriquecer", m.handler.Enrich)
	ctx.Admin.POST("/campanhas/:id/enriquecer", m.handler.Backfill)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
