// Package distribution provides the distribution bounded context: running
// distributions, repescagens, and the per-consultant campaign report.
package distribution

import (
	"github.com/redis/go-redis/v9"

	"salesops_backend/internal/distribution/handler"
	"salesops_backend/internal/distribution/service"
	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

// Module is the distribution bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the distribution core against the lead store, campaign
// store, and directory of its sibling modules. redisClient may be nil; the
// campaign lock then degrades to a no-op.
func NewModule(leads service.LeadStore, campaigns service.CampaignStore, directory service.Directory, redisClient *redis.Client, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	lock := service.NewCampaignLock(redisClient)
	svc := service.New(leads, campaigns, directory, lock, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "distribution"
}

// RegisterRoutes mounts the distribution routes. The service enforces
// role and scope checks itself, so the routes sit in the protected group
// rather than the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/campanhas/:id/distribuir", m.handler.Distribute)
	ctx.Protected.POST("/repescagem", m.handler.Reassign)
	ctx.Protected.GET("/campanhas/:id/distribuicao", m.handler.Report)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
