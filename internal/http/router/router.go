// Package router assembles the gin engine from the application modules.
package router

import (
	"net/http"
	"time"

	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/http/middleware"
	"salesops_backend/internal/organization/hierarchy"
	"salesops_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// New builds the gin engine, mounts shared middleware, and lets every module
// register its routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(middleware.Metrics())
	engine.Use(corsMiddleware(app))

	apiLimiter := httpkit.NewIPRateLimiter(rate.Limit(20), 40, app.Logger)
	engine.Use(apiLimiter.RateLimit())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.GET("/api/health", func(c *gin.Context) {
		if err := app.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := httpkit.AuthRequired(app.Config)

	v1 := engine.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(authMiddleware)

	admin := v1.Group("/admin")
	admin.Use(authMiddleware)
	admin.Use(httpkit.RequireRole(string(hierarchy.RoleMaster), string(hierarchy.RoleSeniorManager)))

	ctx := &apphttp.RouterContext{
		Engine:          engine,
		V1:              v1,
		Protected:       protected,
		Admin:           admin,
		Config:          app.Config,
		AuthMiddleware:  authMiddleware,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}

	if app.Config.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = app.Config.GetCORSOrigins()
	}

	return cors.New(corsConfig)
}
