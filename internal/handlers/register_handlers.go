package handlers

import (
	"github.com/SscSPs/partner_ledger_app/cmd/docs"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/SscSPs/partner_ledger_app/internal/platform/config"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteOptions carries optional infrastructure for route registration.
// Zero values disable the corresponding feature.
type RouteOptions struct {
	LoginLimiter   *limiter.Limiter
	QueueInspector QueueInspector
	Posthog        *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	RegisterValidators()

	registerHealthRoutes(r, opts.QueueInspector)

	// Register public authentication routes
	registerAuthRoutes(r, services.User, opts.LoginLimiter)

	registerTelegramRoutes(r, cfg.TelegramWebhookSecret, services.Notification)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, opts)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if opts.Posthog != nil {
		v1.Use(middleware.PosthogMiddleware(opts.Posthog))
	}

	registerDebtRoutes(v1, service.Debt)
	registerPartnerRoutes(v1, service.Partner, service.Notification)
	registerTransactionRoutes(v1, service.Transaction)
	registerPaymentRoutes(v1, service.Payment)
	registerReportRoutes(v1, service.Report)
	registerUserRoutes(v1, service.User)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
