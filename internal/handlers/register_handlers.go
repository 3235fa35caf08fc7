package handlers

import (
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/middleware"
	"github.com/railsathi/railsathi_backend/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/railsathi/railsathi_backend/cmd/docs"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public routes (device registration, contact info)
	registerAuthRoutes(r, cfg)
	registerHomeRoutes(r, cfg)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// The lookup routes fan out to metered upstream APIs; they get their own
	// per-device rate limit on top of auth.
	lookupLimiter := newLookupLimiter(cfg)

	registerPNRRoutes(v1, services.PNR, lookupLimiter)
	RegisterJourneyRoutes(v1, services.Journey)
	registerTrainRoutes(v1, services.Train, lookupLimiter)
	registerStationRoutes(v1, services.Station)
	RegisterQnARoutes(v1, services.QnA)
	registerSearchRoutes(v1, services.Search)
}

// newLookupLimiter builds the in-memory limiter for the upstream lookup routes.
func newLookupLimiter(cfg *config.Config) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.LookupRateLimit)
	if err != nil {
		// Fall back to a sane default rather than refusing to boot.
		rate, _ = limiter.NewRateFromFormatted("30-M")
	}
	return limiter.New(memory.NewStore(), rate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
