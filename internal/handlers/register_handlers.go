package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
	"github.com/koperasi-digital/koperasi-ledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerPeriodRoutes(v1, services.Period)
	registerJournalRoutes(v1, services.Journal)
	registerRateRoutes(v1, services.Rate)
	registerPostingRoutes(v1, services.Posting, transactionRateLimiter(cfg))
}

// transactionRateLimiter builds the in-memory rate limiter applied to the
// transaction submission endpoint.
func transactionRateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		log.Printf("Warning: Invalid RATE_LIMIT %q, defaulting to 120-M: %v\n", cfg.RateLimit, err)
		rate, _ = limiter.NewRateFromFormatted("120-M")
	}
	return middleware.RateLimit(limiter.New(memory.NewStore(), rate))
}
