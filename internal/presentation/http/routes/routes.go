package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/config"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/handler"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/middleware"
	"github.com/kvittoapp/kvitto-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	Dashboard  *handler.DashboardHandler
	Grocery    *handler.GroceryHandler
	Store      *handler.StoreHandler
	Comparison *handler.ComparisonHandler
	Ledger     *handler.LedgerHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/profile", h.Auth.GetProfile)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Overview)

	// Grocery analysis
	grocery := protected.Group("/grocery")
	{
		grocery.GET("/items", h.Grocery.ListItems)
		grocery.GET("/items/:item", h.Grocery.GetItem)
	}

	// Stores and visits
	stores := protected.Group("/stores")
	{
		stores.GET("", h.Store.ListStores)
		stores.GET("/:store", h.Store.GetStore)
		stores.GET("/:store/visits/:visit_id", h.Store.GetVisit)
	}

	// Store comparison
	protected.GET("/comparison", h.Comparison.Compare)

	// SIE ledger
	ledger := protected.Group("/ledger")
	{
		ledger.GET("/overview", h.Ledger.Overview)
		ledger.GET("/accounts/:account", h.Ledger.GetAccount)
	}
}
