package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/application/service"
	"github.com/kvittoapp/kvitto-api/internal/config"
	"github.com/kvittoapp/kvitto-api/internal/infrastructure/database"
	"github.com/kvittoapp/kvitto-api/internal/infrastructure/receipts"
	"github.com/kvittoapp/kvitto-api/internal/infrastructure/repository"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/handler"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/routes"
	"github.com/kvittoapp/kvitto-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sieRepo := repository.NewSIERepository(db)

	// Import the configured SIE ledger, if any
	if err := database.SeedLedger(context.Background(), sieRepo); err != nil {
		log.Printf("Warning: Failed to import SIE ledger: %v", err)
	}

	// Initialize receipt document fetcher
	fetcher := receipts.NewFetcher(&cfg.Receipts)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	groceryService := service.NewGroceryService(fetcher, cfg.Analysis.TrendThreshold, cfg.Analysis.TopItemsLimit)
	storeService := service.NewStoreService(fetcher)
	comparisonService := service.NewComparisonService(fetcher)
	dashboardService := service.NewDashboardService(fetcher)
	ledgerService := service.NewLedgerService(sieRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Grocery:    handler.NewGroceryHandler(groceryService),
		Store:      handler.NewStoreHandler(storeService),
		Comparison: handler.NewComparisonHandler(comparisonService),
		Ledger:     handler.NewLedgerHandler(ledgerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
