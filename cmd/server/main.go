package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Storefront Search")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection (optional)
	var repo *repository.PostgresRepository
	var activityLog service.ActivityLog
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		activityLog = repo
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  PostgreSQL is disabled - search/selection logging is off")
	}

	// Initialize catalog supplier
	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	var supplier catalog.Supplier = catalog.NewCachedSupplier(client, cfg.Catalog.CacheTTL)

	switch cfg.Catalog.Source {
	case "postgres":
		if repo == nil {
			log.Fatalf("CATALOG_SOURCE=postgres requires a database connection")
		}
		supplier = repo
		log.Println("✅ Serving catalog from PostgreSQL snapshot")
	default:
		log.Printf("✅ Serving catalog from %s (cache TTL %s)", cfg.Catalog.BaseURL, cfg.Catalog.CacheTTL)

		// Refresh the persisted snapshot from the remote catalog when a
		// database is available.
		if repo != nil {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				products, err := client.Products(ctx)
				if err != nil {
					log.Printf("⚠️  Catalog snapshot refresh failed: %v", err)
					return
				}
				ok, errs := repo.ReplaceCatalog(ctx, products)
				if len(errs) > 0 {
					log.Printf("⚠️  Catalog snapshot refresh: %d upserted, errors: %v", ok, errs)
					return
				}
				log.Printf("✅ Catalog snapshot refreshed (%d products)", ok)
			}()
		}
	}

	// Initialize services
	interpreter := service.NewQueryInterpreter()
	engine := service.NewFilterEngine()
	searchService := service.NewSearchService(supplier, interpreter, engine, activityLog)

	log.Println("✅ Services initialized")

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(searchService, cfg.Search.ProcessingDelay)
	selectionHandler := handler.NewSelectionHandler(searchService)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "storefront-search",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Search endpoints
		apiV1.POST("/search", searchHandler.Search)
		apiV1.POST("/search/stream", searchHandler.SearchStream) // Streaming search

		// Catalog endpoints
		apiV1.GET("/products", searchHandler.ListProducts)
		apiV1.GET("/products/:id", searchHandler.GetProduct)
		apiV1.GET("/categories", searchHandler.ListCategories)

		// Selection endpoint
		apiV1.POST("/selection", selectionHandler.Submit)
	}

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API Documentation: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
