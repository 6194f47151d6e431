// main.go
package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/rakadenny/tablepos-backend/cache"
	"github.com/rakadenny/tablepos-backend/handlers"
	"github.com/rakadenny/tablepos-backend/repository"
	"github.com/rakadenny/tablepos-backend/routes"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Initialize New Relic
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("TablePOS API"),
		newrelic.ConfigLicense(os.Getenv("NEW_RELIC_LICENSE_KEY")),
		newrelic.ConfigDistributedTracerEnabled(true),
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize New Relic: %v", err)
	}

	// Initialize database
	if err := repository.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repository.CloseDB()

	// Initialize the settlement cache; fall back to no-op when Redis is not configured
	settlementCache := newSettlementCache()

	// Initialize handlers
	handlers.InitHandlers(settlementCache, sessionIdleTTL())

	// Set up Gin router
	router := gin.Default()

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Change to your frontend URL in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSettlementCache wires Redis when REDIS_ADDR is set
func newSettlementCache() cache.SettlementCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return cache.NoopSettlementCache{}
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			db = parsed
		}
	}

	redisCache := cache.NewRedisSettlementCache(addr, os.Getenv("REDIS_PASSWORD"), db, 24*time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Printf("Warning: Redis unreachable at %s, settlement cache disabled: %v", addr, err)
		return cache.NoopSettlementCache{}
	}

	log.Printf("Settlement cache using Redis at %s", addr)
	return redisCache
}

// sessionIdleTTL reads the idle session timeout from the environment
func sessionIdleTTL() time.Duration {
	raw := os.Getenv("SESSION_IDLE_TTL_MINUTES")
	if raw == "" {
		return 2 * time.Hour
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(minutes) * time.Minute
}
