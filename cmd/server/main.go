package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tgriffin/draftedge/internal/api"
	"github.com/tgriffin/draftedge/internal/api/handlers"
	"github.com/tgriffin/draftedge/internal/api/middleware"
	"github.com/tgriffin/draftedge/internal/pricing"
	"github.com/tgriffin/draftedge/internal/providers"
	"github.com/tgriffin/draftedge/internal/reconcile"
	"github.com/tgriffin/draftedge/internal/services"
	"github.com/tgriffin/draftedge/internal/valuation"
	"github.com/tgriffin/draftedge/pkg/config"
	"github.com/tgriffin/draftedge/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := services.NewCacheService(redisClient)

	// WebSocket hub
	var hub *services.Hub
	if cfg.EnableWebSocket {
		hub = services.NewHub(logger)
		go hub.Run()
	}

	// Provider clients
	adpClients, projClients, adjustments, err := buildProviders(cfg, cacheService, logger)
	if err != nil {
		logrus.Fatalf("Failed to build providers: %v", err)
	}

	tables := valuation.DefaultTables()
	tables.Trials = cfg.SimulationTrials
	tables.Seed = cfg.SimulationSeed

	tolerances := reconcile.Tolerances{
		ADP:        cfg.ADPTolerance,
		Auction:    cfg.AuctionTolerance,
		Projection: cfg.ProjectionTolerance,
	}

	pipeline := services.NewPipeline(
		logger,
		cfg.LeagueConfig(),
		tolerances,
		tables,
		pricing.DefaultCurve(),
		cfg.MatchThreshold,
		adpClients,
		projClients,
		adjustments,
	)

	// Parse refresh interval
	refreshInterval, err := time.ParseDuration(cfg.RefreshInterval)
	if err != nil {
		logrus.Warnf("Invalid refresh interval, using default 2h: %v", err)
		refreshInterval = 2 * time.Hour
	}

	refresher := services.NewRefresherService(pipeline, cacheService, hub, logger, refreshInterval)
	if cfg.EnableScheduledRefresh {
		if err := refresher.Start(); err != nil {
			logrus.Errorf("Failed to start refresher: %v", err)
		}
		defer refresher.Stop()
	}

	draftService := services.NewDraftService(db, logger, hub)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler(refresher, hub)
	router.GET("/health", healthHandler.GetHealth)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, cacheService, refresher, draftService, hub)

	// WebSocket endpoint at root level (not under /api/v1)
	if hub != nil {
		router.GET("/ws/:session_id", hub.HandleWebSocket)
	}

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

// buildProviders constructs one fetch client per configured source, each with
// its own circuit breaker and rate limiter.
func buildProviders(cfg *config.Config, cache *services.CacheService, logger *logrus.Logger) (
	[]*providers.ADPClient, []*providers.ProjectionClient, *providers.AdjustmentClient, error,
) {
	mode := providers.ValidationMode(cfg.ValidationMode)

	newClient := func(name string) *providers.Client {
		return providers.NewClient(providers.ClientOptions{
			Name:             name,
			Timeout:          cfg.ExternalAPITimeout,
			RequestsPerSec:   cfg.ProviderRateLimit,
			BreakerThreshold: uint32(cfg.CircuitBreakerThreshold),
		}, cache, logger)
	}

	adpSpecs, err := cfg.ParsedADPSources()
	if err != nil {
		return nil, nil, nil, err
	}
	var adpClients []*providers.ADPClient
	for _, spec := range adpSpecs {
		adpClients = append(adpClients,
			providers.NewADPClient(newClient(spec.Name), logger, spec.URL, spec.Name, spec.Weight, mode))
	}

	projSpecs, err := cfg.ParsedProjectionSources()
	if err != nil {
		return nil, nil, nil, err
	}
	var projClients []*providers.ProjectionClient
	for _, spec := range projSpecs {
		projClients = append(projClients,
			providers.NewProjectionClient(newClient(spec.Name), logger, spec.URL, spec.Name, spec.Weight, mode))
	}

	var adjustments *providers.AdjustmentClient
	if cfg.AdjustmentsURL != "" {
		adjustments = providers.NewAdjustmentClient(newClient("adjustments"), logger, cfg.AdjustmentsURL)
	}

	return adpClients, projClients, adjustments, nil
}
