package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/cache"
	"github.com/dev-mohitbeniwal/intervene/api/config"
	"github.com/dev-mohitbeniwal/intervene/api/controller"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	"github.com/dev-mohitbeniwal/intervene/api/db"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/router"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize logger
	logger.InitLogger(cfg.Log.Dir)
	defer logger.Sync()
	logger.SetLevel(cfg.Log.Level)
	config.Watch(func(c *config.Configuration) {
		if logger.SetLevel(c.Log.Level) {
			logger.Info("Log level reloaded", zap.String("level", c.Log.Level))
		}
	})
	util.SetDebugErrors(cfg.Server.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the record store
	database, err := db.OpenDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.CloseDatabase(database)

	// Initialize the cache backend
	var redisClient redis.UniversalClient
	var backend cache.Backend
	switch cfg.Cache.Backend {
	case "memory":
		backend, err = cache.NewMemoryBackend(cfg.Cache.MemorySize)
		if err != nil {
			logger.Fatal("Failed to initialize memory cache", zap.Error(err))
		}
	default:
		if err := db.InitRedis(cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		defer db.CloseRedis()
		redisClient = db.RedisClient
		backend = cache.NewRedisBackend(redisClient)
	}
	store, err := cache.NewStore(backend, cache.Options{
		OpTimeout:       cfg.Cache.OpTimeout,
		Coalesce:        cfg.Cache.Coalesce,
		FetchTimeout:    cfg.Cache.FetchTimeout,
		BreakerFailures: cfg.Cache.BreakerFailures,
		BreakerCooldown: cfg.Cache.BreakerCooldown,
		EncryptionKey:   []byte(cfg.Redis.EncryptionKey),
	})
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	cacheService := util.NewCacheService(store, util.CacheTTLs{
		Default: cfg.Cache.DefaultTTL,
		Auth:    cfg.Cache.AuthTTL,
		Trusted: cfg.Cache.TrustedTTL,
	})

	// Initialize the audit sink
	auditService, err := newAuditService(cfg, database)
	if err != nil {
		logger.Fatal("Failed to initialize audit sink", zap.Error(err))
	}

	// Initialize Neo4j when assignments are enabled
	var graph dao.GraphRunner
	if cfg.Neo4j.URI != "" {
		if err := db.InitNeo4j(cfg.Neo4j); err != nil {
			logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
		}
		defer db.CloseNeo4j()
		runner := db.NewNeo4jRunner(db.Neo4jDriver, cfg.Neo4j.Database)
		if err := dao.NewAssignmentDAO(runner).EnsureConstraints(ctx); err != nil {
			logger.Fatal("Failed to create Neo4j constraints", zap.Error(err))
		}
		graph = runner
	} else {
		logger.Info("Neo4j not configured, staff assignments disabled")
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)
	if err := util.NewNotificationService().Register(eventBus); err != nil {
		logger.Fatal("Failed to register notifications", zap.Error(err))
	}

	// Initialize services
	services, err := service.InitializeServices(
		database,
		graph,
		auditService,
		util.NewValidationUtil(),
		cacheService,
		eventBus,
		cfg.Auth,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	if err := service.SeedAdministrator(ctx, dao.NewUserDAO(database), redisClient, service.SeedAdmin{
		Email:      cfg.Seed.AdminEmail,
		Password:   cfg.Seed.AdminPassword,
		RUT:        cfg.Seed.AdminRUT,
		BcryptCost: cfg.Auth.BcryptCost,
	}); err != nil {
		logger.Error("Failed to seed administrator", zap.Error(err))
	}

	// Set up Gin
	gin.SetMode(cfg.Server.Mode)
	opts := router.Options{
		Authenticator:     services.Auth,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitDuration: cfg.RateLimit.Per,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		Checks: []router.HealthCheck{
			{Name: "database", Critical: true, Ping: func(ctx context.Context) error { return db.Ping(ctx, database) }},
			{Name: "cache", Ping: func(ctx context.Context) error {
				if !store.Set(ctx, "health:ping", time.Now().Unix(), time.Minute) {
					return fmt.Errorf("cache write failed")
				}
				return nil
			}},
		},
	}
	if redisClient != nil {
		opts.Limiter = db.NewRedisRateLimiter(redisClient)
	}
	engine := router.SetupRouter(controller.InitializeControllers(services), opts)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	cancel()
	eventBus.Wait()

	logger.Info("Server exiting")
}

func newAuditService(cfg *config.Configuration, database *gorm.DB) (audit.Service, error) {
	if cfg.Audit.Sink == "elasticsearch" {
		repo, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
		if err != nil {
			return nil, err
		}
		logger.Info("Audit records go to Elasticsearch", zap.String("index", cfg.Elasticsearch.Index))
		return audit.NewService(repo), nil
	}
	return audit.NewService(audit.NewGormRepository(database)), nil
}
