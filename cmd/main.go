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
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/tracing"
	"tracking-service/internal/config"
	"tracking-service/internal/events"
	"tracking-service/internal/handlers"
	"tracking-service/internal/middleware"
	"tracking-service/internal/models"
	"tracking-service/internal/repository"
	"tracking-service/internal/services"
)

// @title Shipment Tracking API
// @version 1.0.0
// @description Shipment lifecycle tracking, carrier registry and delivery analytics with per-tenant data

// @contact.name Tracking API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8090
// @BasePath /api

// @securityDefinitions.apikey TenantID
// @in header
// @name X-Tenant-ID
func main() {
	log.Println("Starting Tracking Service...")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded successfully")

	appLogger := logrus.New()
	appLogger.SetFormatter(&logrus.JSONFormatter{})
	appLogger.SetLevel(logrus.InfoLevel)

	db, err := connectDatabase(cfg.GetDatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connected successfully")

	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Redis is optional; without it reads go straight to the database
	redisClient := connectRedis(cfg.Redis)
	ttls := repository.CacheTTLs{List: cfg.Cache.ListTTL, Analytics: cfg.Cache.AnalyticsTTL}
	cacheLayer := repository.NewCacheLayer(redisClient, ttls)
	if cacheLayer != nil {
		log.Println("✓ Read cache enabled (L1 + Redis)")
	}

	publisher := newPublisher(cfg.Events, appLogger)
	defer publisher.Close()

	shipmentRepo := repository.NewShipmentRepository(db, cacheLayer, ttls)
	carrierRepo := repository.NewCarrierRepository(db, cacheLayer, ttls)

	if cfg.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repository.SeedDemoCarriers(ctx, carrierRepo, repository.DefaultTenantID); err != nil {
			log.Printf("Warning: Failed to seed demo carriers: %v", err)
		} else {
			log.Println("✓ Demo carriers seeded")
		}
		cancel()
	}

	shipmentService := services.NewShipmentService(shipmentRepo, carrierRepo, publisher, appLogger)
	carrierService := services.NewCarrierService(carrierRepo, publisher, appLogger)

	shipmentHandler := handlers.NewShipmentHandler(shipmentService)
	carrierHandler := handlers.NewCarrierHandler(carrierService)
	healthHandler := handlers.NewHealthHandler(healthChecks(db, redisClient, publisher))
	log.Println("Handlers initialized")

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	if cfg.IsProduction() {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("tracking-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("tracking-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	router := setupRouter(cfg, appLogger, redisClient, shipmentHandler, carrierHandler, healthHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting tracking-service on port %s (environment: %s)", cfg.Server.Port, cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down tracking-service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		} else {
			log.Println("✓ Tracer provider shut down")
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	log.Println("Tracking service stopped")
}

// connectDatabase establishes a connection to the PostgreSQL database
func connectDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Carrier{},
		&models.Shipment{},
		&models.ShipmentEvent{},
	)
}

// connectRedis returns nil when Redis is not configured or unreachable
func connectRedis(cfg config.RedisConfig) *redis.Client {
	if cfg.URL == "" {
		log.Println("REDIS_URL not configured, caching disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Printf("Warning: Failed to parse Redis URL: %v", err)
		log.Println("Continuing without Redis caching...")
		return nil
	}
	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		log.Println("Continuing without Redis caching...")
		_ = client.Close()
		return nil
	}

	log.Println("✓ Connected to Redis for caching")
	return client
}

// newPublisher picks the event backend. Failures fall back to dropping events.
func newPublisher(cfg config.EventsConfig, appLogger *logrus.Logger) events.Publisher {
	switch cfg.Backend {
	case config.EventsBackendKafka:
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, appLogger)
		log.Printf("✓ Kafka events publisher initialized (topic: %s)", cfg.KafkaTopic)
		return publisher
	case config.EventsBackendNATS:
		publisher, err := events.NewNATSPublisher(cfg.NATSURL, appLogger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
			return events.NopPublisher{}
		}
		log.Println("✓ NATS events publisher initialized")
		return publisher
	default:
		log.Println("Events publishing disabled")
		return events.NopPublisher{}
	}
}

func healthChecks(db *gorm.DB, redisClient *redis.Client, publisher events.Publisher) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	if check := events.ConnectionCheck(publisher); check != nil {
		checks["events"] = check
	}
	return checks
}

// setupRouter configures the Gin router with routes and middleware
func setupRouter(
	cfg *config.Config,
	appLogger *logrus.Logger,
	redisClient *redis.Client,
	shipmentHandler *handlers.ShipmentHandler,
	carrierHandler *handlers.CarrierHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	metrics := gosharedmw.InitGlobalMetrics("tesseract", "tracking_service")
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("tracking-service"))

	router.Use(gosharedmw.SecurityHeaders())

	if redisClient != nil {
		router.Use(gosharedmw.RedisRateLimitMiddlewareWithProfile(redisClient, "standard"))
		log.Println("✓ Redis-based rate limiting enabled")
	} else {
		router.Use(gosharedmw.RateLimit())
		log.Println("✓ In-memory rate limiting enabled (Redis unavailable)")
	}

	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.TenantMiddleware())
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/metrics", gosharedmw.Handler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	shipmentHandler.RegisterRoutes(api)
	carrierHandler.RegisterRoutes(api)

	return router
}
