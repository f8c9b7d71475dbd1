package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcatalog "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/bizcocho/backend/internal/infrastructure/auth"
	"github.com/bizcocho/backend/internal/infrastructure/cache"
	"github.com/bizcocho/backend/internal/infrastructure/config"
	"github.com/bizcocho/backend/internal/infrastructure/event"
	"github.com/bizcocho/backend/internal/infrastructure/logger"
	"github.com/bizcocho/backend/internal/infrastructure/persistence"
	"github.com/bizcocho/backend/internal/infrastructure/telemetry"
	"github.com/bizcocho/backend/internal/interfaces/http/handler"
	"github.com/bizcocho/backend/internal/interfaces/http/middleware"
	"github.com/bizcocho/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			Bizcocho Back Office API
//	@version		1.0
//	@description	Units of measure and product unit configuration for the bakery back office
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const (
	serviceVersion  = "1.0.0"
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting bakery back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing is a no-op provider when disabled
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	productUnitRepo := persistence.NewGormProductUnitRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Conversion cache and per-product locks. Without Redis both stay in process.
	var (
		redisClient     *redis.Client
		conversionCache appcatalog.ConversionCache = cache.NoopConversionCache{}
		productLocker   appcatalog.ProductLocker   = cache.NewLocalProductLocker(cfg.Redis.LockWait)
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		conversionCache = cache.NewRedisConversionCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.CacheTTL, log)
		productLocker = cache.NewRedisProductLocker(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.LockTTL, cfg.Redis.LockWait, log)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Application services
	unitService := appcatalog.NewUnitService(unitRepo, log)
	productService := appcatalog.NewProductService(productRepo, txScope, log)
	productUnitService := appcatalog.NewProductUnitService(productRepo, unitRepo, productUnitRepo, txScope, productLocker, log)
	productUnitService.SetConversionCache(conversionCache)

	// Event bus and handlers
	eventSerializer := event.NewEventSerializer()
	event.RegisterCatalogEvents(eventSerializer)

	eventBus := event.NewInMemoryEventBus(log)
	cacheInvalidator := appcatalog.NewConversionCacheInvalidator(conversionCache, log)
	eventBus.Subscribe(cacheInvalidator)
	eventBus.Subscribe(event.NewAuditLogHandler(eventSerializer, log))
	log.Info("Event handlers registered",
		zap.Strings("cache_invalidation_events", cacheInvalidator.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	unitService.SetEventPublisher(eventBus)
	productService.SetEventPublisher(eventBus)
	productUnitService.SetEventPublisher(eventBus)

	// HTTP handlers
	handlers := router.CatalogHandlers{
		Units:        handler.NewUnitHandler(unitService),
		ProductUnits: handler.NewProductUnitHandler(productUnitService),
		Products:     handler.NewProductHandler(productService),
	}
	systemHandler := handler.NewSystemHandler(cfg.App.Name, serviceVersion, readinessChecks(db, redisClient))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID so every later log line and span can carry it
	// 2. Recovery and request logging
	// 3. Security headers, CORS and body limit
	// 4. Tracing, then auth, then attributes that depend on auth
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(maxBodyBytes))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())

	router.RegisterSystemRoutes(engine, systemHandler)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	guard := router.AllowAll
	if cfg.HTTP.AuthEnabled {
		jwtService := auth.NewJWTService(cfg.JWT)
		jwtConfig := middleware.DefaultJWTConfig(jwtService)
		jwtConfig.Logger = log
		r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
		guard = func(permission string) gin.HandlerFunc {
			return middleware.RequireAnyPermissionWithConfig(middleware.PermissionConfig{Logger: log}, permission)
		}
	} else {
		log.Warn("HTTP authentication disabled, every route is open")
	}
	r.Use(middleware.TracingAttributeInjector())

	for _, group := range router.NewCatalogGroups(handlers, guard) {
		r.Register(group)
	}
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// readinessChecks lists the dependencies /health/ready checks
func readinessChecks(db *persistence.Database, redisClient *redis.Client) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"database": db.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}
