package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	auditapp "github.com/shasanksaas/RMS-sub004/internal/application/audit"
	identityapp "github.com/shasanksaas/RMS-sub004/internal/application/identity"
	ordersapp "github.com/shasanksaas/RMS-sub004/internal/application/orders"
	returnsapp "github.com/shasanksaas/RMS-sub004/internal/application/returns"
	rulesapp "github.com/shasanksaas/RMS-sub004/internal/application/rules"
	"github.com/shasanksaas/RMS-sub004/internal/domain/identity"
	"github.com/shasanksaas/RMS-sub004/internal/domain/shared"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/auth"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/cache"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/config"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/ecommerce"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/logger"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/persistence"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/persistence/models"
	"github.com/shasanksaas/RMS-sub004/internal/infrastructure/scheduler"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/handler"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/middleware"
	"github.com/shasanksaas/RMS-sub004/internal/interfaces/http/router"
)

//	@title			Returns Management API
//	@version		1.0
//	@description	Multi-tenant returns management backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	models.SetLogger(log)

	// Connect to database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	draftRepo := persistence.NewGormReturnDraftRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	ruleRepo := persistence.NewGormReturnRuleRepository(db.DB)
	decisionRepo := persistence.NewGormRuleDecisionRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)

	// Redis backs both the token blacklist and the rule cache. When it is
	// unreachable the server still starts with in-memory fallbacks, which
	// works for a single instance but not for a fleet.
	var blacklist auth.TokenBlacklist
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	redisErr := redisClient.Ping(pingCtx).Err()
	cancelPing()
	if redisErr != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(redisErr))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}

	var ruleCache cache.RuleCache
	switch {
	case !cfg.Rules.CacheEnabled:
		ruleCache = cache.NopRuleCache{}
	case redisErr == nil:
		ruleCache = cache.NewRedisRuleCacheWithClient(redisClient,
			cache.WithRuleCacheTTL(cfg.Rules.CacheTTL),
			cache.WithRuleCacheLogger(log),
		)
	default:
		ruleCache = cache.NewInMemoryRuleCache(cfg.Rules.CacheTTL)
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Platform adapters
	registry := ecommerce.NewRegistry()
	shopify := ecommerce.NewShopifyAdapter(cfg.Shopify, log)
	registry.Register(shopify)
	seedShopifyCredentials(tenantRepo, shopify, log)

	// Application services
	auditSvc := auditapp.NewService(auditRepo, log)
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, auditSvc, log)
	tenantService := identityapp.NewTenantService(tenantRepo, auditSvc, log)
	userService := identityapp.NewUserService(userRepo, tenantRepo, log)
	evalService := rulesapp.NewEvaluationService(ruleRepo, decisionRepo, ruleCache, log)
	ruleService := rulesapp.NewRuleService(ruleRepo, decisionRepo, ruleCache, auditSvc, log)
	draftService := returnsapp.NewDraftService(draftRepo, orderRepo, evalService, auditSvc, log)
	orderService := ordersapp.NewOrderService(orderRepo, tenantRepo, registry, log)

	// Background order sync
	var syncScheduler *scheduler.OrderSyncScheduler
	if cfg.Sync.Enabled {
		syncScheduler, err = scheduler.NewOrderSyncScheduler(scheduler.OrderSyncSchedulerConfig{
			Interval:   cfg.Sync.Interval,
			Lookback:   cfg.Sync.Lookback,
			Workers:    cfg.Sync.Workers,
			JobTimeout: scheduler.DefaultOrderSyncSchedulerConfig().JobTimeout,
		}, tenantRepo, orderService, log)
		if err != nil {
			log.Fatal("Failed to create order sync scheduler", zap.Error(err))
		}
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start order sync scheduler", zap.Error(err))
		}
	}

	// HTTP middleware
	authMW := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	guard := middleware.NewGuard(auditSvc, log)

	// Gin engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORSWithConfig(middleware.CORSFromConfig(cfg.HTTP)))

	engine.GET("/health", healthHandler(db, log))

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(
			handler.NewAuthHandler(authService, userService, authMW, guard),
			handler.NewTenantHandler(tenantService, userService, authMW, guard),
			handler.NewUserHandler(userService, authService, authMW, guard),
			handler.NewDraftHandler(draftService, ruleService, authMW, guard),
			handler.NewPublicHandler(draftService, tenantService),
			handler.NewRuleHandler(ruleService, authMW, guard),
			handler.NewOrderHandler(orderService, authMW, guard),
			handler.NewAuditHandler(auditSvc, authMW, guard),
		).
		Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if syncScheduler != nil {
		if err := syncScheduler.Stop(ctx); err != nil {
			log.Error("Order sync scheduler shutdown failed", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// seedShopifyCredentials loads the stored shop domains of connected tenants
// into the adapter so order lookups work immediately after a restart.
func seedShopifyCredentials(tenantRepo identity.TenantRepository, shopify *ecommerce.ShopifyAdapter, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := shared.DefaultFilter()
	filter.PageSize = 500
	tenants, err := tenantRepo.FindAll(ctx, filter)
	if err != nil {
		log.Warn("Failed to load tenants for Shopify credential seeding", zap.Error(err))
		return
	}

	seeded := 0
	for i := range tenants {
		t := &tenants[i]
		if t.ConnectedProvider != identity.ProviderShopify || t.ShopDomain == "" {
			continue
		}
		if err := shopify.SetTenantCredentials(t.ID, &ecommerce.ShopifyCredentials{
			ShopDomain: t.ShopDomain,
		}); err != nil {
			log.Warn("Failed to seed Shopify credentials",
				zap.String("tenant_id", t.ID.String()),
				zap.Error(err),
			)
			continue
		}
		seeded++
	}
	if seeded > 0 {
		log.Info("Seeded Shopify credentials", zap.Int("tenants", seeded))
	}
}

// healthHandler reports liveness and database connectivity
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			log.Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().UTC().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().UTC().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
