package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/retailhub/backend/internal/application/catalog"
	identityapp "github.com/retailhub/backend/internal/application/identity"
	"github.com/retailhub/backend/internal/application/importer"
	orderingapp "github.com/retailhub/backend/internal/application/ordering"
	"github.com/retailhub/backend/internal/domain/identity"
	"github.com/retailhub/backend/internal/infrastructure/auth"
	"github.com/retailhub/backend/internal/infrastructure/config"
	"github.com/retailhub/backend/internal/infrastructure/logger"
	"github.com/retailhub/backend/internal/infrastructure/notification"
	"github.com/retailhub/backend/internal/infrastructure/persistence"
	"github.com/retailhub/backend/internal/interfaces/http/handler"
	"github.com/retailhub/backend/internal/interfaces/http/middleware"
	"github.com/retailhub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			RetailHub API
//	@version		1.0
//	@description	Retailer catalog aggregator: shops publish price feeds, buyers order across shops

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RetailHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	confirmTokenRepo := persistence.NewGormConfirmTokenRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	stockRecordRepo := persistence.NewGormStockRecordRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)

	importScope := persistence.NewGormImportTransactionScope(db.DB)
	orderingScope := persistence.NewGormOrderingTransactionScope(db.DB)

	// Token infrastructure: Redis blacklist when reachable, otherwise the
	// process-local fallback
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			_ = redisBlacklist.Close()
		}()
	}

	sender := notification.NewLogSender(log)
	orderNotifier := notification.NewOrderNotifier(userRepo, sender, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, confirmTokenRepo, jwtService, blacklist, sender, log)
	catalogService := catalogapp.NewCatalogService(shopRepo, categoryRepo, stockRecordRepo, log)
	shopService := catalogapp.NewShopService(shopRepo, log)
	importService := importer.NewImportService(importScope, log)
	basketService := orderingapp.NewBasketService(orderRepo, orderingScope, log)
	orderService := orderingapp.NewOrderService(orderRepo, orderingScope, orderNotifier, log)
	contactService := orderingapp.NewContactService(contactRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	basketHandler := handler.NewBasketHandler(basketService)
	orderHandler := handler.NewOrderHandler(orderService)
	contactHandler := handler.NewContactHandler(contactService)
	partnerHandler := handler.NewPartnerHandler(shopService, importService)

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

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/confirm",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/v1/catalog",
		},
		Logger: log,
	}))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/confirm", authHandler.Confirm)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/profile", authHandler.GetProfile)
	authRoutes.PUT("/profile", authHandler.UpdateProfile)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.GET("/shops", catalogHandler.ListShops)
	catalogRoutes.GET("/shops/:id/categories", catalogHandler.ListShopCategories)
	catalogRoutes.GET("/categories", catalogHandler.ListCategories)
	catalogRoutes.GET("/offers", catalogHandler.ListOffers)
	catalogRoutes.GET("/offers/:id", catalogHandler.GetOffer)

	basketRoutes := router.NewDomainGroup("basket", "/basket")
	basketRoutes.GET("", basketHandler.View)
	basketRoutes.POST("/items", basketHandler.AddItem)
	basketRoutes.DELETE("/items/:id", basketHandler.RemoveItem)

	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/confirm", orderHandler.Confirm)
	orderRoutes.PUT("/:id/state", middleware.RequireUserType(identity.UserTypeShop), orderHandler.Transition)

	contactRoutes := router.NewDomainGroup("contacts", "/contacts")
	contactRoutes.GET("", contactHandler.List)
	contactRoutes.POST("", contactHandler.Create)
	contactRoutes.PUT("/:id", contactHandler.Update)
	contactRoutes.DELETE("/:id", contactHandler.Delete)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.Use(middleware.RequireUserType(identity.UserTypeShop))
	partnerRoutes.GET("/shop", partnerHandler.GetShop)
	partnerRoutes.PUT("/shop/state", partnerHandler.UpdateShopState)
	partnerRoutes.POST("/feed", middleware.BodyLimit(cfg.Import.MaxFeedSize), partnerHandler.ImportFeed)

	r.Register(authRoutes).
		Register(catalogRoutes).
		Register(basketRoutes).
		Register(orderRoutes).
		Register(contactRoutes).
		Register(partnerRoutes)
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
