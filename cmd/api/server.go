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

	"github.com/shopspring/decimal"

	"eversol-backend/internal/config"
	"eversol-backend/internal/domains/admin"
	addresshandler "eversol-backend/internal/domains/address/handler"
	"eversol-backend/internal/domains/cart"
	carthandler "eversol-backend/internal/domains/cart/handler"
	cataloghandler "eversol-backend/internal/domains/catalog/handler"
	catalogrepo "eversol-backend/internal/domains/catalog/repository"
	"eversol-backend/internal/domains/pincode"
	pincodehandler "eversol-backend/internal/domains/pincode/handler"
	wishlisthandler "eversol-backend/internal/domains/wishlist/handler"
	"eversol-backend/internal/infrastructure/database"
	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
	"eversol-backend/pkg/jwt"
	"eversol-backend/pkg/logger"
)

// application carries the wired handlers the router mounts. The service is
// small enough that explicit wiring beats a container.
type application struct {
	cfg        *config.Config
	jwtManager *jwt.Manager

	adminHandler    *admin.Handler
	catalogHandler  *cataloghandler.Handler
	cartHandler     *carthandler.Handler
	wishlistHandler *wishlisthandler.Handler
	addressHandler  *addresshandler.Handler
	pincodeHandler  *pincodehandler.Handler
}

func Serve() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.App.Environment)

	ctx := context.Background()

	db, err := database.NewMongoDatabase(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.Disconnect(context.Background(), db)

	// Customer state lives in Redis; without it the state endpoints degrade
	// to failure results instead of refusing to start.
	var stores kvstore.Scoper
	redisStore := kvstore.NewRedis(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisStore.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, customer state storage disabled", map[string]interface{}{
			"host": cfg.Redis.Host,
		})
		stores = kvstore.Unavailable{}
	} else {
		stores = redisStore
		defer redisStore.Close()
	}

	bus := events.NewBus()
	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)

	taxRate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil {
		log.Fatalf("Invalid TAX_RATE: %v", err)
	}

	adminRepo := admin.NewRepository(db)
	adminService := admin.NewService(adminRepo, jwtManager)

	catalogRepo := catalogrepo.NewMongo(db)

	pincodeService := pincode.NewService(stores.Scoped("global:pincode"), kvstore.NewMemory())

	baseURL := fmt.Sprintf("http://localhost:%s", cfg.App.Port)

	app := &application{
		cfg:            cfg,
		jwtManager:     jwtManager,
		adminHandler:   admin.NewHandler(adminService, adminRepo),
		catalogHandler: cataloghandler.NewHandler(catalogRepo),
		cartHandler: carthandler.NewHandler(stores, bus, adminRepo,
			cart.WithTaxRate(taxRate), cart.WithCouponResolver(adminRepo)),
		wishlistHandler: wishlisthandler.NewHandler(stores, bus, adminRepo, baseURL),
		addressHandler:  addresshandler.NewHandler(stores, bus),
		pincodeHandler:  pincodehandler.NewHandler(pincodeService, stores),
	}

	router := SetupRouter(app)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", cfg.App.Port),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server starting", map[string]interface{}{
			"port": cfg.App.Port,
			"env":  cfg.App.Environment,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server exited", nil)
}
