package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/broker"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/config"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/database"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/handler"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/ledger"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/middleware"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect(cfg)
	database.Migrate()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	purchaseLedger, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		logger.Log.Fatal("Failed to open purchase ledger", zap.String("path", cfg.LedgerPath), zap.Error(err))
	}
	defer purchaseLedger.Close()

	redisClient, err := broker.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	events := broker.NewRedisEventBroker(redisClient)
	defer events.Close()

	// Repositories
	userRepo := repository.NewUserRepository(database.DB)
	projectRepo := repository.NewProjectRepository(database.DB)
	purchaseRepo := repository.NewPurchaseRepository(database.DB)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	contentService := service.NewContentService(database.DB, projectRepo, service.AboutDefaults{
		Name:  cfg.AboutDefaultName,
		Title: cfg.AboutDefaultTitle,
	})
	contactService := service.NewContactService(repository.NewCollection[models.Contact](database.DB), events)
	coffeeService := service.NewCoffeeService(
		repository.NewSingleton[models.Coffee](database.DB),
		projectRepo,
		purchaseRepo,
		userRepo,
		purchaseLedger,
		events,
	)

	// Handlers
	liveFeed := handler.NewLiveFeedHandler(events, cfg.CORSOrigins)
	router := handler.NewRouter(handler.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
			MaxRequests: cfg.RateLimitMaxRequests,
			Window:      cfg.RateLimitWindow,
			BlockTime:   cfg.RateLimitBlockTime,
		}),
	}, handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Public:   handler.NewPublicHandler(contentService, coffeeService),
		Contact:  handler.NewContactHandler(contactService),
		Admin:    handler.NewAdminHandler(authService, contentService, contactService, coffeeService),
		LiveFeed: liveFeed,
	})

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting",
			zap.String("addr", cfg.ServerPort),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server")

	// hijacked websocket connections are not tracked by Shutdown
	liveFeed.CloseAll("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}

	logger.Log.Info("Server stopped")
}
