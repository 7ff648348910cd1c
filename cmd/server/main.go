package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aurixlab/print-bridge/internal/cache"
	"github.com/aurixlab/print-bridge/internal/config"
	"github.com/aurixlab/print-bridge/internal/fulfillment"
	"github.com/aurixlab/print-bridge/internal/httpapi"
	"github.com/aurixlab/print-bridge/internal/order"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	store := cache.NewRedisStore(rdb)

	client := fulfillment.NewHTTPClient(
		cfg.PrintavoBaseURL,
		cfg.PrintavoEmail,
		cfg.PrintavoToken,
		cfg.RequestTimeout,
		logger,
	)

	orderService := order.NewService(store, client, cfg.PrintavoUserID, cfg.PrintavoCustomerID, logger)

	router := httpapi.NewRouter(
		httpapi.NewHoldHandler(store, logger, cfg.RequestTimeout),
		httpapi.NewSessionHandler(store, logger, cfg.RequestTimeout),
		httpapi.NewWebhookHandler(orderService, cfg.WebhookSecret, logger, cfg.RequestTimeout),
		httpapi.NewProxyHandler(client, orderService, logger, cfg.RequestTimeout),
		httpapi.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		cfg.AllowedOrigins,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("print-bridge starting",
			zap.String("port", cfg.Port),
			zap.Strings("allowed_origins", cfg.AllowedOrigins))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
