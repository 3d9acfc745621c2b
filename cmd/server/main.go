package main

import (
	"aptiprep/internal/cache"
	"aptiprep/internal/config"
	"aptiprep/internal/logger"
	"aptiprep/internal/repository"
	"aptiprep/internal/service"
	"aptiprep/internal/transport/rest"
	"aptiprep/internal/transport/ws"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logr.Sync()

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logr.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logr.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logr.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	db := mongoClient.Database(cfg.Mongo.Database)

	indexCtx, indexCancel := context.WithTimeout(ctx, 30*time.Second)
	defer indexCancel()
	if err := repository.EnsureIndexes(indexCtx, db); err != nil {
		logr.Fatal("failed to create indexes", zap.Error(err))
	}

	// Redis connection
	rdb, err := newRedisClient(cfg.Redis.URI)
	if err != nil {
		logr.Fatal("invalid REDIS_URI", zap.Error(err))
	}
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logr.Fatal("failed to ping Redis", zap.Error(err))
	}
	logr.Info("connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logr.Named("ws"))
	defer wsHub.Close()

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	userRepo := repository.NewUserRepo(db)

	// Initialize caches
	summaryCache := cache.NewSummaryCache(rdb, cfg.Redis.SummaryCacheTTL)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	aptitudeSvc := service.NewAptitudeService(questionRepo, progressRepo, summaryCache, logr.Named("aptitude"))

	// Inject broadcaster (wsHub implements service.Broadcaster)
	aptitudeSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:     authSvc,
		AptitudeService: aptitudeSvc,
		WSHub:           wsHub,
		Logger:          logr,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Shutdown)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logr.Info("server exited")
}

// newRedisClient accepts either host:port or a redis:// URL
func newRedisClient(uri string) (*redis.Client, error) {
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		opts, err := redis.ParseURL(uri)
		if err != nil {
			return nil, err
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: uri}), nil
}
