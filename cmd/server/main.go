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

	"alcyxob/fitplan/internal/api"
	"alcyxob/fitplan/internal/config"
	"alcyxob/fitplan/internal/logger"
	"alcyxob/fitplan/internal/repository"
	"alcyxob/fitplan/internal/repository/memory"
	"alcyxob/fitplan/internal/repository/mongo"
	"alcyxob/fitplan/internal/repository/redis"
	"alcyxob/fitplan/internal/repository/sqlite"
	"alcyxob/fitplan/internal/service"
	"alcyxob/fitplan/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()
	log.Info("Starting fitplan server", zap.String("store", cfg.Store.Driver), zap.String("mode", cfg.Server.Mode))

	// --- Snapshot Store ---
	store, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatal("Could not open snapshot store", zap.Error(err))
	}
	defer closeStore()

	// --- Initialize Services ---
	tokens, err := api.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal("Could not create token issuer", zap.Error(err))
	}
	sessions := service.NewSessionManager(service.SessionDeps{
		Store:  store,
		Logger: log,
	}, cfg.Session.CacheSize, func(e service.Event) {
		log.Info("Session event",
			zap.String("type", string(e.Type)),
			zap.String("session", e.SessionID),
			zap.Int("month", e.Month),
			zap.String("achievement", e.AchievementID),
		)
	})

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))

	api.SetupRoutes(router, tokens, sessions)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("Server listening", zap.String("address", cfg.Server.Address))

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

// openStore builds the snapshot store selected by store.driver. The returned
// func releases its connections.
func openStore(cfg config.Config, log *zap.Logger) (repository.SnapshotRepository, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case "", "memory":
		log.Warn("Using in-memory snapshot store; sessions are lost on restart")
		return memory.NewMemorySnapshotRepository(), func() {}, nil

	case "mongo":
		client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Database.Name)
		if err := mongo.EnsureSnapshotIndexes(ctx, db.Collection(cfg.Database.Collection)); err != nil {
			log.Warn("Could not ensure snapshot indexes", zap.Error(err))
		}
		log.Info("Database connection established", zap.String("database", cfg.Database.Name))
		return mongo.NewMongoSnapshotRepository(db, cfg.Database.Collection), func() {
			if err := mongo.DisconnectDB(client); err != nil {
				log.Error("Failed to disconnect MongoDB", zap.Error(err))
			}
		}, nil

	case "sqlite":
		database, err := sqlite.OpenSQLite(cfg.SQLite.Path, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("SQLite database opened", zap.String("path", cfg.SQLite.Path))
		return sqlite.NewSQLiteSnapshotRepository(database), func() {
			if err := sqlite.CloseSQLite(database); err != nil {
				log.Error("Failed to close SQLite", zap.Error(err))
			}
		}, nil

	case "redis":
		client := redis.NewClient(cfg.Redis)
		if err := redis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Info("Redis connection established", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.Redis.TTL))
		return redis.NewRedisSnapshotRepository(client, cfg.Redis.TTL), func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close Redis client", zap.Error(err))
			}
		}, nil

	case "s3":
		store, err := storage.NewS3SnapshotStore(ctx, cfg.S3, log)
		if err != nil {
			return nil, nil, fmt.Errorf("init s3: %w", err)
		}
		return store, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
