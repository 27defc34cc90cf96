package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/feedwire/feed-service/internal/api"
	"github.com/feedwire/feed-service/internal/core/ports"
	"github.com/feedwire/feed-service/internal/core/service"
	"github.com/feedwire/feed-service/internal/graphql"
	"github.com/feedwire/feed-service/internal/infrastructure/db/mongo"
	"github.com/feedwire/feed-service/internal/infrastructure/db/redis"
	"github.com/feedwire/feed-service/internal/infrastructure/realtime"
	"github.com/feedwire/feed-service/internal/infrastructure/storage"
	"github.com/feedwire/feed-service/internal/pkg/config"
	"github.com/feedwire/feed-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// --- Persistence ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	userRepo := mongo.NewUserRepository(db)
	postRepo := mongo.NewPostRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure post indexes")
	}

	// --- Feed cache (optional) ---
	var (
		redisClient *goredis.Client
		feedCache   ports.FeedCache
	)
	if cfg.Redis.Enabled {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		redisClient = client
		feedCache = redis.NewFeedCache(client, log)
	}

	// --- Asset store ---
	store, imageDir, err := newBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise asset store")
	}
	assets := service.NewAssetManager(store, log)

	// --- Core services ---
	credentials := service.NewCredentials(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, credentials, log)

	hub := realtime.NewHub(log)
	feedService := service.NewFeedService(postRepo, userRepo, assets, feedCache, hub, log)

	// --- Query-language surface ---
	resolvers := graphql.NewResolvers(authService, feedService)
	schema, err := graphql.NewSchema(resolvers)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build graphql schema")
	}

	e := api.NewRouter(api.RouterConfig{
		Credentials: credentials,
		AuthService: authService,
		FeedService: feedService,
		Assets:      assets,
		GraphQL:     graphql.NewHandler(schema, log),
		Fanout:      hub.Handle,
		ImageDir:    imageDir,
		Mongo:       db,
		Redis:       redisClient,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting feed service")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newBlobStore builds the configured asset backend. The returned imageDir is
// non-empty only for the disk backend, where the router serves /image/*
// straight off the upload directory.
func newBlobStore(ctx context.Context, cfg *config.Config) (ports.BlobStore, string, error) {
	switch cfg.Uploads.Backend {
	case "minio":
		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		return store, "", err
	default:
		store, err := storage.NewDiskStore(cfg.Uploads.Dir)
		return store, cfg.Uploads.Dir, err
	}
}
