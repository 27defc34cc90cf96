package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/feedwire/feed-service/internal/api/handler"
	"github.com/feedwire/feed-service/internal/api/middleware"
	"github.com/feedwire/feed-service/internal/core/ports"
	"github.com/feedwire/feed-service/internal/core/service"
)

// RouterConfig carries everything the HTTP layer depends on. The two facade
// surfaces (REST routes and the GraphQL endpoint) are wired here against the
// same services so neither can drift from the other.
type RouterConfig struct {
	Credentials *service.Credentials
	AuthService ports.AuthService
	FeedService ports.FeedService
	Assets      *service.AssetManager

	// GraphQL is the query-language surface handler, mounted behind the soft
	// access gate.
	GraphQL echo.HandlerFunc
	// Fanout is the websocket subscription endpoint; nil disables it.
	Fanout echo.HandlerFunc

	// ImageDir, when non-empty, is served under /image/* (disk asset backend).
	ImageDir string

	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("feed"))

	hardAuth := middleware.HardAuth(cfg.Credentials)
	softAuth := middleware.SoftAuth(cfg.Credentials)

	// --- Resource-oriented surface ---
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	e.PUT("/auth/signup", authHandler.SignUp)
	e.POST("/auth/login", authHandler.LogIn)
	e.GET("/auth/me", authHandler.Me, hardAuth)
	e.PATCH("/auth/status", authHandler.UpdateStatus, hardAuth)

	feedHandler := handler.NewFeedHandler(cfg.FeedService, cfg.Assets)
	feed := e.Group("/feed", hardAuth)
	feed.GET("/posts", feedHandler.List)
	feed.POST("/posts", feedHandler.Create)
	feed.GET("/posts/:postId", feedHandler.Get)
	feed.PUT("/posts/:postId", feedHandler.Update)
	feed.DELETE("/posts/:postId", feedHandler.Delete)

	// --- Query-language surface ---
	e.POST("/graphql", cfg.GraphQL, softAuth)

	// --- Realtime fanout ---
	if cfg.Fanout != nil {
		e.GET("/ws", cfg.Fanout)
	}

	// --- Static assets (disk backend only) ---
	if cfg.ImageDir != "" {
		e.Static("/image", cfg.ImageDir)
	}

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
