package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/friendgraph/friendgraph-api/internal/config"
	"github.com/friendgraph/friendgraph-api/internal/domain/auth"
	"github.com/friendgraph/friendgraph-api/internal/domain/friendship"
	"github.com/friendgraph/friendgraph-api/internal/domain/notification"
	"github.com/friendgraph/friendgraph-api/internal/domain/user"
	"github.com/friendgraph/friendgraph-api/internal/middleware"
	"github.com/friendgraph/friendgraph-api/internal/pkg/database"
	"github.com/friendgraph/friendgraph-api/internal/pkg/jwt"
	"github.com/friendgraph/friendgraph-api/internal/pkg/logger"
	pkgresponse "github.com/friendgraph/friendgraph-api/internal/pkg/response"
)

const version = "1.0.0"

// handlers groups everything the router mounts
type handlers struct {
	auth       *auth.Handler
	user       *user.Handler
	friendship *friendship.Handler
	realtime   *notification.Handler
}

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting friendgraph API")

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	db, err := database.NewPostgres(startCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if cfg.MigrateOnStart {
		if err := database.Migrate(startCtx, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	redisClient, err := database.NewRedis(startCtx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Realtime ----------
	hub := notification.NewHub(redisClient)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	friendshipRepo := friendship.NewRepository(db)

	// ---------- Services ----------
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, jwtService, auth.NewRefreshStore(redisClient))
	limiter := friendship.NewLimiter(friendshipRepo, cfg.FriendRequestLimit, cfg.FriendRequestWindow)
	friendshipService := friendship.NewService(friendshipRepo, userService, limiter, hub)

	router := newRouter(cfg, jwtService, handlers{
		auth:       auth.NewHandler(authService),
		user:       user.NewHandler(userService),
		friendship: friendship.NewHandler(friendshipService),
		realtime:   notification.NewHandler(hub, jwtService, cfg.AllowedOrigins),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, validator middleware.AccessTokenValidator, h handlers) http.Handler {
	authMiddleware := middleware.Auth(validator)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress); authenticates from ?token=
	r.Get("/ws", h.realtime.WebSocket)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	r.Handle("/debug/vars", expvar.Handler())

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", h.auth.Routes(authMiddleware))
		r.Mount("/user", h.user.Routes(authMiddleware))
		r.Mount("/friendship", h.friendship.Routes(authMiddleware))
	})

	return r
}
