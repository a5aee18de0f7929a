package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mdd-api/internal/auth"
	"mdd-api/internal/config"
	"mdd-api/internal/database"
	"mdd-api/internal/handler"
	"mdd-api/internal/middleware"
	"mdd-api/internal/repository"
	"mdd-api/internal/router"
	"mdd-api/internal/service"
)

type App struct {
	server *http.Server
	db     *database.DB
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	slog.Info("database ready")

	signer := auth.NewTokenSigner(cfg.JWTSecret, cfg.AccessTokenTTL)
	refresh := auth.NewRefreshTokenManager(cfg.JWTSecret, cfg.RefreshTokenTTL)
	cookies := auth.NewCookiePolicy(cfg.RefreshCookieName, cfg.CookiePath, cfg.CookieSecure, cfg.CookieSameSite, cfg.RefreshTokenTTL)

	authService := service.NewAuthService(userRepo, sessionRepo, signer, refresh)
	userService := service.NewUserService(userRepo, subscriptionRepo)
	subjectService := service.NewSubjectService(subjectRepo, subscriptionRepo, userRepo)
	postService := service.NewPostService(postRepo, commentRepo, subjectRepo, userRepo)
	feedService := service.NewFeedService(postRepo, subscriptionRepo, userRepo)

	authMiddleware := middleware.NewAuthMiddleware(signer)
	authHandler := handler.NewAuthHandler(authService, cookies)
	userHandler := handler.NewUserHandler(userService)
	subjectHandler := handler.NewSubjectHandler(subjectService)
	postHandler := handler.NewPostHandler(postService)
	feedHandler := handler.NewFeedHandler(feedService)

	appRouter := router.New(cfg, authMiddleware, authHandler, userHandler, subjectHandler, postHandler, feedHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, db: db}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.db.Close()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
