package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/blog-api/internal/auth"
	"github.com/rogerio-castellano/blog-api/internal/config"
	"github.com/rogerio-castellano/blog-api/internal/db"
	apihttp "github.com/rogerio-castellano/blog-api/internal/http"
	"github.com/rogerio-castellano/blog-api/internal/http/handlers"
	"github.com/rogerio-castellano/blog-api/internal/logging"
	"github.com/rogerio-castellano/blog-api/internal/posts"
	"github.com/rogerio-castellano/blog-api/internal/repo"
)

// @title Blog API
// @version 1.0
// @description REST API for user accounts and blog posts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "info").Error(ctx, "could not load configuration", "err", err)
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(ctx, "could not connect to database", "err", err)
		return err
	}
	defer store.Close()

	users, postRepo := repositories(store)

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)
	srv := handlers.NewServer(
		auth.NewService(users, tokens, cfg.BcryptCost),
		posts.NewService(postRepo, users),
		store,
		logger,
	)

	router := apihttp.NewRouter(srv, apihttp.Options{
		Frontend:       frontend(ctx, cfg.StaticDir, logger),
		AllowedOrigins: cfg.CorsAllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server running", "addr", httpServer.Addr, "dialect", store.Dialect)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error(ctx, "server failed", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "graceful shutdown failed", "err", err)
		return err
	}
	return nil
}

func repositories(store *db.Store) (repo.UserRepository, repo.PostRepository) {
	if store.Dialect == db.DialectPostgres {
		return repo.NewPostgresUserRepository(store.DB), repo.NewPostgresPostRepository(store.DB)
	}
	return repo.NewSQLiteUserRepository(store.DB), repo.NewSQLitePostRepository(store.DB)
}

// frontend returns the built SPA directory, or nil when it has not been
// built yet. The API works either way.
func frontend(ctx context.Context, dir string, logger logging.Logger) fs.FS {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn(ctx, "frontend build not found, serving API only", "dir", dir)
		return nil
	}
	return os.DirFS(dir)
}
