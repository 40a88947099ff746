package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"movieBrowser/internal/auth"
	"movieBrowser/internal/catalog"
	"movieBrowser/internal/config"
	"movieBrowser/internal/db"
	grpcserver "movieBrowser/internal/grpc"
	"movieBrowser/internal/logger"
	"movieBrowser/internal/password"
	"movieBrowser/internal/users"
	"movieBrowser/repository"
)

func main() {
	dev := flag.Bool("dev", false, "use development defaults for missing secrets")
	flag.Parse()

	// Load configuration
	load := config.Load
	if *dev {
		load = config.LoadWithDefaults
	}
	cfg, err := load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	lg := logger.Logger
	lg.Info("configuration loaded", zap.Stringer("config", cfg))

	hasher, err := password.New(cfg.Password.Hasher, cfg.Password.Salt)
	if err != nil {
		lg.Fatal("password hasher", zap.Error(err))
	}

	// Open DB
	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		lg.Fatal("open db", zap.Error(err))
	}
	defer func() {
		if err := d.Close(); err != nil {
			lg.Error("close db", zap.Error(err))
		}
	}()

	repo := repository.NewUserRepository(d, hasher)
	ctx := context.Background()
	if err := repo.Initialize(ctx); err != nil {
		lg.Fatal("initialize user store", zap.Error(err))
	}
	if n, err := repo.Count(ctx); err == nil {
		lg.Info("user store ready", zap.String("path", cfg.Database.Path), zap.Int("users", n))
	}

	// Start gRPC
	shutdown, err := grpcserver.StartGRPC(cfg, grpcserver.Services{
		Users:   repo,
		Auth:    auth.NewAuthenticator(repo, cfg.Auth.JWTSecret),
		Manager: users.NewManager(repo),
		Catalog: catalog.New(catalog.Config{
			APIKey:   cfg.Catalog.APIKey,
			BaseURL:  cfg.Catalog.BaseURL,
			ImageURL: cfg.Catalog.ImageURL,
			Language: cfg.Catalog.Language,
			Timeout:  cfg.Catalog.Timeout,
		}),
	}, lg)
	if err != nil {
		lg.Fatal("start grpc", zap.Error(err))
	}

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	lg.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GRPC.ShutdownGracePeriod)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", zap.Error(err))
	}
}
