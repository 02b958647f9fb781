package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/localtrades/contractor-directory/internal/config"
	"github.com/localtrades/contractor-directory/internal/identity"
	"github.com/localtrades/contractor-directory/internal/repository/postgres"
	"github.com/localtrades/contractor-directory/internal/service"
	"github.com/localtrades/contractor-directory/internal/storage"
	myhttp "github.com/localtrades/contractor-directory/internal/transport/http"
	"github.com/localtrades/contractor-directory/pkg/logger/slogpretty"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()
	log := slogpretty.SetupLogger(cfg.Env)

	log.Info("starting contractor-directory", slog.String("env", cfg.Env))

	errChan := make(chan error, 1)

	db, err := postgres.NewDB(cfg.Postgres)
	if err != nil {
		return fmt.Errorf("failed to init db: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("db close failed", slog.String("error", err.Error()))
		}
	}()

	contractorRepo := postgres.NewContractorRepository(db, log)
	reviewRepo := postgres.NewReviewRepository(db, log)
	categoryRepo := postgres.NewCategoryRepository(db, log)
	userRepo := postgres.NewUserRepository(db, log)
	adRepo := postgres.NewAdvertisementRepository(db, log)
	disputeRepo := postgres.NewDisputeRepository(db, log)

	files := storage.NewMemoryStorage(cfg.Storage.BaseURL)
	providers := identity.NewProviders(cfg.Providers)

	srv := myhttp.NewServer(
		log,
		service.NewContractorService(contractorRepo, log),
		service.NewReviewService(db, log, reviewRepo, contractorRepo, files),
		service.NewCategoryService(categoryRepo, log),
		service.NewUserService(userRepo, log),
		service.NewAdvertisementService(adRepo, log),
		service.NewDisputeService(disputeRepo, log),
		providers,
	)

	httpServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go startServer(log, httpServer, errChan)

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %v", err)

	case <-ctx.Done():
		log.Info("stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down http server: %v", err)
	}

	return nil
}

func startServer(log *slog.Logger, httpServer *http.Server, errChan chan error) {
	defer close(errChan)

	log.Info("service started", slog.String("addr", httpServer.Addr))

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- fmt.Errorf("error listening and serving: %v", err)
	}
}
