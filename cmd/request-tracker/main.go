package main

import (
	"context"
	"errors"
	"flag"
	stdlog "log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"request-tracker/internal/config"
	"request-tracker/internal/idgen"
	"request-tracker/internal/lifecycle"
	"request-tracker/internal/logger"
	"request-tracker/internal/notifier"
	"request-tracker/internal/repository/postgres"
	"request-tracker/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.New(fetchConfigPath())
	if err != nil {
		stdlog.Fatalf("cannot initialize config: %v", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		stdlog.Fatalf("cannot initialize logger: %v", err)
	}
	defer log.Sync()

	repo, err := postgres.New(ctx, &cfg.Postgres, log)
	if err != nil {
		log.Fatal("cannot connect to postgres", zap.Error(err))
	}
	defer repo.Close()

	// Users and scenarios are immutable seed data, loaded once so the
	// lifecycle engine stays free of I/O.
	users, err := repo.ListUsers(ctx)
	if err != nil {
		log.Fatal("cannot load users", zap.Error(err))
	}
	scenarios, err := repo.ListScenarios(ctx, "")
	if err != nil {
		log.Fatal("cannot load scenarios", zap.Error(err))
	}

	seed, err := repo.MaxRequestNumber(ctx)
	if err != nil {
		log.Fatal("cannot read max request number", zap.Error(err))
	}

	ids := idgen.New(seed)
	engine := lifecycle.NewEngine(
		lifecycle.Standard,
		lifecycle.SystemClock{},
		ids,
		lifecycle.NewStaticDirectory(users),
		lifecycle.NewStaticCatalog(scenarios),
	)
	notify := notifier.New(repo, ids, log, cfg.Postgres.Timeout)

	router := server.NewRouter(repo, engine, notify, ids, log, cfg.HTTP.Timeout)
	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.Host, strconv.Itoa(cfg.HTTP.Port)),
		Handler: router,
	}

	go func() {
		log.Info("starting http server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down http server", zap.Error(err))
	}

	log.Info("application shutdown completed successfully")
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config_path", "", "Path to the config file")
	flag.Parse()

	return path
}
