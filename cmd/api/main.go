package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/probe"
	"github.com/bac-interop/interop-backend/internal/bac/status"
	"github.com/bac-interop/interop-backend/internal/bac/upstream"
	"github.com/bac-interop/interop-backend/internal/bootstrap"
	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/bac-interop/interop-backend/internal/media/repository"
)

const serviceName = "interop-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)
	logging.SetLevel(logging.ParseLevel(cfg.App.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := bootstrap.RouterDeps{ServiceName: serviceName, Version: cfg.App.Version}

	if cfg.Database.DSN != "" {
		pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		deps.DB = pool
		deps.Videos = repository.NewVideoRepository(pool)
	} else {
		log.Println("DATABASE_URL not set, video endpoints disabled")
	}

	var recorder upstream.Recorder
	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		store := status.NewStore(rdb)
		recorder = store
		deps.Upstreams = store
	}

	catalog, err := bootstrap.BuildCatalog(cfg, recorder)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	deps.Catalog = catalog

	scheduler := probe.NewScheduler(catalog)
	if err := scheduler.Start(cfg.Upstream.ProbeSchedule); err != nil {
		log.Fatalf("probe: %v", err)
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

