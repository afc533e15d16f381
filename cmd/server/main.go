package main

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

	"github.com/joho/godotenv"

	casesservice "contacttrace/internal/cases/service"
	casesstore "contacttrace/internal/cases/store"
	exposureservice "contacttrace/internal/exposure/service"
	exposurestore "contacttrace/internal/exposure/store"
	"contacttrace/internal/interaction"
	interactionstore "contacttrace/internal/interaction/store"
	"contacttrace/internal/platform/config"
	"contacttrace/internal/platform/httpserver"
	"contacttrace/internal/platform/logger"
	"contacttrace/internal/platform/redis"
	"contacttrace/internal/platform/relational"
	"contacttrace/internal/platform/scheduler"
	httptransport "contacttrace/internal/transport/http"
)

// main wires the stores, services and HTTP router, and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	checks := []httptransport.HealthCheck{redisClient.Health}

	symptomLog := casesstore.NewSymptomLog(redisClient)
	caseIndex := casesstore.NewCaseIndex(redisClient)
	cases, err := casesservice.New(caseIndex, symptomLog,
		casesservice.WithLogger(log),
		casesservice.WithMaxLookback(cfg.Cases.MaxLookback),
	)
	if err != nil {
		return err
	}

	var (
		relStore *exposurestore.PostgresStore
		linker   interaction.Linker = interactionstore.NewRedis(redisClient,
			interactionstore.WithRedisTTL(cfg.Interactions.TTL))
	)
	exposureOpts := []exposureservice.Option{
		exposureservice.WithLogger(log),
		exposureservice.WithDefaultGeo(cfg.Interactions.Geo),
	}

	if cfg.Postgres.URL != "" {
		db, err := relational.Open(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()

		relStore = exposurestore.NewPostgres(db,
			exposurestore.WithFanoutLimit(cfg.Exposure.FanoutLimit),
			exposurestore.WithInteractionTTL(cfg.Interactions.TTL),
		)
		exposureOpts = append(exposureOpts, exposureservice.WithStore(relStore))
		checks = append(checks, relStore.Ping)
		log.Info("relational store enabled", "driver", cfg.Postgres.Driver)
	} else {
		log.Warn("POSTGRES_URL not set; relational exposure operations are disabled")
	}

	sched := scheduler.New(log)
	if cfg.Interactions.Backend == interaction.BackendPostgres {
		pg := interactionstore.NewPostgres(relStore)
		linker = pg
		if err := sched.Add("clear_old_interactions", cfg.Interactions.PurgeSchedule, pg.ClearOldInteractions); err != nil {
			return err
		}
	}
	log.Info("interaction backend selected", "backend", cfg.Interactions.Backend, "ttl", cfg.Interactions.TTL)

	exposures, err := exposureservice.New(linker, symptomLog, exposureOpts...)
	if err != nil {
		return err
	}

	handler := httptransport.NewHandler(cases, exposures, log)
	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(handler, checks...))

	sched.Start()
	defer sched.Stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting contacttrace", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
