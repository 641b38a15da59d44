package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/parmenasoares/track-and-work/internal/config"
	"github.com/parmenasoares/track-and-work/internal/infra"
	"github.com/parmenasoares/track-and-work/internal/piicrypt"
	"github.com/parmenasoares/track-and-work/internal/repository"
	"github.com/parmenasoares/track-and-work/internal/router"
	"github.com/parmenasoares/track-and-work/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	store, err := infra.NewObjectStore(cfg.StorageRoot, cfg.URLSigningSecret, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init object storage")
	}

	enc, err := piicrypt.New(cfg.PIIEncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init field encryption")
	}

	// Worker pool and crons are wired here (composition root) so they share
	// the server's infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	emailWorker := worker.NewEmailWorker(mailer)
	cleanupWorker := worker.NewCleanupWorker(store)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.HandlerFunc{
		worker.QueueEmail:   emailWorker.Process,
		worker.QueueCleanup: cleanupWorker.Process,
	})

	worker.StartReminderCron(ctx, worker.ReminderCronConfig{
		Verifications: repository.NewVerificationRepository(db),
		Roles:         repository.NewRoleRepository(db),
		Dispatcher:    dispatcher,
		RDB:           rdb,
	})

	r := router.New(cfg, db, rdb, store, enc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("track-and-work API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
