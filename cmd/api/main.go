package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rodcosta/shophub/internal/cache/redisclient"
	"github.com/rodcosta/shophub/internal/config"
	"github.com/rodcosta/shophub/internal/db"
	httpx "github.com/rodcosta/shophub/internal/http"
	"github.com/rodcosta/shophub/internal/observability"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// tracing
	shutdownTracer, err := observability.InitTracer(context.Background(), "shophub-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed, continuing without traces", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// postgres
	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("could not connect to postgres", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	// bootstrap admin account
	seedCtx, cancelSeed := config.WithTimeout(5 * time.Second)

	err = db.EnsureAdminUser(seedCtx, pool, cfg)

	cancelSeed()

	if err != nil {
		log.Error("could not seed admin user", "err", err)
		os.Exit(1)
	}

	// redis is optional; without it the catalog cache stays in process
	var rdb *redis.Client

	if cfg.RedisAddr != "" {
		client := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancelPing := config.WithTimeout(2 * time.Second)
		err = client.Ping(pingCtx)
		cancelPing()

		if err != nil {
			log.Warn("redis unreachable, falling back to in-memory cache", "err", err)
		} else {
			rdb = client.Raw()
			defer client.Close()
		}
	}

	router := httpx.NewRouter(log, pool, rdb, cfg)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
