// Package main runs the simulated barn backend as a real HTTP server, so the
// live transport can be exercised against it during development.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/EquiStack/barn_client/internal/app/gateway"
	"github.com/EquiStack/barn_client/internal/app/httpapi"
	"github.com/EquiStack/barn_client/internal/app/storage/memory"
	"github.com/EquiStack/barn_client/internal/config"
	"github.com/EquiStack/barn_client/internal/middleware"
	"github.com/EquiStack/barn_client/pkg/logger"
)

func main() {
	addr := flag.String("addr", ":8787", "listen address")
	configPath := flag.String("config", "", "path to YAML config file")
	seed := flag.Bool("seed", true, "preload development fixtures")
	rps := flag.Int("rps", 50, "per-client requests per second")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewDefault("simserver").Errorf("load config: %v", err)
		os.Exit(1)
	}

	log := logger.New(logger.LoggingConfig{
		Service: "simserver",
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
	})

	var store *memory.Store
	if *seed {
		store = memory.NewSeeded()
	} else {
		store = memory.New()
	}

	sim := gateway.NewSimulator(store, log)
	limiter := middleware.NewRateLimiter(*rps, *rps*2, log)
	handler := middleware.CORS(limiter.Handler(httpapi.NewHandler(sim, log)))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("simulated backend listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("serve: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
}
