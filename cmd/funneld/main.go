package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Echolyx123/advansells-frontend/internal/brain"
	"github.com/Echolyx123/advansells-frontend/internal/config"
	"github.com/Echolyx123/advansells-frontend/internal/cta"
	"github.com/Echolyx123/advansells-frontend/internal/httpapi"
	"github.com/Echolyx123/advansells-frontend/internal/observability"
	"github.com/Echolyx123/advansells-frontend/internal/render"
	"github.com/Echolyx123/advansells-frontend/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv load skipped: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	registry, err := cta.NewRegistry(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("cta registry init failed: %v", err)
	}
	defer registry.Close()
	resolver := cta.NewResolver(registry)

	adapter, err := brain.NewAdapter(brain.Config{
		Mode:    cfg.BrainMode,
		BaseURL: cfg.BrainBaseURL,
		Timeout: cfg.BrainTimeout,
	})
	if err != nil {
		log.Fatalf("brain adapter init failed: %v", err)
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	api := httpapi.New(cfg, sessions, adapter, render.New(), resolver, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()
	sessions.StartJanitor(runCtx, 5*time.Second)

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}
