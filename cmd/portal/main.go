package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flowpilot/portal-go/internal/apiclient"
	"github.com/flowpilot/portal-go/internal/config"
	"github.com/flowpilot/portal-go/internal/guard"
	"github.com/flowpilot/portal-go/internal/handler"
	"github.com/flowpilot/portal-go/internal/scope"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	transport := apiclient.NewTransport()
	registry := scope.NewRegistry(ctx, func() (*apiclient.Client, error) {
		return apiclient.New(cfg.APIURL,
			apiclient.WithTimeout(cfg.RequestTimeout),
			apiclient.WithTransport(transport),
		)
	}, cfg.ScopeTTL, cfg.MaxScopes)

	r := handler.NewRouter(ctx, handler.RouterConfig{
		Registry:         registry,
		ScopeSecret:      cfg.ScopeSecret,
		ScopeTTL:         cfg.ScopeTTL,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		ScopeCreateRPS:   cfg.ScopeCreateRPS,
		ScopeCreateBurst: cfg.ScopeCreateBurst,
		Routes:           guard.DefaultRoutes(),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "api_url", cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}
	stop()
	transport.CloseIdleConnections()

	slog.Info("server stopped", "scopes", registry.Len())
}
