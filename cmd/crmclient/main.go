package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/crmclient/internal/adapter/driven/crmapi"
	"github.com/ericfisherdev/crmclient/internal/adapter/driven/memory"
	"github.com/ericfisherdev/crmclient/internal/adapter/driven/rest"
	"github.com/ericfisherdev/crmclient/internal/adapter/driving/cli"
	"github.com/ericfisherdev/crmclient/internal/application"
	"github.com/ericfisherdev/crmclient/internal/config"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			slog.Error("fatal error", "error", err)
		}
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Debug("config loaded",
		"base_url", cfg.BaseURL,
		"timeout", cfg.Timeout,
		"http_cache", cfg.HTTPCache,
		"rate_limit", cfg.RateLimit,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire adapters. The token store lives for the process only.
	tokens := memory.NewTokenStore()
	httpClient := rest.NewHTTPClient(rest.TransportConfig{
		Timeout:   cfg.Timeout,
		Cache:     cfg.HTTPCache,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.RateBurst,
	})
	restClient, err := rest.NewClient(cfg.BaseURL, tokens,
		rest.WithHTTPClient(httpClient),
		rest.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	api := crmapi.NewClient(restClient, logger)

	// 4. Create application services.
	session := application.NewSessionService(api, tokens)
	customers := application.NewCustomerService(api, session)
	users := application.NewUserService(api, session)

	// 5. Run the requested command.
	app := cli.NewApp(session, customers, users, cli.WithDefaultUsername(cfg.Username))
	runErr := app.Run(ctx, os.Args[1:])

	stats := restClient.Stats()
	slog.Debug("request stats",
		"requests", stats.Requests,
		"auth_failures", stats.AuthFailures,
		"not_found", stats.NotFound,
		"transport_failures", stats.TransportFailures,
		"decode_failures", stats.DecodeFailures,
		"double_encoded", stats.DoubleEncoded,
	)
	return runErr
}
