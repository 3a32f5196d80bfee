// Copyright MCP Actions Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bettyblocks/mcp-gateway/pkg/actions"
	httpAdapter "github.com/bettyblocks/mcp-gateway/pkg/adapters/http"
	"github.com/bettyblocks/mcp-gateway/pkg/auth"
	"github.com/bettyblocks/mcp-gateway/pkg/configstore"
	csmemory "github.com/bettyblocks/mcp-gateway/pkg/configstore/memory"
	cspostgres "github.com/bettyblocks/mcp-gateway/pkg/configstore/postgres"
	cssqlite "github.com/bettyblocks/mcp-gateway/pkg/configstore/sqlite"
	"github.com/bettyblocks/mcp-gateway/pkg/core/config"
	"github.com/bettyblocks/mcp-gateway/pkg/core/rpc"
	"github.com/bettyblocks/mcp-gateway/pkg/observability/logging"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("MCP Actions Gateway\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info("Starting MCP Actions Gateway",
		"version", Version,
		"build_time", BuildTime)

	store, cleanup, err := newConfigStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize config store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	backend := actions.NewHTTPBackend(cfg.Actions.RunnerURL, cfg.Actions.APIKey, cfg.Actions.Timeout)

	var validator auth.Validator
	switch cfg.Auth.Mode {
	case "jwt":
		if cfg.Auth.JWTSecret == "" {
			logger.Error("auth mode jwt requires a jwt_secret")
			os.Exit(1)
		}
		validator = auth.NewJWTValidator([]byte(cfg.Auth.JWTSecret))
	case "none":
		logger.Warn("Authentication disabled; do not run this in production")
		validator = auth.NoopValidator{}
	default:
		logger.Error("Unknown auth mode", "mode", cfg.Auth.Mode)
		os.Exit(1)
	}

	processor := rpc.New(store, backend, logger)
	handler := httpAdapter.New(processor, validator, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		logger.Info("Listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", "error", err)
	}
}

// newConfigStore builds the configured runtime configuration store. The
// memory store is seeded with the sample catalog so a bare `gateway` run has
// something to serve.
func newConfigStore(cfg *config.Config, logger *logging.Logger) (configstore.Store, func(), error) {
	switch cfg.ConfigStore.Type {
	case "memory":
		store := csmemory.New()
		csmemory.SeedSample(store)
		logger.Info("Initialized in-memory config store with sample servers")
		return store, func() {}, nil
	case "sqlite":
		store, err := cssqlite.New(cfg.ConfigStore.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized sqlite config store", "dsn", cfg.ConfigStore.DSN)
		return store, func() { store.Close() }, nil
	case "postgres":
		store, err := cspostgres.New(cfg.ConfigStore.DSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized postgres config store")
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown config store type %q", cfg.ConfigStore.Type)
	}
}
