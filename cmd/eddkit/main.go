// Command eddkit queries an Easy Digital Downloads store from the terminal
// and serves the same lookups to MCP clients.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/cache"
	"github.com/custodia-labs/eddkit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/eddkit/internal/adapters/driving/cli"
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/services"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore(os.Getenv("EDDKIT_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("%v; using defaults", err)
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	host, closeHost, err := openHost(settings)
	if err != nil {
		return err
	}
	defer closeHost()

	transients, closer, err := cache.New(ctx, cache.Options{
		Backend:    settings.Cache.Backend,
		RedisAddr:  settings.Cache.RedisAddr,
		RedisDB:    settings.Cache.RedisDB,
		Prefix:     "eddkit:",
		DefaultTTL: settings.Cache.TTL,
	})
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer closeQuietly("cache", closer)

	svc := cli.NewServices(host, transients, *settings)
	svc.Settings = settingsService
	svc.Watcher = configStore
	cli.SetServices(svc)
	cli.SetVersion(version)

	return cli.ExecuteContext(ctx)
}

// openHost opens the configured storage backend.
func openHost(settings *domain.Settings) (driven.Host, func(), error) {
	switch settings.Storage.Backend {
	case domain.StorageMemory:
		var opts []memory.Option
		if settings.Search.Fuzzy {
			opts = append(opts, memory.WithFuzzySearch())
		}
		return memory.NewHost(opts...), func() {}, nil
	default:
		store, err := sqlite.NewStore(settings.Storage.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening store: %w", err)
		}
		return store, func() { closeQuietly("store", store) }, nil
	}
}

func closeQuietly(what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("closing %s: %v", what, err)
	}
}
