package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	catalogtoml "github.com/nvallen/paywise-cli/internal/adapters/catalog/toml"
	cachetoml "github.com/nvallen/paywise-cli/internal/adapters/cache/toml"
	"github.com/nvallen/paywise-cli/internal/adapters/gateway/rest"
	"github.com/nvallen/paywise-cli/internal/application"
	"github.com/nvallen/paywise-cli/internal/config"
	"github.com/nvallen/paywise-cli/internal/ports"
)

type app struct {
	cfg     *config.Config
	engine  *application.Engine
	catalog ports.Catalog
	stdin   io.Reader
}

func wireApp() (*app, error) {
	cfg, v, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cache, err := cachetoml.NewStore(v)
	if err != nil {
		return nil, fmt.Errorf("wire session cache: %w", err)
	}

	gateway := rest.New(cfg.APIBaseURL, nil)
	engine := application.NewEngine(gateway, cache, ports.SystemClock{}, newLogger(cfg.LogLevel), cfg.SyncInterval)

	return &app{
		cfg:     cfg,
		engine:  engine,
		catalog: catalogtoml.NewCatalog(cfg.CatalogPath),
		stdin:   os.Stdin,
	}, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
