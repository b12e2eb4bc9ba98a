package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/vk/footprintgen/internal/registry"
)

// App holds the configured logger and generator registry for one run.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp registers the given modules (the compiled-in ones when none are
// given), loads the generator manifests and checks that both agree. Log
// output and the run summary go to outW.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.LoadManifests(ctx, cfg.GeneratorsDir); err != nil {
		return nil, err
	}
	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}, nil
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

