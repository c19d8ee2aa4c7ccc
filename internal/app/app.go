package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/registry"
)

// Config holds everything an App needs to run.
type Config struct {
	GridPath  string
	LogFormat string
	LogLevel  string
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	runtime  *config.Runtime
	model    *config.Model
}

// New is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger, runtime settings read from
// the environment, and a registry backed by the compiled-in module table.
// A failure to load the grid is a fatal startup error and panics; the
// command entrypoint recovers it into a clean exit.
func New(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.GridPath)
	if err != nil {
		panic(fmt.Errorf("failed to load grid configuration: %w", err))
	}
	logger.Debug("Grid configuration loaded.", "robots", len(model.Robots))

	reg := registry.New(ModuleLoader())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		runtime:  config.FromEnv(),
		model:    model,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
