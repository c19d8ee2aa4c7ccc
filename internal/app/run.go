package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vk/botgrid/internal/config"
	"github.com/vk/botgrid/internal/ctxlog"
	"github.com/vk/botgrid/internal/robot"
)

// Run constructs every robot in the loaded model, starts them all, and then
// blocks until the process is asked to stop, at which point every robot is
// halted. Construction failures abort before anything starts; startup
// failures halt whatever did start.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	robots := make([]*robot.Robot, 0, len(a.model.Robots))
	for _, spec := range a.model.Robots {
		rb, err := robot.New(ctx, &robot.Options{
			Name:        spec.Name,
			Connections: spec.Connections,
			Devices:     spec.Devices,
			Extra:       spec.Extra,
			Runtime:     a.runtime,
			Registry:    a.registry,
		})
		if err != nil {
			return err
		}
		robots = append(robots, rb)
	}
	if len(robots) == 0 {
		a.logger.Warn("No robots declared in grid, nothing to run.")
		return nil
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Auto-mode robots hand Start to their own goroutine at construction;
	// starting them again here would run the sequence twice.
	if a.runtime.Mode == config.ModeAuto {
		a.logger.Info("Auto mode, robots start themselves.", "count", len(robots))
	} else {
		if err := forAll(robots, func(rb *robot.Robot) error { return rb.Start(ctx) }); err != nil {
			a.logger.Error("Startup failed, halting robots.", "error", err)
			return errors.Join(err, a.haltAll(ctx, robots))
		}
		a.logger.Info("All robots started.", "count", len(robots))
	}
	<-sigCtx.Done()
	a.logger.Info("Shutdown requested, halting robots.")

	return a.haltAll(ctx, robots)
}

func (a *App) haltAll(ctx context.Context, robots []*robot.Robot) error {
	return forAll(robots, func(rb *robot.Robot) error { return rb.Halt(ctx) })
}

func forAll(robots []*robot.Robot, op func(*robot.Robot) error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(robots))
	for i, rb := range robots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = op(rb)
		}()
	}
	wg.Wait()
	return errors.Join(errs...)
}
