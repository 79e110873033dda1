package main

import (
	"context"
	"log/slog"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/solve-square/config"
	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/api"
	"github.com/example/solve-square/modules/cache"
	"github.com/example/solve-square/modules/history"
	"github.com/example/solve-square/modules/solver"
)

// runServer starts the mono application and blocks until a shutdown signal.
// It returns the process exit code.
func runServer(ctx context.Context, cfg config.Config, eqSolver equation.Solver) int {
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create application", "error", err)
		return 1
	}

	logger := app.Logger()

	// Plugins start before and stop after the modules that use them.
	if cfg.CacheEnabled() {
		if err := app.RegisterPlugin(cache.NewPluginModule(cacheConfig(cfg)), "cache"); err != nil {
			slog.ErrorContext(ctx, "failed to register cache plugin", "error", err)
			return 1
		}
	} else {
		logger.Info("REDIS_ADDR not set, solving without a cache")
	}

	// - solver: provides services.solver.solve, emits EquationSolved
	// - history: consumes EquationSolved, provides services.history.*
	// - api: Fiber REST surface, depends on solver and history
	modules := []mono.Module{
		solver.NewModule(eqSolver, logger),
		history.NewModule(cfg.DBPath, cfg.DBDebug, logger),
		api.NewModule(cfg.HTTPPort, logger),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			slog.ErrorContext(ctx, "failed to register module", "module", m.Name(), "error", err)
			return 1
		}
	}

	if err := app.Start(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to start application", "error", err)
		return 1
	}

	logger.Info("solve-square server started",
		"http_port", cfg.HTTPPort,
		"tolerance", eqSolver.Tolerance(),
		"db_path", cfg.DBPath,
		"cache", cfg.CacheEnabled())
	logger.Info("REST endpoints",
		"endpoints", []string{
			"POST /api/v1/solve",
			"GET  /api/v1/solve?a=&b=&c=",
			"GET  /api/v1/history?limit=",
			"GET  /api/v1/history/stats",
			"GET  /api/v1/history/:id",
			"GET  /health",
		})
	logger.Info("Press Ctrl+C to shutdown gracefully")

	wait := gfshutdown.GracefulShutdown(
		ctx,
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	slog.InfoContext(ctx, "application exited", "code", exitCode)
	return exitCode
}
