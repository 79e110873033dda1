package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/example/solve-square/cli"
	"github.com/example/solve-square/config"
	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/cache"
)

const usage = `Usage: solve-square [-debug] [command]

Commands:
  (none)     read a, b and c from standard input and print the roots
  examples   solve the reference equations and report pass or fail
  serve      run the REST and NATS services

Environment:
  SOLVER_TOLERANCE, LOG_FORMAT
  serve also reads HTTP_PORT, DB_PATH, DB_DEBUG, REDIS_ADDR,
  CACHE_TTL, CACHE_PREFIX, SHUTDOWN_TIMEOUT
`

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
	}
	flag.Parse()

	common, err := config.LoadCommon()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	setupLogging(common.LogFormat, *debug)

	solver, err := equation.NewSolver(common.Tolerance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	switch cmd := flag.Arg(0); cmd {
	case "":
		os.Exit(runInteractive(ctx, solver))
	case "examples":
		os.Exit(runExamples(solver))
	case "serve":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(runServer(ctx, cfg, solver))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
}

func setupLogging(format string, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runInteractive(ctx context.Context, solver equation.Solver) int {
	err := cli.New(solver).Run(ctx, os.Stdin, os.Stdout)
	if err == nil {
		return 0
	}

	// The prompt leaves the cursor mid-line.
	fmt.Fprintln(os.Stdout)

	var inputErr *cli.InputError
	if errors.As(err, &inputErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", inputErr)
		return 1
	}
	slog.ErrorContext(ctx, "cli run failed", "error", err)
	return 1
}

func runExamples(solver equation.Solver) int {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if failed := cli.RunExamples(os.Stdout, solver, color); failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d examples failed\n", failed, len(cli.Examples))
		return 1
	}
	return 0
}

func cacheConfig(cfg config.Config) cache.Config {
	return cache.Config{
		RedisAddr: cfg.RedisAddr,
		Prefix:    cfg.CachePrefix,
		TTL:       cfg.CacheTTL,
	}
}
