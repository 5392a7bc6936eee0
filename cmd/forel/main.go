// Command forel clusters the points of a dataset file with FOREL and writes
// each point with its cluster index.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/forel/internal/app"
	"github.com/okian/forel/internal/config"
	"github.com/okian/forel/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process plumbing. It returns the exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("forel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		inputPath   = fs.String("input", "", "dataset to cluster (default input.csv)")
		outputPath  = fs.String("output", "", "file receiving the clustered points (default output.csv)")
		plotPath    = fs.String("plot", "", "optional HTML scatter plot of the clusters")
		metricsPath = fs.String("metrics", "", "optional Prometheus textfile of the run metrics")
		configPath  = fs.String("config", "", "optional YAML configuration file")
		logLevel    = fs.String("log-level", "", "debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return app.ExitCode(fmt.Errorf("%w: %w", config.ErrInvalidConfig, err))
	}

	// Load configuration (defaults -> optional file -> env), then flags.
	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return app.ExitCode(err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPath
		case "output":
			cfg.OutputPath = *outputPath
		case "plot":
			cfg.PlotPath = *plotPath
		case "metrics":
			cfg.MetricsPath = *metricsPath
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(stderr, "invalid configuration: "+err.Error())
		return app.ExitCode(err)
	}

	if err := logger.InitWithWriter(stderr, cfg.LogFormat); err != nil {
		_, _ = fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return app.ExitCode(fmt.Errorf("%w: %w", config.ErrInvalidConfig, err))
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithConfig(cfg),
		app.WithLogger(log),
	)
	if _, err := svc.Run(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "forel: "+err.Error())
		return app.ExitCode(err)
	}
	return 0
}
