package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/example/personal-calendar/internal/application"
	"github.com/example/personal-calendar/internal/command"
	"github.com/example/personal-calendar/internal/config"
	"github.com/example/personal-calendar/internal/ics"
	"github.com/example/personal-calendar/internal/logging"
	"github.com/example/personal-calendar/internal/persistence/sqlite"
	"github.com/example/personal-calendar/internal/view"
)

func main() {
	mode := flag.String("mode", "interactive", "run mode: interactive or headless")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stderr, cfg.LogLevel)

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	service := application.NewCalendarService(storage, uuid.NewString, logger,
		application.WithQueryCacheTTL(cfg.QueryCacheTTL))
	runner := command.NewRunner(service, view.New(os.Stdout, os.Stderr), ics.NewExporter(nil), logger)

	ctx = logging.ContextWithLogger(ctx, logger)

	switch *mode {
	case "interactive":
		err = runner.RunInteractive(ctx, os.Stdin)
	case "headless":
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: headless mode requires a script file argument")
			os.Exit(1)
		}
		var script *os.File
		script, err = os.Open(flag.Arg(0))
		if err != nil {
			logger.Error("failed to open script", "error", err)
			os.Exit(1)
		}
		err = runner.RunHeadless(ctx, script)
		script.Close()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *mode)
		os.Exit(1)
	}

	if err != nil {
		logger.Error("session ended with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
