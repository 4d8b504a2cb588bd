// Command transcribe uploads recorded audio to the zh-learn blob container.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jorjao81/zh-learn/config"
	"github.com/jorjao81/zh-learn/internal/backend"
	"github.com/jorjao81/zh-learn/internal/storage"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Exit statuses.
const (
	exitOK          = 0
	exitError       = 1
	exitUploadFails = 2
)

// storeFactory builds the object store for a run.
type storeFactory func(ctx context.Context, cfg config.Config, dryRun bool) (storage.Store, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr, os.LookupEnv, newStore)
	stop()
	os.Exit(code)
}

func newStore(ctx context.Context, cfg config.Config, dryRun bool) (storage.Store, error) {
	if dryRun {
		store, err := backend.DryRun(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return backend.New(ctx, cfg)
}

// app holds what every subcommand needs.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	lookup   config.LookupFunc
	newStore storeFactory
	logger   *slog.Logger
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	lookup config.LookupFunc,
	newStore storeFactory,
) int {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		lookup:   lookup,
		newStore: newStore,
		logger:   slog.New(slog.DiscardHandler),
	}

	cmd := &cli.Command{
		Name:      "transcribe",
		Usage:     "Upload audio recordings and look up words",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("ZH_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file with storage settings, ignored when missing",
				Value: ".env",
			},
		},
		Before: a.setupLogging,
		Commands: []*cli.Command{
			a.uploadCommand(),
			a.searchCommand(),
			a.ankiCommand(),
		},
		// Exit codes are resolved below instead of calling os.Exit inside the library.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := cmd.Run(ctx, args)
	if err == nil {
		return exitOK
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := err.Error(); msg != "" {
			_, _ = fmt.Fprintln(stderr, msg)
		}
		return exitErr.ExitCode()
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}

func (a *app) setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
		return ctx, cli.Exit(fmt.Sprintf("Error: invalid --log-level %q", cmd.String("log-level")), exitError)
	}

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return ctx, nil
}

func (a *app) loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(a.lookup, cmd.String("env-file"))
	if err != nil {
		return config.Config{}, err
	}
	a.logger.Debug("configuration loaded",
		"backend", cfg.Backend,
		"container", cfg.Container,
		"credentials", cfg.Credentials.String())
	return cfg, nil
}
