package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const USAGE = `usage: heat-transit [-config file] [render|precache|serve]

  render    render the travel time heat map (default)
  precache  build the precache of the configured destination
  serve     answer route queries over http
`

func main() {
	config_file := flag.String("config", DefaultConfigPath(), "path of the config file, defaults to $HEAT_CONFIG")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), USAGE)
		flag.PrintDefaults()
	}
	flag.Parse()

	SetupLogging(os.Stderr, slog.LevelInfo)

	command := "render"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, command, *config_file); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

func Run(ctx context.Context, command string, config_file string) error {
	switch command {
	case "render", "precache", "serve":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	config, err := ReadConfig(config_file)
	if err != nil {
		return err
	}
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}
	SetupLogging(os.Stderr, level)

	run_id := uuid.New()
	slog.SetDefault(slog.Default().With("run", run_id.String()))
	slog.Info("starting " + command)

	if command == "precache" {
		if err := os.Remove(PrecachePath(config)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove old precache: %w", err)
		}
	}

	metrics := NewCollector()
	manager, err := NewTransitManager(ctx, config, metrics)
	if err != nil {
		return err
	}

	switch command {
	case "render":
		return RunRender(ctx, manager, config.Render, metrics)
	case "serve":
		return RunServer(ctx, manager, metrics, config.Server)
	default:
		slog.Info(fmt.Sprintf("precache holds %d stops", manager.CachedStops()), "path", manager.CachePath())
		return nil
	}
}
