package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/dragshell/internal/daemon"
	"github.com/1broseidon/dragshell/internal/dnd"
	"github.com/1broseidon/dragshell/internal/hotkeys"
	"github.com/1broseidon/dragshell/internal/ipc"
	"github.com/1broseidon/dragshell/internal/logging"
	"github.com/1broseidon/dragshell/internal/platform"
	"github.com/1broseidon/dragshell/internal/session"
)

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/dragshell/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dragshell daemon [--config FILE]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the drag session daemon in the foreground.")
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger, closer, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting dragshell daemon",
		"pid", os.Getpid(),
		"workspace_mime", dnd.WorkspaceMime(),
		"toplevel_mime", dnd.ToplevelMime())

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer backend.Disconnect()

	targets := session.NewTargets()
	tracker := session.NewTracker(targets, backend, logger)
	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: cfg.Targets.RefreshInterval.Std(),
		Outputs:  cfg.Targets.Outputs,
		Logger:   logger,
	}, backend, targets)

	server, err := ipc.NewServer(cfg.IPC.Socket, backend, tracker, targets, logger)
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		return 1
	}
	if err := server.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		return 1
	}
	defer server.Stop()

	if key, ok := cfg.CancelDragHotkey(); ok {
		if err := registerCancelHotkey(backend, tracker, key, logger); err != nil {
			logger.Warn("cancel hotkey unavailable", "key", key, "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	reload := func() {
		next, err := loadConfig(*configPath)
		if err != nil {
			logger.Error("config reload failed, keeping current settings", "error", err)
			return
		}
		reconciler.Update(daemon.ReconcilerConfig{
			Interval: next.Targets.RefreshInterval.Std(),
			Outputs:  next.Targets.Outputs,
		})
		logger.Info("config reloaded",
			"refresh_interval", next.Targets.RefreshInterval.Std(),
			"outputs", next.Targets.Outputs)
	}

	if err := serveDaemon(ctx, backend, reconciler, hup, reload, logger); err != nil {
		logger.Error("daemon stopped", "error", err)
		return 1
	}
	logger.Info("daemon stopped")
	return 0
}

// eventLoop is the part of the backend that pumps X events.
type eventLoop interface {
	EventLoop()
	StopEventLoop() error
}

type runner interface {
	Run(ctx context.Context) error
}

// serveDaemon supervises the reconciler and the X event loop until ctx is
// cancelled or one of them fails. Each value received on hup calls reload.
func serveDaemon(ctx context.Context, loop eventLoop, reconciler runner, hup <-chan os.Signal, reload func(), logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return reconciler.Run(gctx)
	})
	g.Go(func() error {
		loop.EventLoop()
		if gctx.Err() == nil {
			return errors.New("X event loop exited")
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				if err := loop.StopEventLoop(); err != nil {
					logger.Warn("failed to wake X event loop", "error", err)
				}
				return nil
			case <-hup:
				logger.Info("received SIGHUP, reloading config")
				reload()
			}
		}
	})
	return g.Wait()
}

func registerCancelHotkey(backend hotkeys.X11Accessor, tracker *session.Tracker, key string, logger *slog.Logger) error {
	handler, err := hotkeys.NewHandler(backend, logger)
	if err != nil {
		return err
	}
	if err := handler.RegisterCancel(key, tracker); err != nil {
		return err
	}
	logger.Info("cancel hotkey registered", "key", key)
	return nil
}
