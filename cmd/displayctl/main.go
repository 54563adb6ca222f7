package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/telvik/displayctl/internal/config"
	"codeberg.org/telvik/displayctl/internal/daemon"
	"codeberg.org/telvik/displayctl/internal/display"
	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/input"
	"codeberg.org/telvik/displayctl/internal/logger"
	"codeberg.org/telvik/displayctl/internal/monitor"
	"codeberg.org/telvik/displayctl/internal/notify"
	"codeberg.org/telvik/displayctl/internal/reconcile"
	"codeberg.org/telvik/displayctl/internal/telemetry"
)

var (
	cfg  *config.Config
	ctrl *display.Controller
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		if errors.HasCode(err, errors.ErrHelpRequested) {
			os.Exit(0)
		}
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.InitWithFile(cfg.Debug, cfg.Verbose, logger.IsService(), cfg.LogFile)
	if !cfg.Debug && !cfg.Verbose {
		if err := logger.SetLevelFromString(cfg.LogLevel); err != nil {
			logger.Warn().Err(err).Msg("Invalid log level; keeping defaults")
		}
	}
	logger.Debug().Msg("Config loaded")

	ctrl, err = display.New(display.DefaultBackend())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize display backend")
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	collector := initCollector()
	d := initDaemon(collector)

	err := run(ctx, d)
	cleanup(collector)

	if err != nil {
		if errors.HasCode(err, errors.ErrAlreadyRunning) {
			handleAlreadyRunning()
			return
		}

		var coded errors.Error
		if errors.As(err, &coded) {
			logger.ErrorWithCode(coded).Msg("error in main loop")
		} else {
			logger.Error().Err(err).Msg("error in main loop")
		}
		os.Exit(1)
	}

	logger.Info().Msg("Exiting...")
}

func run(ctx context.Context, d *daemon.Daemon) error {
	if cfg.Background || cfg.Monitor {
		watchConfig(d)
		return d.RunBackground(ctx)
	}

	return d.RunOnce(ctx)
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func initCollector() telemetry.Collector {
	collector, err := telemetry.NewService(telemetryConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	return collector
}

func initDaemon(collector telemetry.Collector) *daemon.Daemon {
	d, err := daemon.New(daemonConfig(), ctrl, input.NewPoller(0), collector)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize daemon")
	}

	return d
}

func cleanup(collector telemetry.Collector) {
	if err := collector.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close telemetry")
	}
}

// watchConfig follows target mode edits in the config file. Monitoring
// windows and retry policy stay as loaded; only the target is live.
func watchConfig(d *daemon.Daemon) {
	err := config.Watch(func(next *config.Config) {
		target := display.Mode{
			Width:       next.Width,
			Height:      next.Height,
			RefreshRate: next.RefreshRate,
		}
		if err := d.SetTarget(target); err != nil {
			logger.Warn().Err(err).Msg("Ignoring invalid target from configuration change")
		}
	})
	if err != nil {
		logger.Debug().Err(err).Msg("Configuration watching unavailable")
	}
}

func handleAlreadyRunning() {
	logger.Info().Msg("Another instance is running. Exiting...")
	if err := notify.Send("displayctl", "displayctl is already running."); err != nil {
		logger.Debug().Err(err).Msg("Could not deliver notification")
	}
}

func daemonConfig() daemon.Config {
	return daemon.Config{
		Target: display.Mode{
			Width:       cfg.Width,
			Height:      cfg.Height,
			RefreshRate: cfg.RefreshRate,
		},
		Monitor: monitor.Config{
			InactivityThreshold: time.Duration(cfg.InactivityTimeout) * time.Second,
			ApplyDelay:          time.Duration(cfg.ApplyDelay) * time.Second,
		},
		Retry: reconcile.Config{
			RetryDelay: time.Duration(cfg.RetryDelay) * time.Second,
			MaxRetries: cfg.MaxRetries,
		},
		MonitorOnly: cfg.Monitor,
	}
}

func telemetryConfig() telemetry.Config {
	tcfg := telemetry.DefaultConfig()
	tcfg.Enabled = cfg.Telemetry
	if cfg.TelemetryDB != "" {
		tcfg.DBPath = cfg.TelemetryDB
	}

	return tcfg
}
