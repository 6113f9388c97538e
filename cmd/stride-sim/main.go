// Command stride-sim is an interactive workout-session simulator.
//
// It drives a full session engine with synthetic telemetry: a scripted
// GPS route and biometric ramps feed the aggregator while a ticker
// recomputes live metrics at a fixed cadence. Finished sessions are
// saved as JSON records.
//
// Usage:
//
//	stride-sim [flags]
//
// Flags:
//
//	-activity string   Activity: walk, hike, run, cycle (default "run")
//	-profiles string   Activity profile YAML file (optional overrides)
//	-records string    Record output directory (default "./records")
//	-event-log string  CBOR event log file (optional)
//	-tick duration     Recompute cadence (default 1s)
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Simulate a run with defaults
//	stride-sim -activity run
//
//	# Cycle with a custom profile file and an event log
//	stride-sim -activity cycle -profiles profiles.yaml -event-log events.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openstride/stride-go/cmd/stride-sim/interactive"
	"github.com/openstride/stride-go/pkg/activity"
	"github.com/openstride/stride-go/pkg/log"
	"github.com/openstride/stride-go/pkg/persistence"
	"github.com/openstride/stride-go/pkg/session"
)

// Config holds the simulator configuration.
type Config struct {
	Activity string
	Profiles string
	Records  string
	EventLog string
	Tick     time.Duration
	LogLevel string
}

var config Config

func init() {
	flag.StringVar(&config.Activity, "activity", "run", "Activity: walk, hike, run, cycle")
	flag.StringVar(&config.Profiles, "profiles", "", "Activity profile YAML file")
	flag.StringVar(&config.Records, "records", "./records", "Record output directory")
	flag.StringVar(&config.EventLog, "event-log", "", "CBOR event log file")
	flag.DurationVar(&config.Tick, "tick", time.Second, "Recompute cadence")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := setupLogging(config.LogLevel)

	actType, ok := activity.ParseType(config.Activity)
	if !ok {
		stdlog.Fatalf("Unknown activity: %s", config.Activity)
	}

	profile := activity.DefaultProfile(actType)
	if config.Profiles != "" {
		profiles, err := activity.LoadProfiles(config.Profiles)
		if err != nil {
			stdlog.Fatalf("Failed to load profiles: %v", err)
		}
		if p, ok := profiles[actType]; ok {
			profile = p
		}
	}

	eventLogger, closeLog, err := buildEventLogger(logger)
	if err != nil {
		stdlog.Fatalf("Failed to open event log: %v", err)
	}
	defer closeLog()

	ctrl := session.NewController(session.Config{
		Activity: actType,
		Profile:  &profile,
		Logger:   eventLogger,
	})
	store := persistence.NewRecordStore(config.Records)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Recompute ticker; Tick is a no-op outside ACTIVE.
	go func() {
		ticker := time.NewTicker(config.Tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				ctrl.Tick(now)
			}
		}
	}()

	ui, err := interactive.New(ctrl, store, profile)
	if err != nil {
		stdlog.Fatalf("Failed to start interactive mode: %v", err)
	}

	logger.Info("stride-sim ready",
		"activity", actType.String(),
		"records", config.Records,
		"tick", config.Tick.String())

	// Interrupt handling alongside the readline loop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	ui.Run(ctx, cancel)
	fmt.Println("Goodbye!")
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// buildEventLogger assembles the session event sink: an optional CBOR
// file stream plus the slog adapter at debug level.
func buildEventLogger(logger *slog.Logger) (log.Logger, func(), error) {
	slogAdapter := log.NewSlogAdapter(logger)

	if config.EventLog == "" {
		return slogAdapter, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(config.EventLog)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := fileLogger.Close(); err != nil {
			logger.Warn("closing event log", "err", err)
		}
	}
	return log.NewMultiLogger(fileLogger, slogAdapter), closeFn, nil
}
