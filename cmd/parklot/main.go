// Command parklot runs the parking-lot controller simulation: it drives the
// controller from a YAML scenario (or free-runs at a configured pace), logs
// occupancy changes, and mirrors the state to optional Modbus display and
// MQTT telemetry bridges.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jrv81/parklot"
	"github.com/jrv81/parklot/internal/config"
	"github.com/jrv81/parklot/internal/panel"
	"github.com/jrv81/parklot/internal/telemetry"
)

// settleCycles keeps a scripted run alive past the last event so its effects
// reach the registers and the display.
const settleCycles = 64

func main() {
	if len(os.Args) < 2 {
		slog.Error("usage: parklot <config.yaml>")
		os.Exit(2)
	}

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.Logging)

	ctl, err := newController(cfg.Controller)
	if err != nil {
		log.Error("controller build failed", "error", err)
		os.Exit(1)
	}
	log.Info("controller ready",
		"clock_hz", cfg.Controller.ClockHz,
		"refresh_hz", cfg.Controller.RefreshHz,
		"divider_threshold", ctl.Threshold(),
		"capacity", parklot.Capacity)

	var mirror *panel.Mirror
	if cfg.Panel != nil {
		mirror, err = panel.New(cfg.Panel)
		if err != nil {
			log.Error("panel connect failed", "error", err)
			os.Exit(1)
		}
		defer mirror.Close()
		log.Info("panel mirror connected", "endpoint", cfg.Panel.Endpoint)
	}

	var pub *telemetry.Publisher
	if cfg.Telemetry != nil {
		pub, err = telemetry.Connect(cfg.Telemetry)
		if err != nil {
			log.Error("telemetry connect failed", "error", err)
			os.Exit(1)
		}
		defer pub.Close()
		log.Info("telemetry connected", "broker", cfg.Telemetry.Broker, "topic", cfg.Telemetry.Topic)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run(ctx, log, cfg, ctl, mirror, pub)
	log.Info("simulation finished", "cycles", ctl.Cycles(), "count", ctl.Count())
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func newController(cfg config.ControllerConfig) (*parklot.Controller, error) {
	entry, exit := newDebouncers(cfg.DebounceCycles)
	return parklot.New(cfg.ClockHz, cfg.RefreshHz,
		parklot.WithEntryDebouncer(entry),
		parklot.WithExitDebouncer(exit))
}

func newDebouncers(depth int) (parklot.Debouncer, parklot.Debouncer) {
	if depth == 0 {
		return parklot.Direct{}, parklot.Direct{}
	}
	return parklot.NewStability(depth), parklot.NewStability(depth)
}

// run steps the controller until the context is cancelled, the cycle limit
// is reached, or a scripted scenario has played out. State changes are
// logged and fanned out to the bridges; the panel mirror additionally gets
// a periodic call so it can re-assert its block.
func run(ctx context.Context, log *slog.Logger, cfg *config.Config, ctl *parklot.Controller, mirror *panel.Mirror, pub *telemetry.Publisher) {
	events := cfg.Scenario
	scripted := len(events) > 0
	limit := cfg.Run.MaxCycles
	if scripted && limit == 0 {
		limit = events[len(events)-1].At + settleCycles
	}

	// free-run pacing: a batch of steps per ticker period
	const period = 100 * time.Millisecond
	batch := cfg.Run.StepsPerSecond / int(time.Second/period)
	if batch < 1 {
		batch = 1
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var (
		next     int
		manual   uint8
		enabled  bool
		last     = ctl.Snapshot()
		inflight int
	)

	fanout := func(snap parklot.Snapshot) {
		if mirror != nil {
			if _, err := mirror.Sync(snap); err != nil {
				log.Error("panel sync failed", "error", err)
			}
		}
		if pub != nil {
			if err := pub.Publish(snap); err != nil {
				log.Error("telemetry publish failed", "error", err)
			}
		}
	}

	for {
		for next < len(events) && events[next].At <= ctl.Cycles() {
			manual, enabled = applyEvent(ctl, events[next], manual, enabled)
			next++
		}

		ctl.Step()

		snap := ctl.Snapshot()
		if stateChanged(last, snap) {
			log.Info("occupancy changed",
				"cycle", snap.Cycle,
				"count", snap.Count,
				"open", snap.Open,
				"full", snap.Full,
				"closed", snap.Closed)
			fanout(snap)
			last = snap
		}

		if limit > 0 && ctl.Cycles() >= limit {
			return
		}

		inflight++
		if !scripted && inflight >= batch {
			inflight = 0
			fanout(snap) // lets the mirror re-assert its block
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		} else {
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}
}

func applyEvent(ctl *parklot.Controller, ev config.Event, manual uint8, enabled bool) (uint8, bool) {
	if ev.Reset != nil {
		ctl.SetReset(*ev.Reset)
	}
	if ev.Entry != nil {
		ctl.SetEntry(*ev.Entry)
	}
	if ev.Exit != nil {
		ctl.SetExit(*ev.Exit)
	}
	if ev.Start != nil {
		ctl.SetStart(*ev.Start)
	}
	if ev.Stop != nil {
		ctl.SetStop(*ev.Stop)
	}
	if ev.SetValue != nil {
		manual = *ev.SetValue
	}
	if ev.SetEnable != nil {
		enabled = *ev.SetEnable
	}
	if ev.SetValue != nil || ev.SetEnable != nil {
		ctl.SetManual(manual, enabled)
	}
	return manual, enabled
}

func stateChanged(a, b parklot.Snapshot) bool {
	return a.Count != b.Count || a.Open != b.Open || a.Full != b.Full || a.Closed != b.Closed
}
