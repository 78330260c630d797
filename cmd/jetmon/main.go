// Command jetmon is a hardware telemetry and control dashboard for NVIDIA
// Jetson boards. Without flags it runs the interactive TUI; the one-shot
// modes print JSON or apply a single control action and exit.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jetson-tools/jetmon/internal/config"
	"github.com/jetson-tools/jetmon/internal/control"
	"github.com/jetson-tools/jetmon/internal/sampler"
	"github.com/jetson-tools/jetmon/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("jetmon", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.FromFlags(args)
	if err != nil {
		return err
	}

	ctrl := control.New()

	// Control verbs are one-shot and skip the sampler entirely.
	switch {
	case cfg.Fan >= 0:
		return ctrl.SetFanSpeed(cfg.Fan)
	case cfg.PowerProfile >= 0:
		return ctrl.SetPowerProfile(cfg.PowerProfile)
	case cfg.ToggleBoost:
		return ctrl.ToggleBoost()
	}

	opts := []sampler.Option{}
	if cfg.HostStats {
		opts = append(opts, sampler.WithHostStats())
	}
	s := sampler.New(cfg.Interval, opts...)

	switch {
	case cfg.Stats:
		return printStats(s)
	case cfg.JSONStream:
		return streamStats(s)
	}
	return ui.Run(cfg, s, ctrl)
}

// printStats emits one snapshot as indented JSON. Rates need two counter
// reads, so the first (all-zero) observation is discarded.
func printStats(s *sampler.Sampler) error {
	s.Sample()
	sample := s.Sample()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sample)
}

// streamStats writes one JSON object per line per interval until
// interrupted.
func streamStats(s *sampler.Sampler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc := json.NewEncoder(os.Stdout)
	for sample := range s.Stream(ctx) {
		if err := enc.Encode(sample); err != nil {
			return fmt.Errorf("encode sample: %w", err)
		}
	}
	return nil
}
