package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if cfg.Interval != time.Second {
		t.Errorf("Interval = %s, want 1s", cfg.Interval)
	}
	if !cfg.HostStats {
		t.Error("HostStats = false, want true")
	}
	if cfg.Fan != -1 || cfg.PowerProfile != -1 {
		t.Errorf("control verbs = %d/%d, want -1/-1", cfg.Fan, cfg.PowerProfile)
	}
}

func TestFromFlags(t *testing.T) {
	cfg, err := FromFlags([]string{"--interval", "250ms", "--stats", "--fan", "60"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %s, want 250ms", cfg.Interval)
	}
	if !cfg.Stats {
		t.Error("Stats = false")
	}
	if cfg.Fan != 60 {
		t.Errorf("Fan = %d, want 60", cfg.Fan)
	}
}

func TestFromFlagsRejectsNonPositiveInterval(t *testing.T) {
	if _, err := FromFlags([]string{"--interval", "0s"}); err == nil {
		t.Error("expected error for zero interval")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JETMON_INTERVAL", "2s")
	t.Setenv("JETMON_HOST_STATS", "0")

	cfg, err := FromFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interval != 2*time.Second {
		t.Errorf("Interval = %s, want 2s", cfg.Interval)
	}
	if cfg.HostStats {
		t.Error("HostStats = true, want false from env")
	}
}

func TestEnvBareSecondsInterval(t *testing.T) {
	t.Setenv("JETMON_INTERVAL", "3")

	cfg, err := FromFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("Interval = %s, want 3s", cfg.Interval)
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("JETMON_INTERVAL", "5s")

	cfg, err := FromFlags([]string{"--interval", "500ms"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Interval != 500*time.Millisecond {
		t.Errorf("Interval = %s, want flag to win", cfg.Interval)
	}
}
