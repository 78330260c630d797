// Package config carries runtime options for jetmon. Precedence, lowest to
// highest: built-in defaults, the optional YAML config file, environment
// variables, command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
type Config struct {
	Interval  time.Duration `yaml:"interval"`
	HostStats bool          `yaml:"host_stats"`

	// One-shot modes; mutually exclusive with the TUI.
	Stats      bool `yaml:"-"`
	JSONStream bool `yaml:"-"`

	// Control verbs; -1 means not requested.
	Fan          int  `yaml:"-"`
	PowerProfile int  `yaml:"-"`
	ToggleBoost  bool `yaml:"-"`
}

func Default() Config {
	return Config{
		Interval:     time.Second,
		HostStats:    true,
		Fan:          -1,
		PowerProfile: -1,
	}
}

// FromFlags builds the configuration from the default file, environment,
// and the given argument list.
func FromFlags(args []string) (Config, error) {
	cfg := Default()
	loadFile(&cfg, defaultConfigPath())
	loadEnv(&cfg)

	fs := flag.NewFlagSet("jetmon", flag.ContinueOnError)
	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "sampling interval")
	fs.BoolVar(&cfg.Stats, "stats", false, "print one JSON snapshot and exit")
	fs.BoolVar(&cfg.JSONStream, "json-stream", false, "stream NDJSON snapshots until interrupted")
	fs.IntVar(&cfg.Fan, "fan", cfg.Fan, "set fan duty cycle 0-100 and exit")
	fs.IntVar(&cfg.PowerProfile, "nvpmodel", cfg.PowerProfile, "set nvpmodel power profile 0-15 and exit")
	fs.BoolVar(&cfg.ToggleBoost, "jetson-clocks", false, "toggle jetson_clocks and exit")
	fs.BoolVar(&cfg.HostStats, "host-stats", cfg.HostStats, "include load averages and host identity")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Interval <= 0 {
		return cfg, fmt.Errorf("interval must be positive, got %s", cfg.Interval)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jetmon", "config.yaml")
}

// loadFile merges the YAML config file when present; a missing file is the
// common case and is silently ignored.
func loadFile(cfg *Config, path string) {
	if path == "" {
		return
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var fileCfg struct {
		Interval  string `yaml:"interval"`
		HostStats *bool  `yaml:"host_stats"`
	}
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return
	}
	if fileCfg.Interval != "" {
		if d, err := time.ParseDuration(fileCfg.Interval); err == nil && d > 0 {
			cfg.Interval = d
		}
	}
	if fileCfg.HostStats != nil {
		cfg.HostStats = *fileCfg.HostStats
	}
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("JETMON_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Interval = d
		} else if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
			cfg.Interval = d
		}
	}
	if os.Getenv("JETMON_HOST_STATS") == "0" {
		cfg.HostStats = false
	}
}
