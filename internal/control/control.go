// Package control performs the privileged one-shot actions: fan duty,
// nvpmodel power profile, and jetson_clocks boost. Inputs are validated
// before any write; a validation failure is distinct from a write or exec
// failure and nothing is retried automatically.
package control

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrOutOfRange marks a rejected input; no write was attempted.
var ErrOutOfRange = errors.New("value out of range")

const execTimeout = 10 * time.Second

// Surface applies control actions. The TUI's Control screen and the CLI
// verbs both dispatch through it.
type Surface interface {
	SetFanSpeed(pct int) error
	SetPowerProfile(id int) error
	ToggleBoost() error
}

// Controller writes to the live sysfs tree and invokes the NVIDIA helper
// binaries.
type Controller struct {
	SysRoot string // defaults to /sys

	// run is swappable for tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func New() *Controller {
	return &Controller{
		SysRoot: "/sys",
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// SetFanSpeed drives every cooling device to the requested duty cycle.
// Requires root; a permission failure surfaces the underlying cause.
func (c *Controller) SetFanSpeed(pct int) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("fan duty %d%%: %w (want 0-100)", pct, ErrOutOfRange)
	}

	base := filepath.Join(c.SysRoot, "class/thermal")
	devices, err := filepath.Glob(filepath.Join(base, "cooling_device*"))
	if err != nil || len(devices) == 0 {
		return fmt.Errorf("no cooling devices under %s", base)
	}

	for _, dir := range devices {
		maxState := readUint(filepath.Join(dir, "max_state"))
		if maxState == 0 {
			continue
		}
		target := (uint64(pct)*maxState + 50) / 100
		if err := os.WriteFile(filepath.Join(dir, "cur_state"), []byte(strconv.FormatUint(target, 10)), 0o644); err != nil {
			return fmt.Errorf("set %s duty: %w", filepath.Base(dir), err)
		}

		// PWM-capable fans also take a direct 0-255 duty value.
		pwmPath := filepath.Join(dir, "cur_pwm")
		if _, statErr := os.Stat(pwmPath); statErr == nil {
			pwm := pct * 255 / 100
			if err := os.WriteFile(pwmPath, []byte(strconv.Itoa(pwm)), 0o644); err != nil {
				return fmt.Errorf("set %s pwm: %w", filepath.Base(dir), err)
			}
		}
	}
	return nil
}

// SetPowerProfile switches the nvpmodel power profile via the vendor
// helper.
func (c *Controller) SetPowerProfile(id int) error {
	if id < 0 || id > 15 {
		return fmt.Errorf("power profile %d: %w (want 0-15)", id, ErrOutOfRange)
	}

	ctx, cancel := context.WithTimeout(context.Background(), execTimeout)
	defer cancel()
	out, err := c.run(ctx, "nvpmodel", "-m", strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("nvpmodel -m %d: %w: %s", id, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ToggleBoost runs jetson_clocks, which flips the max-clocks state.
func (c *Controller) ToggleBoost() error {
	ctx, cancel := context.WithTimeout(context.Background(), execTimeout)
	defer cancel()
	out, err := c.run(ctx, "jetson_clocks")
	if err != nil {
		return fmt.Errorf("jetson_clocks: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func readUint(path string) uint64 {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	v, _ := strconv.ParseUint(strings.TrimSpace(string(b)), 10, 64)
	return v
}
