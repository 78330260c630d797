package sampler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sysfs"
)

// powerCollector reads the INA3221 current monitors exposed as IIO devices
// on the I2C bus. The scale factors are read before the raw counters they
// normalize; rails without a name file are skipped entirely.
type powerCollector struct {
	paths Paths
}

func (c *powerCollector) collect() model.Power {
	var pw model.Power

	base := filepath.Join(c.paths.Sys, "bus/i2c/devices")
	entries, err := os.ReadDir(base)
	if err != nil {
		return pw
	}

	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "iio:device") {
			continue
		}
		dir := filepath.Join(base, e.Name())

		name := sysfs.ReadString(filepath.Join(dir, "name"), "")
		if name == "" {
			continue
		}

		currentScale := float64(sysfs.ReadUint64(filepath.Join(dir, "in_current_scale"), 1))
		voltageScale := float64(sysfs.ReadUint64(filepath.Join(dir, "in_voltage_scale"), 1))

		currentMA := float64(sysfs.ReadUint64(filepath.Join(dir, "in_current_raw"), 0)) * currentScale / 1000.0
		voltageMV := float64(sysfs.ReadUint64(filepath.Join(dir, "in_voltage_raw"), 0)) * voltageScale / 1000.0

		pw.Rails = append(pw.Rails, model.PowerRail{
			Name:      name,
			CurrentMA: currentMA,
			VoltageMV: voltageMV,
			PowerMW:   currentMA * voltageMV / 1000.0,
		})
	}

	for _, r := range pw.Rails {
		pw.TotalW += r.PowerMW / 1000.0
	}
	return pw
}
