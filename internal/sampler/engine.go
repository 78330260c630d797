package sampler

import (
	"path/filepath"

	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sysfs"
)

// engineCollector reads the Tegra fixed-function accelerator blocks. The
// frequency-scaled engines (APE, DLA) live under devfreq; the codec blocks
// only expose a usage counter under /sys/kernel.
type engineCollector struct {
	paths Paths
}

func (c *engineCollector) collect() model.Engines {
	return model.Engines{
		APE:   c.devfreqEngine("ape"),
		DLA0:  c.devfreqEngine("dla0"),
		DLA1:  c.devfreqEngine("dla1"),
		NVDEC: c.usageEngine("nvdec"),
		NVENC: c.usageEngine("nvenc"),
		NVJPG: c.usageEngine("nvjpg"),
	}
}

func (c *engineCollector) devfreqEngine(name string) model.Engine {
	dir := filepath.Join(c.paths.Sys, "class/devfreq", name)
	if !sysfs.Exists(dir) {
		return model.Engine{Name: name}
	}
	return model.Engine{
		Name:    name,
		Enabled: sysfs.Exists(filepath.Join(dir, "available_frequencies")),
		ClockHz: sysfs.ReadUint64(filepath.Join(dir, "cur_freq"), 0),
	}
}

func (c *engineCollector) usageEngine(name string) model.Engine {
	usage := sysfs.ReadUint64(filepath.Join(c.paths.Sys, "kernel", name+"_usage"), 0)
	return model.Engine{
		Name:    name,
		Enabled: usage > 0,
		Usage:   usage,
	}
}
