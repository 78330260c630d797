package sampler

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sysfs"
)

// cpuCollector reads per-core cumulative counters from /proc/stat and the
// cpufreq state from sysfs. Usage percentages are derived by the delta
// engine, never from a single raw reading.
type cpuCollector struct {
	paths Paths
	tick  uint64
}

// counters reads the current per-core counter snapshot. Cores appear in
// /proc/stat order; the aggregate "cpu" line is skipped.
func (c *cpuCollector) counters() counterSnapshot {
	c.tick++
	snap := counterSnapshot{tick: c.tick}

	f, err := os.Open(filepath.Join(c.paths.Proc, "stat"))
	if err != nil {
		return snap
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 5 || !strings.HasPrefix(fields[0], "cpu") || fields[0] == "cpu" {
			continue
		}
		var cc coreCounters
		dst := []*uint64{&cc.user, &cc.nice, &cc.system, &cc.idle, &cc.iowait, &cc.irq, &cc.softirq}
		for i, p := range dst {
			if i+1 >= len(fields) {
				break
			}
			v, _ := strconv.ParseUint(fields[i+1], 10, 64)
			*p = v
		}
		snap.cores = append(snap.cores, cc)
	}
	return snap
}

// collect assembles the CPU reading from the per-core usage slice the delta
// engine produced for this tick.
func (c *cpuCollector) collect(usage []float64) model.CPU {
	cpu := model.CPU{Cores: make([]model.CPUCore, len(usage))}

	var sum float64
	for i := range usage {
		base := filepath.Join(c.paths.Sys, "devices/system/cpu", fmt.Sprintf("cpu%d", i), "cpufreq")
		cpu.Cores[i] = model.CPUCore{
			Index:    i,
			Usage:    usage[i],
			FreqKHz:  sysfs.ReadUint64(filepath.Join(base, "scaling_cur_freq"), 0),
			Governor: sysfs.ReadString(filepath.Join(base, "scaling_governor"), "unknown"),
		}
		sum += usage[i]
	}
	if len(usage) > 0 {
		cpu.Usage = sum / float64(len(usage))
	}
	return cpu
}
