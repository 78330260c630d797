package sampler

import (
	"bufio"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sysfs"
)

// gpuStrategy selects how the accelerator is sampled. It is probed once at
// collector construction and never re-evaluated, keeping the per-tick hot
// path branch-free.
type gpuStrategy int

const (
	gpuSysfs gpuStrategy = iota // legacy devfreq reads
	gpuSMI                      // nvidia-smi on newer firmware
)

// smiVersionThreshold is the L4T major release where the iGPU becomes
// visible to nvidia-smi.
const smiVersionThreshold = 36

const smiTimeout = 400 * time.Millisecond

// gpuCollector samples the accelerator through one of two mutually
// exclusive strategies fixed for the process lifetime.
type gpuCollector struct {
	paths    Paths
	strategy gpuStrategy
	devfreq  string // resolved devfreq node, sysfs strategy only
	runner   cmdRunner
}

// cmdRunner abstracts vendor tool invocation so tests can stub it.
type cmdRunner func(timeout time.Duration, name string, args ...string) (string, error)

func newGPUCollector(paths Paths, board model.Board, run cmdRunner) *gpuCollector {
	if run == nil {
		run = runCmd
	}
	c := &gpuCollector{paths: paths, runner: run}

	if l4tMajor(board.L4T) >= smiVersionThreshold && haveNvidiaSMI() {
		c.strategy = gpuSMI
		return c
	}

	c.strategy = gpuSysfs
	c.devfreq = c.findDevfreq()
	return c
}

func haveNvidiaSMI() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}

// findDevfreq locates the accelerator's frequency-scaling directory. Named
// nodes for known SoCs come first, the bare generic name last, and a glob
// over SoC-addressed nodes catches everything else.
func (c *gpuCollector) findDevfreq() string {
	base := filepath.Join(c.paths.Sys, "class/devfreq")
	if path, ok := sysfs.FirstExisting(
		filepath.Join(base, "gpu-gpc-0"),
		filepath.Join(base, "gpu-nvd-0"),
		filepath.Join(base, "gpu"),
	); ok {
		return path
	}
	if matches, _ := filepath.Glob(filepath.Join(base, "*.gpu")); len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func (c *gpuCollector) collect(thermal model.Thermal) model.GPU {
	if c.strategy == gpuSMI {
		return c.collectSMI()
	}
	return c.collectSysfs(thermal)
}

func (c *gpuCollector) collectSysfs(thermal model.Thermal) model.GPU {
	var gpu model.GPU
	gpu.Governor = "unknown"
	if c.devfreq == "" {
		gpu.TempC = thermal.GPU
		return gpu
	}

	gpu.FreqHz = sysfs.ReadUint64(filepath.Join(c.devfreq, "cur_freq"), 0)
	gpu.Governor = sysfs.ReadString(filepath.Join(c.devfreq, "governor"), "unknown")
	gpu.Usage = c.sysfsUsage()
	gpu.TempC = thermal.GPU
	return gpu
}

// sysfsUsage prefers the driver's load counter (0-255); when absent it
// falls back to a rough frequency-proportional estimate, which needs the
// max frequency read first.
func (c *gpuCollector) sysfsUsage() float64 {
	if load := sysfs.ReadInt64(filepath.Join(c.devfreq, "device/load"), -1); load >= 0 {
		pct := float64(load) / 255.0 * 100.0
		if pct > 100 {
			pct = 100
		}
		return pct
	}

	maxFreq := sysfs.ReadUint64(filepath.Join(c.devfreq, "max_freq"), 0)
	cur := sysfs.ReadUint64(filepath.Join(c.devfreq, "cur_freq"), 0)
	if maxFreq == 0 {
		return 0
	}
	pct := float64(cur) / float64(maxFreq) * 100.0
	if pct > 100 {
		pct = 100
	}
	return pct
}

func (c *gpuCollector) collectSMI() model.GPU {
	var gpu model.GPU
	gpu.Governor = "unknown"

	out, _ := c.runner(smiTimeout, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,memory.used,memory.total,temperature.gpu,clocks.gr",
		"--format=csv,noheader,nounits")
	if out != "" {
		sc := bufio.NewScanner(strings.NewReader(out))
		if sc.Scan() {
			parts := strings.Split(sc.Text(), ",")
			if len(parts) >= 6 {
				gpu.Name = strings.TrimSpace(parts[0])
				gpu.Usage = parseFloat(parts[1])
				gpu.MemUsedMB = parseFloat(parts[2])
				gpu.MemTotalMB = parseFloat(parts[3])
				gpu.TempC = parseFloat(parts[4])
				gpu.FreqHz = uint64(parseFloat(parts[5]) * 1e6) // MHz -> Hz
			}
		}
	}

	gpu.Processes = c.collectProcesses()
	return gpu
}

// collectProcesses parses one nvidia-smi pmon cycle. Header lines start
// with '#'; idle slots report '-' in the pid column.
func (c *gpuCollector) collectProcesses() []model.GPUProcess {
	out, err := c.runner(smiTimeout, "nvidia-smi", "pmon", "-c", "1")
	if err != nil || out == "" {
		return nil
	}

	var procs []model.GPUProcess
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "gpu") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[1] == "-" {
			continue
		}
		pid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		procs = append(procs, model.GPUProcess{
			PID:     pid,
			Name:    fields[len(fields)-1],
			Usage:   parseFloat(fields[3]),
			Command: line,
		})
	}
	return procs
}

func parseFloat(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func runCmd(timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}
