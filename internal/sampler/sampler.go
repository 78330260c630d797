// Package sampler turns kernel pseudo-file state into one immutable Sample
// per tick. Every collector is best-effort: missing hardware exposure
// points degrade to zero values and never fail the tick.
package sampler

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/jetson-tools/jetmon/internal/model"
)

// Paths holds the pseudo-filesystem roots. Tests point these at synthetic
// trees; production uses the kernel defaults.
type Paths struct {
	Proc string
	Sys  string
	Etc  string
}

// DefaultPaths returns the live kernel mount points.
func DefaultPaths() Paths {
	return Paths{Proc: "/proc", Sys: "/sys", Etc: "/etc"}
}

// HostInfo is the non-sampled host identity shown on the Info screen.
type HostInfo struct {
	Hostname      string
	OS            string
	Platform      string
	KernelVersion string
	KernelArch    string
	Uptime        time.Duration
}

// Sampler aggregates the domain collectors into Samples. The delta engine's
// stored counter snapshot is mutated across the read-then-replace sequence,
// so concurrent embedded callers are serialized by mu.
type Sampler struct {
	Interval time.Duration

	mu       sync.Mutex
	delta    deltaEngine
	cpu      cpuCollector
	memory   memoryCollector
	thermal  thermalCollector
	power    powerCollector
	cooling  coolingCollector
	board    boardCollector
	engines  engineCollector
	procs    processCollector
	gpu      *gpuCollector

	boardInfo model.Board // probed once; topology does not change at runtime
	hostStats bool
}

// Option configures a Sampler at construction.
type Option func(*options)

type options struct {
	paths     Paths
	hostStats bool
	runner    cmdRunner
}

// WithPaths overrides the pseudo-filesystem roots.
func WithPaths(p Paths) Option { return func(o *options) { o.paths = p } }

// WithHostStats enables gopsutil host-global metrics (load averages); off
// by default so synthetic-root runs stay fully hermetic.
func WithHostStats() Option { return func(o *options) { o.hostStats = true } }

// WithCommandRunner stubs vendor tool invocation.
func WithCommandRunner(r cmdRunner) Option { return func(o *options) { o.runner = r } }

func New(interval time.Duration, opts ...Option) *Sampler {
	o := options{paths: DefaultPaths()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sampler{
		Interval:  interval,
		cpu:       cpuCollector{paths: o.paths},
		memory:    memoryCollector{paths: o.paths},
		thermal:   thermalCollector{paths: o.paths},
		power:     powerCollector{paths: o.paths},
		cooling:   coolingCollector{paths: o.paths},
		board:     boardCollector{paths: o.paths},
		engines:   engineCollector{paths: o.paths},
		procs:     processCollector{paths: o.paths},
		hostStats: o.hostStats,
	}

	// The board probe decides the accelerator sourcing strategy, fixed for
	// the process lifetime.
	s.boardInfo = s.board.collect()
	s.gpu = newGPUCollector(o.paths, s.boardInfo, o.runner)
	return s
}

// Board returns the identity probed at construction.
func (s *Sampler) Board() model.Board { return s.boardInfo }

// Sample assembles one full snapshot. The counter read and the delta
// observation are adjacent so the measured interval stays close to the
// nominal tick; the remaining collectors run afterwards.
func (s *Sampler) Sample() model.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	usage := s.delta.observe(s.cpu.counters())

	sample := model.Sample{
		Timestamp: time.Now(),
		Interval:  s.Interval,
		Board:     s.boardInfo,
		CPU:       s.cpu.collect(usage),
		Memory:    s.memory.collect(),
		Thermal:   s.thermal.collect(),
		Power:     s.power.collect(),
		Cooling:   s.cooling.collect(),
		Engines:   s.engines.collect(),
		Boost:     s.board.boost(),
		Profile:   s.board.profile(),
		Processes: s.procs.collect(),
	}
	sample.GPU = s.gpu.collect(sample.Thermal)

	if s.hostStats {
		if avg, err := load.Avg(); err == nil {
			sample.CPU.Load1 = avg.Load1
			sample.CPU.Load5 = avg.Load5
		}
	}
	return sample
}

// Host returns host identity for the Info screen; best-effort.
func (s *Sampler) Host() HostInfo {
	if !s.hostStats {
		return HostInfo{}
	}
	info, err := host.Info()
	if err != nil {
		return HostInfo{}
	}
	return HostInfo{
		Hostname:      info.Hostname,
		OS:            info.OS,
		Platform:      info.Platform + " " + info.PlatformVersion,
		KernelVersion: info.KernelVersion,
		KernelArch:    info.KernelArch,
		Uptime:        time.Duration(info.Uptime) * time.Second,
	}
}

// Stream emits one Sample per interval until ctx is done. Used by the
// NDJSON streaming mode; the TUI drives sampling from its own tick instead.
func (s *Sampler) Stream(ctx context.Context) <-chan model.Sample {
	ch := make(chan model.Sample)
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		defer close(ch)
		for {
			select {
			case <-ticker.C:
				select {
				case ch <- s.Sample():
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
