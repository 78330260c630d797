package sampler

// coreCounters holds one core's cumulative scheduler counters from
// /proc/stat, in USER_HZ ticks since boot.
type coreCounters struct {
	user, nice, system, idle, iowait, irq, softirq uint64
}

func (c coreCounters) busy() uint64 {
	return c.user + c.nice + c.system + c.irq + c.softirq
}

func (c coreCounters) total() uint64 {
	return c.busy() + c.idle + c.iowait
}

// counterSnapshot is one instant's per-core counter reading. The tick
// ordinal orders snapshots; wall time is irrelevant to the delta.
type counterSnapshot struct {
	tick  uint64
	cores []coreCounters
}

// deltaEngine turns consecutive cumulative counter snapshots into
// instantaneous per-core usage percentages. It owns exactly one prior
// snapshot, replaced wholesale on every observation.
type deltaEngine struct {
	prev   counterSnapshot
	primed bool
}

// observe computes per-core usage from the delta against the stored
// snapshot, then unconditionally replaces it with cur. The first
// observation, and any observation whose core count differs from the stored
// snapshot's, reports zero usage for all cores: mixing core indices across a
// topology change would silently produce plausible but wrong percentages,
// so the new topology becomes a fresh baseline instead.
func (e *deltaEngine) observe(cur counterSnapshot) []float64 {
	usage := make([]float64, len(cur.cores))

	if e.primed && len(e.prev.cores) == len(cur.cores) {
		for i, now := range cur.cores {
			prev := e.prev.cores[i]
			dTotal := int64(now.total()) - int64(prev.total())
			dBusy := int64(now.busy()) - int64(prev.busy())
			if dTotal <= 0 {
				continue
			}
			pct := 100 * float64(dBusy) / float64(dTotal)
			if pct < 0 {
				pct = 0
			}
			if pct > 100 {
				pct = 100
			}
			usage[i] = pct
		}
	}

	e.prev = cur
	e.primed = true
	return usage
}
