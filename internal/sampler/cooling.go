package sampler

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sysfs"
)

// coolingCollector reads the thermal cooling devices. Duty cycle is the
// current state as a fraction of max_state; RPM is read where the driver
// exposes a fan input.
type coolingCollector struct {
	paths Paths
}

func (c *coolingCollector) collect() model.Cooling {
	cool := model.Cooling{Mode: model.FanUnknown}

	base := filepath.Join(c.paths.Sys, "class/thermal")
	entries, err := os.ReadDir(base)
	if err != nil {
		return cool
	}

	var dutySum float64
	var rpmSum, rpmCount uint64
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "cooling_device") {
			continue
		}
		idx, _ := strconv.Atoi(strings.TrimPrefix(name, "cooling_device"))
		dir := filepath.Join(base, name)

		cur := sysfs.ReadUint64(filepath.Join(dir, "cur_state"), 0)
		max := sysfs.ReadUint64(filepath.Join(dir, "max_state"), 0)
		var duty float64
		if max > 0 {
			duty = float64(cur) / float64(max) * 100.0
		}

		fan := model.Fan{
			Index: idx,
			Name:  sysfs.ReadString(filepath.Join(dir, "type"), name),
			Duty:  duty,
			RPM:   sysfs.ReadUint64(filepath.Join(dir, "fan1_input"), 0),
		}
		cool.Fans = append(cool.Fans, fan)

		dutySum += fan.Duty
		if fan.RPM > 0 {
			rpmSum += fan.RPM
			rpmCount++
		}
	}
	sort.Slice(cool.Fans, func(i, j int) bool { return cool.Fans[i].Index < cool.Fans[j].Index })

	if len(cool.Fans) > 0 {
		cool.Duty = dutySum / float64(len(cool.Fans))
	}
	if rpmCount > 0 {
		cool.RPM = rpmSum / rpmCount
	}
	cool.Mode = classifyFanMode(cool.Fans)
	return cool
}

// classifyFanMode guesses the drive mode from the duty-cycle pattern. The
// kernel gives no authoritative signal, so this is advisory only: all fans
// idle reads as off, all fans pinned at full duty reads as a manual
// override, anything in between is assumed to be the thermal governor.
func classifyFanMode(fans []model.Fan) model.FanMode {
	if len(fans) == 0 {
		return model.FanUnknown
	}
	allOff, allMax := true, true
	for _, f := range fans {
		if f.Duty != 0 {
			allOff = false
		}
		if f.Duty < 100 {
			allMax = false
		}
	}
	switch {
	case allOff:
		return model.FanOff
	case allMax:
		return model.FanManual
	default:
		return model.FanAutomatic
	}
}
