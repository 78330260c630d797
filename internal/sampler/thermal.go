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

// zoneVocabulary maps well-known thermal zone name fragments to promoted
// fields. Matching is case-insensitive substring, in this fixed priority
// order; the first zone matching a fragment wins that field. Zones matching
// nothing stay in the raw list only.
var zoneVocabulary = []struct {
	fragments []string
	assign    func(*model.Thermal, float64)
	assigned  func(*model.Thermal) bool
}{
	{[]string{"cpu"}, func(t *model.Thermal, v float64) { t.CPU = v }, func(t *model.Thermal) bool { return t.CPU != 0 }},
	{[]string{"gpu"}, func(t *model.Thermal, v float64) { t.GPU = v }, func(t *model.Thermal) bool { return t.GPU != 0 }},
	{[]string{"pmic"}, func(t *model.Thermal, v float64) { t.PMIC = v }, func(t *model.Thermal) bool { return t.PMIC != 0 }},
	{[]string{"board", "tboard"}, func(t *model.Thermal, v float64) { t.Board = v }, func(t *model.Thermal) bool { return t.Board != 0 }},
}

// thermalCollector reads every thermal_zone* entry and promotes the
// well-known zones to named fields.
type thermalCollector struct {
	paths Paths
}

func (c *thermalCollector) collect() model.Thermal {
	var th model.Thermal

	base := filepath.Join(c.paths.Sys, "class/thermal")
	entries, err := os.ReadDir(base)
	if err != nil {
		return th
	}

	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "thermal_zone") {
			continue
		}
		idx, _ := strconv.Atoi(strings.TrimPrefix(name, "thermal_zone"))
		dir := filepath.Join(base, name)

		th.Zones = append(th.Zones, model.ThermalZone{
			Index:     idx,
			Name:      sysfs.ReadString(filepath.Join(dir, "type"), "unknown"),
			TempC:     sysfs.ReadMilli(filepath.Join(dir, "temp"), 0),
			TripC:     sysfs.ReadMilli(filepath.Join(dir, "trip_point_0_temp"), 0),
			CriticalC: sysfs.ReadMilli(filepath.Join(dir, "crit_temp"), 0),
		})
	}
	sort.Slice(th.Zones, func(i, j int) bool { return th.Zones[i].Index < th.Zones[j].Index })

	for _, zone := range th.Zones {
		lower := strings.ToLower(zone.Name)
		for _, entry := range zoneVocabulary {
			if entry.assigned(&th) {
				continue
			}
			for _, frag := range entry.fragments {
				if strings.Contains(lower, frag) {
					entry.assign(&th, zone.TempC)
					break
				}
			}
		}
	}

	return th
}
