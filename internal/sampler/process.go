package sampler

import (
	"os"
	"path/filepath"

	"github.com/jetson-tools/jetmon/internal/model"
)

// processCollector counts live processes by enumerating the numeric
// directories in procfs.
type processCollector struct {
	paths Paths
}

func (c *processCollector) collect() model.Processes {
	var procs model.Processes

	entries, err := os.ReadDir(filepath.Join(c.paths.Proc))
	if err != nil {
		return procs
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if isNumeric(e.Name()) {
			procs.Total++
		}
	}
	return procs
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
