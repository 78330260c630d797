package sampler

import (
	"path/filepath"
	"testing"
)

func TestEngineCollect(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	ape := filepath.Join(paths.Sys, "class/devfreq/ape")
	writeFile(t, filepath.Join(ape, "available_frequencies"), "150000000 300000000\n")
	writeFile(t, filepath.Join(ape, "cur_freq"), "300000000\n")
	writeFile(t, filepath.Join(paths.Sys, "kernel/nvdec_usage"), "42\n")

	c := engineCollector{paths: paths}
	engines := c.collect()

	if !engines.APE.Enabled {
		t.Error("APE not enabled")
	}
	if engines.APE.ClockHz != 300000000 {
		t.Errorf("APE clock = %d", engines.APE.ClockHz)
	}
	if engines.DLA0.Enabled {
		t.Error("DLA0 enabled without hardware")
	}
	if engines.NVDEC.Usage != 42 || !engines.NVDEC.Enabled {
		t.Errorf("NVDEC = %+v", engines.NVDEC)
	}
	if engines.NVENC.Enabled {
		t.Error("NVENC enabled without usage")
	}
}

func TestProcessCount(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	for _, dir := range []string{"1", "42", "31337", "sys", "irq"} {
		writeFile(t, filepath.Join(paths.Proc, dir, "stat"), "")
	}

	c := processCollector{paths: paths}
	procs := c.collect()
	if procs.Total != 3 {
		t.Errorf("Total = %d, want 3", procs.Total)
	}
}
