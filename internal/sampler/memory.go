package sampler

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetson-tools/jetmon/internal/model"
)

// memoryCollector parses /proc/meminfo, including the Jetson-specific IRAM
// carveout keys that generic meminfo readers ignore.
type memoryCollector struct {
	paths Paths
}

func (c *memoryCollector) collect() model.Memory {
	var mem model.Memory

	kv := make(map[string]uint64)
	f, err := os.Open(filepath.Join(c.paths.Proc, "meminfo"))
	if err != nil {
		return mem
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), " kB"))
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			continue
		}
		kv[strings.TrimSpace(key)] = n * 1024 // kB -> bytes
	}

	mem.RAMTotal = kv["MemTotal"]
	mem.RAMCached = kv["Cached"]
	if used := kv["MemTotal"] - min64(kv["MemTotal"], kv["MemFree"]+kv["Buffers"]+kv["Cached"]); used > 0 {
		mem.RAMUsed = used
	}

	mem.SwapTotal = kv["SwapTotal"]
	mem.SwapCached = kv["SwapCached"]
	if kv["SwapTotal"] >= kv["SwapFree"] {
		mem.SwapUsed = kv["SwapTotal"] - kv["SwapFree"]
	}

	mem.IRAMTotal = kv["IramTotal"]
	mem.IRAMLfb = kv["IramLfb"]
	if free := kv["IramFree"] + kv["IramLfb"]; mem.IRAMTotal >= free {
		mem.IRAMUsed = mem.IRAMTotal - free
	}

	return mem
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
