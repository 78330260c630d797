package sampler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sysfs"
)

const unknown = "Unknown"

// compatibleModels maps device-tree compatible fragments to marketing
// names, consulted only when the release file and device-tree model node
// are both silent.
var compatibleModels = []struct{ fragment, model string }{
	{"p3772", "Jetson Xavier NX"},
	{"p3668", "Jetson TX2"},
	{"p3509", "Jetson Nano"},
	{"p3701", "Jetson AGX Xavier"},
	{"p2888", "Jetson TX1"},
	{"p3737", "Jetson AGX Orin"},
	{"p3767", "Jetson Orin Nano"},
}

// l4tToJetPack maps L4T release prefixes to JetPack labels. Lookup is
// longest-prefix: "35.4.1" matches the "35.4" entry. No match yields
// Unknown rather than a guess.
var l4tToJetPack = []struct{ prefix, label string }{
	{"36.4", "JetPack 6.1"},
	{"36.3", "JetPack 6.0"},
	{"36.2", "JetPack 6.0 DP"},
	{"35.6", "JetPack 5.1.4"},
	{"35.5", "JetPack 5.1.3"},
	{"35.4", "JetPack 5.1.2"},
	{"35.3", "JetPack 5.1.1"},
	{"35.2", "JetPack 5.1"},
	{"35.1", "JetPack 5.0.2"},
	{"34.1", "JetPack 5.0"},
	{"32.7", "JetPack 4.6.x"},
	{"32.6", "JetPack 4.6"},
	{"32.5", "JetPack 4.5.x"},
}

// boardCollector merges board identity from a fixed precedence of sources:
// the L4T release file first, then device-tree nodes for any field still
// empty, then compatible-string heuristics for the model.
type boardCollector struct {
	paths Paths
}

func (c *boardCollector) collect() model.Board {
	board := model.Board{Model: unknown, JetPack: unknown, L4T: unknown, Serial: unknown}

	if content, err := os.ReadFile(filepath.Join(c.paths.Etc, "nv_tegra_release")); err == nil {
		for _, line := range strings.Split(string(content), "\n") {
			key, val, ok := strings.Cut(line, "=")
			if !ok {
				continue
			}
			val = strings.TrimSpace(val)
			switch strings.TrimSpace(key) {
			case "BOARD":
				board.Model = val
			case "JETPACK_VERSION":
				board.JetPack = val
			case "L4T_VERSION":
				board.L4T = val
			case "SERIAL_NUMBER":
				board.Serial = val
			}
		}
	}

	dtBase := filepath.Join(c.paths.Sys, "firmware/devicetree/base")
	if board.Model == unknown {
		board.Model = sysfs.ReadDeviceTreeString(filepath.Join(dtBase, "model"), unknown)
	}
	if board.Serial == unknown {
		board.Serial = sysfs.ReadDeviceTreeString(filepath.Join(dtBase, "serial-number"), unknown)
	}
	if board.Model == unknown {
		board.Model = modelFromCompatible(filepath.Join(dtBase, "compatible"))
	}
	if board.JetPack == unknown && board.L4T != unknown {
		board.JetPack = jetPackLabel(board.L4T)
	}

	return board
}

// modelFromCompatible scans the NUL-separated device-tree compatible list
// for known hardware identifiers.
func modelFromCompatible(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return unknown
	}
	for _, compat := range strings.Split(string(content), "\x00") {
		if compat == "" {
			continue
		}
		for _, entry := range compatibleModels {
			if strings.Contains(compat, entry.fragment) {
				return entry.model
			}
		}
	}
	return unknown
}

// jetPackLabel derives a human release label from a raw L4T version by
// nearest-prefix matching against the static table.
func jetPackLabel(l4t string) string {
	best := ""
	label := unknown
	for _, entry := range l4tToJetPack {
		if strings.HasPrefix(l4t, entry.prefix) && len(entry.prefix) > len(best) {
			best = entry.prefix
			label = entry.label
		}
	}
	return label
}

// l4tMajor extracts the major release number from an L4T version string;
// zero when the version is absent or malformed.
func l4tMajor(l4t string) int {
	head, _, _ := strings.Cut(l4t, ".")
	head = strings.TrimPrefix(strings.TrimSpace(head), "R")
	n := 0
	for _, r := range head {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// boost reads the jetson_clocks state from the device-tree boost node.
func (c *boardCollector) boost() model.Boost {
	path := filepath.Join(c.paths.Sys, "devices/soc0/firmware/devicetree/base/nvidia,boost")
	mode := sysfs.ReadDeviceTreeString(path, "")
	return model.Boost{
		Enabled: mode != "" && !strings.Contains(mode, "0"),
		Mode:    mode,
	}
}

// profile reads the current nvpmodel id from the device tree and the model
// list from nvpmodel.conf.
func (c *boardCollector) profile() model.Profile {
	prof := model.Profile{Current: -1}

	idPath := filepath.Join(c.paths.Sys, "devices/soc0/firmware/devicetree/base/nvidia,pmodel")
	prof.Current = int(sysfs.ReadInt64(idPath, -1))

	content, err := os.ReadFile(filepath.Join(c.paths.Etc, "nvpmodel.conf"))
	if err != nil {
		return prof
	}
	prof.Models = parseProfileModels(string(content))
	prof.Available = len(prof.Models) > 0
	return prof
}

// parseProfileModels extracts the power mode definitions from
// nvpmodel.conf. Each mode is introduced by a "< POWER_MODEL ID=n NAME=x >"
// header line.
func parseProfileModels(content string) []model.ProfileModel {
	var models []model.ProfileModel
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "<") || !strings.Contains(line, "POWER_MODEL") {
			continue
		}
		m := model.ProfileModel{ID: -1}
		for _, field := range strings.Fields(strings.Trim(line, "<> ")) {
			key, val, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			switch key {
			case "ID":
				id := 0
				ok := len(val) > 0
				for _, r := range val {
					if r < '0' || r > '9' {
						ok = false
						break
					}
					id = id*10 + int(r-'0')
				}
				if ok {
					m.ID = id
				}
			case "NAME":
				m.Name = val
			}
		}
		if m.ID >= 0 && m.Name != "" {
			models = append(models, m)
		}
	}
	return models
}
