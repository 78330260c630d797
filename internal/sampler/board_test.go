package sampler

import (
	"path/filepath"
	"testing"
)

func TestBoardReleaseFileWins(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	writeFile(t, filepath.Join(paths.Etc, "nv_tegra_release"),
		"# R36 (release), REVISION: 4.0\nBOARD=Jetson Orin Nano\nJETPACK_VERSION=6.1\nL4T_VERSION=36.4.0\nSERIAL_NUMBER=142211223344\n")
	writeFile(t, filepath.Join(paths.Sys, "firmware/devicetree/base/model"),
		"should not be used\x00")

	c := boardCollector{paths: paths}
	board := c.collect()

	if board.Model != "Jetson Orin Nano" {
		t.Errorf("Model = %q", board.Model)
	}
	if board.JetPack != "6.1" {
		t.Errorf("JetPack = %q", board.JetPack)
	}
	if board.L4T != "36.4.0" {
		t.Errorf("L4T = %q", board.L4T)
	}
	if board.Serial != "142211223344" {
		t.Errorf("Serial = %q", board.Serial)
	}
}

func TestBoardDeviceTreeFallback(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	dt := filepath.Join(paths.Sys, "firmware/devicetree/base")
	writeFile(t, filepath.Join(dt, "model"), "NVIDIA Jetson Xavier NX Developer Kit\x00")
	writeFile(t, filepath.Join(dt, "serial-number"), "0425019054321\x00")

	c := boardCollector{paths: paths}
	board := c.collect()

	if board.Model != "NVIDIA Jetson Xavier NX Developer Kit" {
		t.Errorf("Model = %q", board.Model)
	}
	if board.Serial != "0425019054321" {
		t.Errorf("Serial = %q", board.Serial)
	}
	if board.JetPack != "Unknown" {
		t.Errorf("JetPack = %q, want Unknown", board.JetPack)
	}
}

func TestBoardCompatibleHeuristic(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	writeFile(t, filepath.Join(paths.Sys, "firmware/devicetree/base/compatible"),
		"nvidia,p3767-0003+p3768-0000\x00nvidia,tegra234\x00")

	c := boardCollector{paths: paths}
	board := c.collect()

	if board.Model != "Jetson Orin Nano" {
		t.Errorf("Model = %q, want Jetson Orin Nano", board.Model)
	}
}

func TestBoardEmptyTree(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	c := boardCollector{paths: paths}
	board := c.collect()
	if board.Model != "Unknown" || board.JetPack != "Unknown" || board.L4T != "Unknown" || board.Serial != "Unknown" {
		t.Errorf("empty tree board = %+v, want all Unknown", board)
	}
}

func TestJetPackLabel(t *testing.T) {
	t.Parallel()
	cases := []struct{ l4t, want string }{
		{"36.4.0", "JetPack 6.1"},
		{"35.4.1", "JetPack 5.1.2"},
		{"32.7.4", "JetPack 4.6.x"},
		{"31.0", "Unknown"},
		{"", "Unknown"},
	}
	for _, tc := range cases {
		if got := jetPackLabel(tc.l4t); got != tc.want {
			t.Errorf("jetPackLabel(%q) = %q, want %q", tc.l4t, got, tc.want)
		}
	}
}

func TestL4TMajor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		l4t  string
		want int
	}{
		{"36.4.0", 36},
		{"R32.7.4", 32},
		{"Unknown", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := l4tMajor(tc.l4t); got != tc.want {
			t.Errorf("l4tMajor(%q) = %d, want %d", tc.l4t, got, tc.want)
		}
	}
}

func TestParseProfileModels(t *testing.T) {
	t.Parallel()
	conf := `# nvpmodel configuration
< PARAM TYPE=FILE NAME=CPU_ONLINE >
CORE_0 /sys/devices/system/cpu/cpu0/online

< POWER_MODEL ID=0 NAME=MAXN >
CPU_ONLINE CORE_0 1

< POWER_MODEL ID=1 NAME=15W >
CPU_ONLINE CORE_0 1

< PM_CONFIG DEFAULT=0 >
`
	models := parseProfileModels(conf)
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2", len(models))
	}
	if models[0].ID != 0 || models[0].Name != "MAXN" {
		t.Errorf("model[0] = %+v", models[0])
	}
	if models[1].ID != 1 || models[1].Name != "15W" {
		t.Errorf("model[1] = %+v", models[1])
	}
}

func TestProfileUnreadableIsMinusOne(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	c := boardCollector{paths: paths}
	prof := c.profile()
	if prof.Current != -1 {
		t.Errorf("Current = %d, want -1", prof.Current)
	}
	if prof.Available {
		t.Error("Available = true, want false")
	}
}
