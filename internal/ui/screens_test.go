package ui

import (
	"testing"

	"github.com/jetson-tools/jetmon/internal/model"
)

func TestScreenForIndex(t *testing.T) {
	t.Parallel()
	cases := []struct {
		idx  int
		want Screen
		ok   bool
	}{
		{1, ScreenOverview, true},
		{5, ScreenPower, true},
		{8, ScreenInfo, true},
		{0, 0, false},
		{9, 0, false},
		{-3, 0, false},
	}
	for _, tc := range cases {
		got, ok := ScreenForIndex(tc.idx)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ScreenForIndex(%d) = %v,%v, want %v,%v", tc.idx, got, ok, tc.want, tc.ok)
		}
	}
}

func TestScreenNavigationWraps(t *testing.T) {
	t.Parallel()
	if got := ScreenInfo.Next(); got != ScreenOverview {
		t.Errorf("Next from last = %s", got.Name())
	}
	if got := ScreenOverview.Prev(); got != ScreenInfo {
		t.Errorf("Prev from first = %s", got.Name())
	}
	if got := ScreenCPU.Next(); got != ScreenGPU {
		t.Errorf("Next from CPU = %s", got.Name())
	}
}

func TestScreenNamesAreStable(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for i := 1; i <= ScreenCount; i++ {
		s, ok := ScreenForIndex(i)
		if !ok {
			t.Fatalf("index %d not a screen", i)
		}
		name := s.Name()
		if name == "Unknown" || seen[name] {
			t.Errorf("screen %d has bad or duplicate name %q", i, name)
		}
		seen[name] = true
		if s.Index() != i {
			t.Errorf("screen %q index = %d, want %d", name, s.Index(), i)
		}
	}
}

func TestControlCursorBounds(t *testing.T) {
	t.Parallel()
	var c controlState

	c.moveUp()
	if c.cursor != 0 {
		t.Errorf("cursor = %d after moveUp at top", c.cursor)
	}
	for i := 0; i < 10; i++ {
		c.moveDown()
	}
	if c.cursor != controlItems-1 {
		t.Errorf("cursor = %d, want %d", c.cursor, controlItems-1)
	}
}

func TestHandleSelectActions(t *testing.T) {
	t.Parallel()
	sample := model.Sample{
		Cooling: model.Cooling{Duty: 50},
		Profile: model.Profile{
			Current: 0,
			Models:  []model.ProfileModel{{ID: 0, Name: "MAXN"}, {ID: 1, Name: "15W"}},
		},
	}

	c := controlState{cursor: 0}
	if got := c.handleSelect(sample); got.Kind != ActionSetFan || got.Value != 75 {
		t.Errorf("fan action = %+v, want next duty step 75", got)
	}

	c.cursor = 1
	if got := c.handleSelect(sample); got.Kind != ActionToggleBoost {
		t.Errorf("boost action = %+v", got)
	}

	c.cursor = 2
	if got := c.handleSelect(sample); got.Kind != ActionSetProfile || got.Value != 1 {
		t.Errorf("profile action = %+v, want next model 1", got)
	}
}

func TestNextFanDutyWraps(t *testing.T) {
	t.Parallel()
	cases := []struct {
		current float64
		want    int
	}{
		{0, 25},
		{30, 50},
		{100, 0},
		{99.8, 0}, // rounding slack at the top step
	}
	for _, tc := range cases {
		if got := nextFanDuty(tc.current); got != tc.want {
			t.Errorf("nextFanDuty(%f) = %d, want %d", tc.current, got, tc.want)
		}
	}
}

func TestNextProfile(t *testing.T) {
	t.Parallel()
	models := []model.ProfileModel{{ID: 0, Name: "MAXN"}, {ID: 1, Name: "15W"}, {ID: 2, Name: "10W"}}

	p := model.Profile{Current: 2, Models: models}
	if got := nextProfile(p); got != 0 {
		t.Errorf("nextProfile from last = %d, want wrap to 0", got)
	}

	p.Current = -1
	if got := nextProfile(p); got != 0 {
		t.Errorf("nextProfile unknown current = %d, want first model", got)
	}

	if got := nextProfile(model.Profile{Current: 3}); got != 0 {
		t.Errorf("nextProfile no models = %d, want 0", got)
	}
}
