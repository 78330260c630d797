package ui

import "github.com/jetson-tools/jetmon/internal/model"

// Screen is one of the fixed dashboard views, totally ordered by index for
// next/previous navigation. The set is closed; there is no dynamic
// registration.
type Screen int

const (
	ScreenOverview Screen = iota + 1
	ScreenCPU
	ScreenGPU
	ScreenMemory
	ScreenPower
	ScreenTemperature
	ScreenControl
	ScreenInfo
)

// ScreenCount is the number of screens; indices run 1..ScreenCount.
const ScreenCount = 8

// ScreenForIndex maps a 1-based index to a screen. Out-of-range indices
// report false so callers can treat them as a no-op.
func ScreenForIndex(idx int) (Screen, bool) {
	if idx < 1 || idx > ScreenCount {
		return 0, false
	}
	return Screen(idx), true
}

// Index returns the screen's 1-based position.
func (s Screen) Index() int { return int(s) }

// Next wraps from the last screen back to the first.
func (s Screen) Next() Screen {
	if s >= ScreenCount {
		return ScreenOverview
	}
	return s + 1
}

// Prev wraps from the first screen back to the last.
func (s Screen) Prev() Screen {
	if s <= ScreenOverview {
		return Screen(ScreenCount)
	}
	return s - 1
}

func (s Screen) Name() string {
	switch s {
	case ScreenOverview:
		return "Overview"
	case ScreenCPU:
		return "CPU"
	case ScreenGPU:
		return "GPU"
	case ScreenMemory:
		return "Memory"
	case ScreenPower:
		return "Power"
	case ScreenTemperature:
		return "Temperature"
	case ScreenControl:
		return "Control"
	case ScreenInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// ActionKind tags a control action chosen on the Control screen. Actions
// are dispatched to the control surface, never executed by the state
// machine itself.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionSetFan
	ActionToggleBoost
	ActionSetProfile
)

// Action carries one control request; Value is the fan duty or profile id.
type Action struct {
	Kind  ActionKind
	Value int
}

// fanDutySteps are the duty cycles the Control screen cycles through.
var fanDutySteps = []int{0, 25, 50, 75, 100}

const controlItems = 3 // fan, boost, profile

// controlState is the Control screen's cursor over its fixed item list.
type controlState struct {
	cursor int
}

func (c *controlState) moveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *controlState) moveDown() {
	if c.cursor < controlItems-1 {
		c.cursor++
	}
}

// handleSelect maps the cursor position and the latest sample to a control
// action: the fan item advances to the next duty step, the boost item
// toggles, the profile item advances to the next available model.
func (c *controlState) handleSelect(s model.Sample) Action {
	switch c.cursor {
	case 0:
		return Action{Kind: ActionSetFan, Value: nextFanDuty(s.Cooling.Duty)}
	case 1:
		return Action{Kind: ActionToggleBoost}
	case 2:
		return Action{Kind: ActionSetProfile, Value: nextProfile(s.Profile)}
	default:
		return Action{Kind: ActionNone}
	}
}

func nextFanDuty(current float64) int {
	for _, step := range fanDutySteps {
		if float64(step) > current+0.5 {
			return step
		}
	}
	return fanDutySteps[0]
}

func nextProfile(p model.Profile) int {
	if len(p.Models) == 0 {
		return 0
	}
	for i, m := range p.Models {
		if m.ID == p.Current {
			return p.Models[(i+1)%len(p.Models)].ID
		}
	}
	return p.Models[0].ID
}
