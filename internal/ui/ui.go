// Package ui is the interactive dashboard. A single Bubble Tea update loop
// owns all mutable state; sampling, key handling, and control dispatch all
// flow through it as messages, so no lock is needed anywhere in the
// package.
package ui

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jetson-tools/jetmon/internal/config"
	"github.com/jetson-tools/jetmon/internal/control"
	"github.com/jetson-tools/jetmon/internal/model"
	"github.com/jetson-tools/jetmon/internal/sampler"
)

// historyPoints bounds the per-metric graph buffers.
const historyPoints = 120

// sampleSource is the slice of the sampler the dashboard needs. Tests
// substitute a stub.
type sampleSource interface {
	Sample() model.Sample
	Host() sampler.HostInfo
}

// Model is the dashboard state machine.
type Model struct {
	cfg     config.Config
	src     sampleSource
	surface control.Surface

	screen  Screen
	control controlState
	latest  model.Sample
	host    sampler.HostInfo

	cpuHist  []float64
	gpuHist  []float64
	tempHist []float64

	lastTick time.Time
	status   string // last control action outcome

	fatal        error
	teardownOnce sync.Once
	teardown     func()

	width  int
	height int
}

// NewModel builds a dashboard over the given sampler and control surface.
func NewModel(cfg config.Config, src sampleSource, surface control.Surface) *Model {
	return &Model{
		cfg:      cfg,
		src:      src,
		surface:  surface,
		screen:   ScreenOverview,
		latest:   model.Zero(),
		teardown: func() {},
		width:    120,
		height:   40,
	}
}

// Messages
type (
	tickMsg      time.Time
	setScreenMsg Screen
	actionDone   struct {
		action Action
		err    error
	}
	fatalMsg struct{ err error }
)

// nextTickCmd schedules the next sample for interval minus the time already
// spent since the last tick, floored at zero, so slow samples do not let
// the effective rate drift below the configured one.
func (m *Model) nextTickCmd() tea.Cmd {
	wait := m.cfg.Interval - time.Since(m.lastTick)
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.lastTick = time.Now()
	m.host = m.src.Host()
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case setScreenMsg:
		if s, ok := ScreenForIndex(int(msg)); ok {
			m.screen = s
		}

	case tickMsg:
		m.lastTick = time.Now()
		sample, err := m.safeSample()
		if err != nil {
			return m, func() tea.Msg { return fatalMsg{err: err} }
		}
		m.latest = sample
		m.cpuHist = pushHistory(m.cpuHist, sample.CPU.Usage)
		m.gpuHist = pushHistory(m.gpuHist, sample.GPU.Usage)
		m.tempHist = pushHistory(m.tempHist, sample.Thermal.CPU)
		return m, m.nextTickCmd()

	case actionDone:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", actionLabel(msg.action), msg.err)
		} else {
			m.status = fmt.Sprintf("%s ok", actionLabel(msg.action))
		}

	case fatalMsg:
		m.fatal = msg.err
		m.runTeardown()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.runTeardown()
		return m, tea.Quit

	case "1", "2", "3", "4", "5", "6", "7", "8":
		idx := int(key[0] - '0')
		return m, func() tea.Msg { return setScreenMsg(idx) }

	case "left", "h":
		m.screen = m.screen.Prev()
	case "right", "l", "tab":
		m.screen = m.screen.Next()

	case "up", "k":
		if m.screen == ScreenControl {
			m.control.moveUp()
		}
	case "down", "j":
		if m.screen == ScreenControl {
			m.control.moveDown()
		}

	case "enter", " ":
		if m.screen == ScreenControl && m.surface != nil {
			action := m.control.handleSelect(m.latest)
			if action.Kind != ActionNone {
				m.status = fmt.Sprintf("%s ...", actionLabel(action))
				return m, m.dispatchCmd(action)
			}
		}
	}
	return m, nil
}

// safeSample isolates the update loop from collector panics; a panicking
// tick becomes a fatal error instead of a corrupted terminal.
func (m *Model) safeSample() (sample model.Sample, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sample tick panicked: %v", r)
		}
	}()
	return m.src.Sample(), nil
}

// dispatchCmd runs the control action off the update loop so a slow
// nvpmodel invocation does not freeze rendering.
func (m *Model) dispatchCmd(action Action) tea.Cmd {
	surface := m.surface
	return func() tea.Msg {
		var err error
		switch action.Kind {
		case ActionSetFan:
			err = surface.SetFanSpeed(action.Value)
		case ActionToggleBoost:
			err = surface.ToggleBoost()
		case ActionSetProfile:
			err = surface.SetPowerProfile(action.Value)
		}
		return actionDone{action: action, err: err}
	}
}

// runTeardown fires the shutdown hook exactly once regardless of which quit
// path reaches it first.
func (m *Model) runTeardown() {
	m.teardownOnce.Do(m.teardown)
}

func actionLabel(a Action) string {
	switch a.Kind {
	case ActionSetFan:
		return fmt.Sprintf("fan %d%%", a.Value)
	case ActionToggleBoost:
		return "jetson_clocks"
	case ActionSetProfile:
		return fmt.Sprintf("nvpmodel %d", a.Value)
	default:
		return "none"
	}
}

func pushHistory(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyPoints {
		hist = hist[len(hist)-historyPoints:]
	}
	return hist
}

// Run starts the dashboard and blocks until it exits. A fatal sampling
// error is logged after the terminal is restored, then returned.
func Run(cfg config.Config, src sampleSource, surface control.Surface) error {
	m := NewModel(cfg, src, surface)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*Model); ok && fm.fatal != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("dashboard stopped", "err", fm.fatal)
		return fm.fatal
	}
	return nil
}
