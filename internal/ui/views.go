package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/jetson-tools/jetmon/internal/model"
)

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("60")).Padding(0, 1)
	inactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

func (m *Model) View() string {
	s := m.latest

	var body string
	switch m.screen {
	case ScreenOverview:
		body = m.viewOverview(s)
	case ScreenCPU:
		body = m.viewCPU(s)
	case ScreenGPU:
		body = m.viewGPU(s)
	case ScreenMemory:
		body = m.viewMemory(s)
	case ScreenPower:
		body = m.viewPower(s)
	case ScreenTemperature:
		body = m.viewTemperature(s)
	case ScreenControl:
		body = m.viewControl(s)
	case ScreenInfo:
		body = m.viewInfo(s)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.header(s), body, m.footer())
}

func (m *Model) header(s model.Sample) string {
	tabs := make([]string, 0, ScreenCount)
	for i := 1; i <= ScreenCount; i++ {
		sc := Screen(i)
		label := fmt.Sprintf("%d %s", i, sc.Name())
		if sc == m.screen {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	title := titleStyle.Render("jetmon") + "  " +
		subtleStyle.Render(s.Board.Model+"  "+s.Timestamp.Format("15:04:05"))
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Model) footer() string {
	hint := "1-8 screens  ←/→ switch  q quit"
	if m.screen == ScreenControl {
		hint = "↑/↓ select  enter apply  " + hint
	}
	line := subtleStyle.Render(hint)
	if m.status != "" {
		style := subtleStyle
		if strings.Contains(m.status, "failed") {
			style = errorStyle
		}
		line = style.Render(m.status) + "  " + line
	}
	return line
}

func (m *Model) viewOverview(s model.Sample) string {
	cpuCard := card("CPU",
		fmt.Sprintf("%s  load %.2f %.2f", gaugeBar(s.CPU.Usage, 28), s.CPU.Load1, s.CPU.Load5))

	memCard := card("Memory",
		fmt.Sprintf("%s  %.1f/%.1f GiB", gaugeBar(pct(s.Memory.RAMUsed, s.Memory.RAMTotal), 28),
			bytesToGiB(s.Memory.RAMUsed), bytesToGiB(s.Memory.RAMTotal)))

	gpuCard := card("GPU",
		fmt.Sprintf("%s  %s %2.0f°C", gaugeBar(s.GPU.Usage, 28), hz(s.GPU.FreqHz), s.GPU.TempC))

	powerCard := card("Power",
		fmt.Sprintf("%.2f W  fan %3.0f%% (%s)", s.Power.TotalW, s.Cooling.Duty, s.Cooling.Mode))

	tempCard := card("Thermal",
		fmt.Sprintf("CPU %4.1f°C  GPU %4.1f°C  Board %4.1f°C", s.Thermal.CPU, s.Thermal.GPU, s.Thermal.Board))

	statusCard := card("System",
		fmt.Sprintf("%d procs  boost %s  profile %s", s.Processes.Total, onOff(s.Boost.Enabled), profileLabel(s.Profile)))

	line1 := lipgloss.JoinHorizontal(lipgloss.Top, cpuCard, memCard, gpuCard)
	line2 := lipgloss.JoinHorizontal(lipgloss.Top, powerCard, tempCard, statusCard)
	return lipgloss.JoinVertical(lipgloss.Left, line1, line2)
}

func (m *Model) viewCPU(s model.Sample) string {
	var b strings.Builder
	for _, core := range s.CPU.Cores {
		fmt.Fprintf(&b, "cpu%-2d %s %8d kHz %s\n",
			core.Index, gaugeBar(core.Usage, 24), core.FreqKHz, core.Governor)
	}
	cores := card("Cores", strings.TrimRight(b.String(), "\n"))
	graph := historyCard("CPU usage %", m.cpuHist, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, cores, graph)
}

func (m *Model) viewGPU(s model.Sample) string {
	name := s.GPU.Name
	if name == "" {
		name = "iGPU"
	}
	lines := []string{
		fmt.Sprintf("%s %s", truncate(name, 24), gaugeBar(s.GPU.Usage, 28)),
		fmt.Sprintf("freq %s  governor %s  %2.0f°C", hz(s.GPU.FreqHz), s.GPU.Governor, s.GPU.TempC),
	}
	if s.GPU.MemTotalMB > 0 {
		lines = append(lines, fmt.Sprintf("mem %4.0f/%-4.0f MiB", s.GPU.MemUsedMB, s.GPU.MemTotalMB))
	}
	gpuCard := card("GPU", strings.Join(lines, "\n"))

	procCard := ""
	if len(s.GPU.Processes) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "%-8s %-6s %s\n", "pid", "sm%", "name")
		for _, p := range s.GPU.Processes {
			fmt.Fprintf(&b, "%-8d %-6.0f %s\n", p.PID, p.Usage, truncate(p.Name, 24))
		}
		procCard = card("Processes", strings.TrimRight(b.String(), "\n"))
	}

	engCard := card("Engines", renderEngines(s.Engines))
	graph := historyCard("GPU usage %", m.gpuHist, m.width)

	top := lipgloss.JoinHorizontal(lipgloss.Top, gpuCard, engCard)
	if procCard != "" {
		top = lipgloss.JoinHorizontal(lipgloss.Top, gpuCard, engCard, procCard)
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, graph)
}

func renderEngines(e model.Engines) string {
	var b strings.Builder
	for _, eng := range []model.Engine{e.APE, e.DLA0, e.DLA1, e.NVDEC, e.NVENC, e.NVJPG} {
		if eng.Name == "" {
			continue
		}
		state := "off"
		if eng.Enabled {
			state = hz(eng.ClockHz)
			if eng.Usage > 0 {
				state += fmt.Sprintf(" %d%%", eng.Usage)
			}
		}
		fmt.Fprintf(&b, "%-6s %s\n", strings.ToUpper(eng.Name), state)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) viewMemory(s model.Sample) string {
	mem := s.Memory
	ramCard := card("RAM",
		fmt.Sprintf("%s  %.1f/%.1f GiB  cached %.1f GiB",
			gaugeBar(pct(mem.RAMUsed, mem.RAMTotal), 28),
			bytesToGiB(mem.RAMUsed), bytesToGiB(mem.RAMTotal), bytesToGiB(mem.RAMCached)))

	swapCard := card("Swap",
		fmt.Sprintf("%s  %.1f/%.1f GiB  cached %.1f GiB",
			gaugeBar(pct(mem.SwapUsed, mem.SwapTotal), 28),
			bytesToGiB(mem.SwapUsed), bytesToGiB(mem.SwapTotal), bytesToGiB(mem.SwapCached)))

	out := []string{ramCard, swapCard}
	if mem.IRAMTotal > 0 {
		out = append(out, card("IRAM",
			fmt.Sprintf("%s  %d/%d KiB  lfb %d KiB",
				gaugeBar(pct(mem.IRAMUsed, mem.IRAMTotal), 28),
				mem.IRAMUsed/1024, mem.IRAMTotal/1024, mem.IRAMLfb/1024)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (m *Model) viewPower(s model.Sample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %8s %8s %8s\n", "rail", "mA", "mV", "mW")
	for _, rail := range s.Power.Rails {
		fmt.Fprintf(&b, "%-16s %8.0f %8.0f %8.0f\n",
			truncate(rail.Name, 16), rail.CurrentMA, rail.VoltageMV, rail.PowerMW)
	}
	if len(s.Power.Rails) == 0 {
		b.WriteString("no power monitor found")
	}
	rails := card("Rails", strings.TrimRight(b.String(), "\n"))
	total := card("Total", fmt.Sprintf("%.2f W", s.Power.TotalW))
	return lipgloss.JoinVertical(lipgloss.Left, total, rails)
}

func (m *Model) viewTemperature(s model.Sample) string {
	var b strings.Builder
	for _, z := range s.Thermal.Zones {
		bar := ""
		if z.CriticalC > 0 {
			bar = gaugeBar(z.TempC/z.CriticalC*100, 20)
		}
		fmt.Fprintf(&b, "%-14s %6.1f°C  crit %5.1f°C  %s\n",
			truncate(z.Name, 14), z.TempC, z.CriticalC, bar)
	}
	if len(s.Thermal.Zones) == 0 {
		b.WriteString("no thermal zones found")
	}
	zones := card("Zones", strings.TrimRight(b.String(), "\n"))
	graph := historyCard("CPU temp °C", m.tempHist, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, zones, graph)
}

func (m *Model) viewControl(s model.Sample) string {
	items := []string{
		fmt.Sprintf("Fan duty       %3.0f%% (%s) → next step", s.Cooling.Duty, s.Cooling.Mode),
		fmt.Sprintf("Clocks boost   %s → toggle jetson_clocks", onOff(s.Boost.Enabled)),
		fmt.Sprintf("Power profile  %s → next model", profileLabel(s.Profile)),
	}
	var b strings.Builder
	for i, item := range items {
		if i == m.control.cursor {
			b.WriteString(cursorStyle.Render("> "+item) + "\n")
		} else {
			b.WriteString("  " + item + "\n")
		}
	}
	b.WriteString("\n" + subtleStyle.Render("actions run the vendor tools and need root"))
	return card("Control", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) viewInfo(s model.Sample) string {
	board := card("Board", strings.Join([]string{
		"Model    " + s.Board.Model,
		"JetPack  " + s.Board.JetPack,
		"L4T      " + s.Board.L4T,
		"Serial   " + s.Board.Serial,
	}, "\n"))

	if m.host.Hostname == "" {
		return board
	}
	host := card("Host", strings.Join([]string{
		"Hostname " + m.host.Hostname,
		"Platform " + m.host.Platform,
		"Kernel   " + m.host.KernelVersion + " " + m.host.KernelArch,
		"Uptime   " + m.host.Uptime.Truncate(1e9).String(),
	}, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, board, host)
}

// Helpers

func historyCard(title string, hist []float64, width int) string {
	if len(hist) < 2 {
		return card(title, subtleStyle.Render("collecting..."))
	}
	w := width - 16
	if w < 20 {
		w = 20
	}
	if w > historyPoints {
		w = historyPoints
	}
	graph := asciigraph.Plot(hist, asciigraph.Height(7), asciigraph.Width(w))
	return card(title, graph)
}

func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func pct(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) * 100 / float64(total)
}

func bytesToGiB(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }

func hz(v uint64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", float64(v)/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.0f MHz", float64(v)/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.0f kHz", float64(v)/1e3)
	default:
		return fmt.Sprintf("%d Hz", v)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func profileLabel(p model.Profile) string {
	if !p.Available || p.Current < 0 {
		return "n/a"
	}
	for _, m := range p.Models {
		if m.ID == p.Current {
			return fmt.Sprintf("%d (%s)", m.ID, m.Name)
		}
	}
	return fmt.Sprintf("%d", p.Current)
}
