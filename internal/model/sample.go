package model

import "time"

// CPU aggregates instantaneous CPU usage across all cores.
type CPU struct {
	Usage float64   `json:"usage"` // percent 0-100, mean of per-core usage
	Cores []CPUCore `json:"cores"`
	Load1 float64   `json:"load1"`
	Load5 float64   `json:"load5"`
}

// CPUCore is one core's derived usage plus its cpufreq state.
type CPUCore struct {
	Index    int     `json:"index"`
	Usage    float64 `json:"usage"` // percent, delta-derived
	FreqKHz  uint64  `json:"freq_khz"`
	Governor string  `json:"governor"`
}

// GPU holds one accelerator snapshot. Memory and process fields are only
// populated by the nvidia-smi sourcing strategy.
type GPU struct {
	Usage      float64      `json:"usage"` // percent
	FreqHz     uint64       `json:"freq_hz"`
	TempC      float64      `json:"temperature"`
	Governor   string       `json:"governor"`
	Name       string       `json:"name,omitempty"`
	MemUsedMB  float64      `json:"mem_used_mb,omitempty"`
	MemTotalMB float64      `json:"mem_total_mb,omitempty"`
	Processes  []GPUProcess `json:"processes,omitempty"`
}

// GPUProcess is one entry from the accelerator process list.
type GPUProcess struct {
	PID     int     `json:"pid"`
	Name    string  `json:"name"`
	Usage   float64 `json:"usage"`
	Command string  `json:"command"`
}

// Memory captures RAM, swap, and the Jetson on-chip IRAM carveout in bytes.
type Memory struct {
	RAMUsed    uint64 `json:"ram_used"`
	RAMTotal   uint64 `json:"ram_total"`
	RAMCached  uint64 `json:"ram_cached"`
	SwapUsed   uint64 `json:"swap_used"`
	SwapTotal  uint64 `json:"swap_total"`
	SwapCached uint64 `json:"swap_cached"`
	IRAMUsed   uint64 `json:"iram_used"`
	IRAMTotal  uint64 `json:"iram_total"`
	IRAMLfb    uint64 `json:"iram_lfb"`
}

// Thermal promotes well-known zones to named fields and keeps the raw list.
type Thermal struct {
	CPU   float64       `json:"cpu"`
	GPU   float64       `json:"gpu"`
	Board float64       `json:"board"`
	PMIC  float64       `json:"pmic"`
	Zones []ThermalZone `json:"zones"`
}

// ThermalZone is one /sys/class/thermal zone reading in degrees Celsius.
type ThermalZone struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	TempC     float64 `json:"temp"`
	TripC     float64 `json:"trip"`
	CriticalC float64 `json:"critical"`
}

// Power sums the INA3221 rail readings.
type Power struct {
	TotalW float64     `json:"total_w"`
	Rails  []PowerRail `json:"rails"`
}

// PowerRail is one monitored supply rail.
type PowerRail struct {
	Name      string  `json:"name"`
	CurrentMA float64 `json:"current_ma"`
	VoltageMV float64 `json:"voltage_mv"`
	PowerMW   float64 `json:"power_mw"`
}

// FanMode is an advisory classification of how the cooling devices appear to
// be driven; it is a heuristic, not an authoritative driver state.
type FanMode string

const (
	FanAutomatic FanMode = "automatic"
	FanManual    FanMode = "manual"
	FanOff       FanMode = "off"
	FanUnknown   FanMode = "unknown"
)

// Cooling aggregates the thermal cooling devices.
type Cooling struct {
	Duty float64 `json:"duty"` // percent, mean across fans
	RPM  uint64  `json:"rpm"`  // mean across fans reporting RPM
	Mode FanMode `json:"mode"`
	Fans []Fan   `json:"fans"`
}

// Fan is one cooling device.
type Fan struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Duty  float64 `json:"duty"` // percent of max_state
	RPM   uint64  `json:"rpm"`
}

// Board identifies the hardware and its firmware stack.
type Board struct {
	Model   string `json:"model"`
	JetPack string `json:"jetpack"`
	L4T     string `json:"l4t"`
	Serial  string `json:"serial"`
}

// Engine is one fixed-function accelerator block (APE, DLA, NVDEC, ...).
type Engine struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Usage   uint64 `json:"usage"` // percent where the kernel exposes it
	ClockHz uint64 `json:"clock_hz"`
}

// Engines groups the fixed-function blocks found on Tegra SoCs.
type Engines struct {
	APE   Engine `json:"ape"`
	DLA0  Engine `json:"dla0"`
	DLA1  Engine `json:"dla1"`
	NVDEC Engine `json:"nvdec"`
	NVENC Engine `json:"nvenc"`
	NVJPG Engine `json:"nvjpg"`
}

// Boost reports jetson_clocks state.
type Boost struct {
	Enabled bool   `json:"enabled"`
	Mode    string `json:"mode"`
}

// Profile reports the nvpmodel power profile.
type Profile struct {
	Current   int            `json:"current"` // -1 when unreadable
	Available bool           `json:"available"`
	Models    []ProfileModel `json:"models,omitempty"`
}

// ProfileModel is one entry from nvpmodel.conf.
type ProfileModel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Processes counts running processes.
type Processes struct {
	Total int `json:"total"`
}

// Sample is the full snapshot exchanged between sampler, UI, and JSON
// exporter. It is assembled once per tick and never mutated afterwards.
type Sample struct {
	Timestamp time.Time     `json:"timestamp"`
	Interval  time.Duration `json:"interval"`
	Board     Board         `json:"board"`
	CPU       CPU           `json:"cpu"`
	GPU       GPU           `json:"gpu"`
	Memory    Memory        `json:"memory"`
	Thermal   Thermal       `json:"thermal"`
	Power     Power         `json:"power"`
	Cooling   Cooling       `json:"cooling"`
	Engines   Engines       `json:"engines"`
	Boost     Boost         `json:"boost"`
	Profile   Profile       `json:"profile"`
	Processes Processes     `json:"processes"`
}

// Zero returns an empty sample for initialization.
func Zero() Sample {
	return Sample{
		Timestamp: time.Now(),
		Cooling:   Cooling{Mode: FanUnknown},
		Profile:   Profile{Current: -1},
	}
}
