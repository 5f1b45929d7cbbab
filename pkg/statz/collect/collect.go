// Package collect gathers machine-readable snapshots of hardware and
// software state: static specs, live utilization, sensor temperatures,
// and the busiest processes.
//
// Every collector returns the snapshot shape, so collected data flows
// through the same flatten/diff/export machinery as loaded files. A
// component that cannot be read on the current platform degrades to an
// {"error": ...} entry instead of failing the whole snapshot.
package collect

import (
	"fmt"
	"math"
	"time"

	"github.com/statz-dev/statz/pkg/statz/logging"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// logger is the package-level logger for collector operations.
var logger = logging.Get("collect")

// DefaultInterval is the sampling window used for rate-based readings
// (cpu busy %, disk and network throughput).
const DefaultInterval = 500 * time.Millisecond

// Selection picks which components a collection call should fetch.
// The zero value selects nothing; use AllComponents for everything.
type Selection struct {
	OS      bool
	CPU     bool
	GPU     bool
	RAM     bool
	Disk    bool
	Network bool
	Battery bool
}

// AllComponents returns a Selection with every component enabled.
func AllComponents() Selection {
	return Selection{OS: true, CPU: true, GPU: true, RAM: true, Disk: true, Network: true, Battery: true}
}

// Any reports whether at least one component is selected.
func (s Selection) Any() bool {
	return s.OS || s.CPU || s.GPU || s.RAM || s.Disk || s.Network || s.Battery
}

// UsageOptions configures a usage collection call.
type UsageOptions struct {
	// Interval is the sampling window for rate-based readings.
	// Zero means DefaultInterval.
	Interval time.Duration
}

func (o UsageOptions) interval() time.Duration {
	if o.Interval <= 0 {
		return DefaultInterval
	}
	return o.Interval
}

// RAMUsage is a point-in-time memory reading, in megabytes.
type RAMUsage struct {
	TotalMB     float64
	UsedMB      float64
	FreeMB      float64
	AvailableMB float64
	Percent     float64
}

// DiskIO is one disk's throughput over the sampling window.
type DiskIO struct {
	Device    string
	ReadMBps  float64
	WriteMBps float64
}

// NetRates is network throughput over the sampling window, summed
// across interfaces.
type NetRates struct {
	SentMBps float64
	RecvMBps float64
}

// LoadAvg holds the 1, 5, and 15 minute run-queue load averages.
type LoadAvg struct {
	Load1  float64
	Load5  float64
	Load15 float64
}

// UsageSample is the raw numeric reading behind Usage. The dashboard
// and the health score consume it directly; Usage converts it into
// the snapshot shape.
type UsageSample struct {
	Cores  []CorePercent
	Load   *LoadAvg
	CPUErr error

	RAM    *RAMUsage
	RAMErr error

	Disks    []DiskIO
	DisksErr error

	// RootUsedPercent is the root filesystem's used space share.
	RootUsedPercent float64
	RootErr         error

	Net    *NetRates
	NetErr error

	Battery    *BatteryState
	BatteryErr error
}

// CPUAverage returns the mean busy percentage across sampled cores.
func (s *UsageSample) CPUAverage() float64 {
	if len(s.Cores) == 0 {
		return 0
	}
	var sum float64
	for _, c := range s.Cores {
		sum += c.Percent
	}
	return sum / float64(len(s.Cores))
}

// TempReading is one sensor's temperature in degrees Celsius.
type TempReading struct {
	Sensor  string
	Celsius float64
}

// ProcessInfo is one process in a top-N listing. Usage is a cpu or
// memory percentage depending on the requested sort.
type ProcessInfo struct {
	PID   int
	Name  string
	Usage float64
}

// ProcessSort selects the metric a top-N process listing sorts by.
type ProcessSort string

// Supported process sort metrics.
const (
	SortCPU ProcessSort = "cpu"
	SortMem ProcessSort = "mem"
)

// ParseProcessSort validates a process sort name.
func ParseProcessSort(s string) (ProcessSort, error) {
	switch ProcessSort(s) {
	case SortCPU, SortMem:
		return ProcessSort(s), nil
	default:
		return SortCPU, fmt.Errorf("invalid process sort %q: expected cpu or mem", s)
	}
}

// Specs collects static system specs for the selected components.
// Components that cannot be read on this platform carry an error
// entry, matching the shape of every other component.
func Specs(sel Selection) *snapshot.Map {
	out := snapshot.NewMap()
	if sel.OS {
		out.Set("os", specOrError(readOSSpecs()))
	}
	if sel.CPU {
		out.Set("cpu", specOrError(readCPUSpecs()))
	}
	if sel.GPU {
		out.Set("gpu", specOrError(readGPUSpecs()))
	}
	if sel.RAM {
		out.Set("ram", specOrError(readRAMSpecs()))
	}
	if sel.Disk {
		out.Set("disk", specOrError(readDiskSpecs()))
	}
	if sel.Network {
		out.Set("network", specOrError(readNetworkSpecs()))
	}
	if sel.Battery {
		out.Set("battery", specOrError(readBatterySpecs()))
	}
	return out
}

// Usage collects live utilization for the selected components over
// one sampling window.
func Usage(sel Selection, opts UsageOptions) *snapshot.Map {
	sample := TakeUsageSample(sel, opts)

	out := snapshot.NewMap()
	if sel.CPU {
		out.Set("cpu", cpuNode(sample))
	}
	if sel.RAM {
		out.Set("ram", ramNode(sample))
	}
	if sel.Disk {
		out.Set("disk", diskNode(sample))
	}
	if sel.Network {
		out.Set("network", netNode(sample))
	}
	if sel.Battery {
		out.Set("battery", batteryNode(sample))
	}
	return out
}

// Temperatures returns raw sensor readings. The dashboard consumes
// these directly; Temps wraps them in the snapshot shape.
func Temperatures() ([]TempReading, error) {
	return readTemps()
}

// Temps collects sensor temperatures, keyed by sensor name.
func Temps() snapshot.Node {
	readings, err := readTemps()
	if err != nil {
		logger.Warn("temperature reading failed", "error", err)
		return errorEntry(fmt.Sprintf("Temperature reading failed: %v", err))
	}
	if len(readings) == 0 {
		return errorEntry("Temperature information not available on this system")
	}

	out := snapshot.NewMap()
	for _, r := range readings {
		out.Set(r.Sensor, snapshot.Float(round1(r.Celsius)))
	}
	return out
}

// TopProcesses collects the n busiest processes sorted by the given
// metric.
func TopProcesses(n int, sortBy ProcessSort, interval time.Duration) snapshot.Node {
	if interval <= 0 {
		interval = DefaultInterval
	}
	procs, err := readProcesses(n, sortBy, interval)
	if err != nil {
		logger.Warn("process monitoring failed", "error", err)
		return errorEntry(fmt.Sprintf("Process monitoring failed: %v", err))
	}
	if len(procs) == 0 {
		return errorEntry("Process information not available on this system")
	}

	out := snapshot.Seq{}
	for _, p := range procs {
		entry := snapshot.NewMap()
		entry.Set("pid", snapshot.Int(int64(p.PID)))
		entry.Set("name", snapshot.String(p.Name))
		entry.Set("usage", snapshot.Float(round1(p.Usage)))
		out = append(out, entry)
	}
	return out
}

// errNotAvailable marks a component this platform cannot read.
func errNotAvailable(component string) error {
	return fmt.Errorf("%s information not available on this system", component)
}

// errorEntry wraps a failure message in the component error shape.
func errorEntry(msg string) *snapshot.Map {
	m := snapshot.NewMap()
	m.Set("error", snapshot.String(msg))
	return m
}

func specOrError(n snapshot.Node, err error) snapshot.Node {
	if err != nil {
		return errorEntry(err.Error())
	}
	return n
}

func cpuNode(sample *UsageSample) snapshot.Node {
	if sample.CPUErr != nil {
		return errorEntry(sample.CPUErr.Error())
	}
	out := snapshot.NewMap()
	for _, c := range sample.Cores {
		out.Set(c.Name, snapshot.Float(round1(c.Percent)))
	}
	out.Set("average", snapshot.Float(round1(sample.CPUAverage())))
	if sample.Load != nil {
		out.Set("load1", snapshot.Float(round2(sample.Load.Load1)))
		out.Set("load5", snapshot.Float(round2(sample.Load.Load5)))
		out.Set("load15", snapshot.Float(round2(sample.Load.Load15)))
	}
	return out
}

func ramNode(sample *UsageSample) snapshot.Node {
	if sample.RAMErr != nil {
		return errorEntry(sample.RAMErr.Error())
	}
	out := snapshot.NewMap()
	out.Set("total", snapshot.Float(round1(sample.RAM.TotalMB)))
	out.Set("used", snapshot.Float(round1(sample.RAM.UsedMB)))
	out.Set("free", snapshot.Float(round1(sample.RAM.FreeMB)))
	out.Set("available", snapshot.Float(round1(sample.RAM.AvailableMB)))
	out.Set("percent", snapshot.Float(round1(sample.RAM.Percent)))
	return out
}

func diskNode(sample *UsageSample) snapshot.Node {
	if sample.DisksErr != nil {
		return errorEntry(sample.DisksErr.Error())
	}
	out := snapshot.Seq{}
	for _, d := range sample.Disks {
		entry := snapshot.NewMap()
		entry.Set("device", snapshot.String(d.Device))
		entry.Set("readSpeedMBps", snapshot.Float(round2(d.ReadMBps)))
		entry.Set("writeSpeedMBps", snapshot.Float(round2(d.WriteMBps)))
		out = append(out, entry)
	}
	return out
}

func netNode(sample *UsageSample) snapshot.Node {
	if sample.NetErr != nil {
		return errorEntry(sample.NetErr.Error())
	}
	out := snapshot.NewMap()
	out.Set("sentMBps", snapshot.Float(round2(sample.Net.SentMBps)))
	out.Set("recvMBps", snapshot.Float(round2(sample.Net.RecvMBps)))
	return out
}

func batteryNode(sample *UsageSample) snapshot.Node {
	if sample.BatteryErr != nil {
		return errorEntry(sample.BatteryErr.Error())
	}
	out := snapshot.NewMap()
	out.Set("percent", snapshot.Float(round1(sample.Battery.Percent)))
	out.Set("pluggedIn", snapshot.Bool(sample.Battery.PluggedIn))
	if sample.Battery.TimeLeftMins > 0 {
		out.Set("timeLeftMins", snapshot.Int(int64(sample.Battery.TimeLeftMins)))
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
