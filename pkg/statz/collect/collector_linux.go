//go:build linux

package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sys/unix"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// userHZ is the kernel's jiffy rate for process accounting. It has
// been 100 on every mainstream architecture for decades.
const userHZ = 100

func readOSSpecs() (snapshot.Node, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return nil, fmt.Errorf("uname: %w", err)
	}

	out := snapshot.NewMap()
	out.Set("system", snapshot.String(charsToString(uts.Sysname[:])))
	out.Set("kernel", snapshot.String(charsToString(uts.Release[:])))
	out.Set("architecture", snapshot.String(charsToString(uts.Machine[:])))

	if hostname, err := os.Hostname(); err == nil {
		out.Set("hostname", snapshot.String(hostname))
	}

	if data, err := os.ReadFile("/etc/os-release"); err == nil {
		name, version := parseOSRelease(string(data))
		if name != "" {
			out.Set("distribution", snapshot.String(name))
		}
		if version != "" {
			out.Set("distributionVersion", snapshot.String(version))
		}
	}

	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err == nil {
		out.Set("uptimeHours", snapshot.Float(round1(float64(info.Uptime)/3600)))
	}

	return out, nil
}

func readCPUSpecs() (snapshot.Node, error) {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return nil, fmt.Errorf("reading cpuinfo: %w", err)
	}
	info := parseCPUInfo(string(data))

	out := snapshot.NewMap()
	out.Set("model", snapshot.String(info.model))
	out.Set("cores", snapshot.Int(int64(info.logicalCores)))
	if info.frequencyMHz > 0 {
		out.Set("frequencyMHz", snapshot.Float(round1(info.frequencyMHz)))
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		out.Set("architecture", snapshot.String(charsToString(uts.Machine[:])))
	}
	return out, nil
}

func readRAMSpecs() (snapshot.Node, error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return nil, fmt.Errorf("reading meminfo: %w", err)
	}
	info, err := parseMeminfo(string(data))
	if err != nil {
		return nil, err
	}

	out := snapshot.NewMap()
	out.Set("totalMB", snapshot.Float(round1(float64(info.totalKB)/1024)))
	return out, nil
}

func readDiskSpecs() (snapshot.Node, error) {
	var fs unix.Statfs_t
	if err := unix.Statfs("/", &fs); err != nil {
		return nil, fmt.Errorf("statfs /: %w", err)
	}

	const gb = 1024 * 1024 * 1024
	total := float64(fs.Blocks) * float64(fs.Bsize) / gb
	free := float64(fs.Bfree) * float64(fs.Bsize) / gb

	out := snapshot.NewMap()
	out.Set("mount", snapshot.String("/"))
	out.Set("totalGB", snapshot.Float(round1(total)))
	out.Set("freeGB", snapshot.Float(round1(free)))
	out.Set("usedGB", snapshot.Float(round1(total-free)))
	return out, nil
}

func readGPUSpecs() (snapshot.Node, error) {
	return nil, errNotAvailable("GPU")
}

func readNetworkSpecs() (snapshot.Node, error) {
	return nil, errNotAvailable("Network")
}

func readBatterySpecs() (snapshot.Node, error) {
	return nil, errNotAvailable("Battery")
}

// TakeUsageSample reads the selected live metrics. Rate-based readings
// (cpu, disk, network) are sampled over the configured window with one
// sleep shared by all of them.
func TakeUsageSample(sel Selection, opts UsageOptions) *UsageSample {
	sample := &UsageSample{}
	interval := opts.interval()

	var (
		cpuBefore  []cpuTimes
		diskBefore []diskCounters
		netSampler RateSampler
	)

	needsWindow := sel.CPU || sel.Disk || sel.Network
	if sel.CPU {
		cpuBefore, sample.CPUErr = readCPUTimes()
	}
	if sel.Disk {
		diskBefore, sample.DisksErr = readDiskCounters()
	}
	if sel.Network {
		if recv, sent, err := readNetCounters(); err != nil {
			sample.NetErr = err
		} else {
			netSampler.Sample(recv, sent, time.Now())
		}
	}

	if needsWindow {
		time.Sleep(interval)
	}

	if sel.CPU && sample.CPUErr == nil {
		cpuAfter, err := readCPUTimes()
		if err != nil {
			sample.CPUErr = err
		} else {
			sample.Cores = cpuPercents(cpuBefore, cpuAfter)
		}
		sample.Load = readLoadAvg()
	}

	if sel.Disk && sample.DisksErr == nil {
		diskAfter, err := readDiskCounters()
		if err != nil {
			sample.DisksErr = err
		} else {
			sample.Disks = diskRates(diskBefore, diskAfter, interval)
		}
	}

	if sel.Network && sample.NetErr == nil {
		if recv, sent, err := readNetCounters(); err != nil {
			sample.NetErr = err
		} else if rates, ok := netSampler.Sample(recv, sent, time.Now()); ok {
			sample.Net = &rates
		} else {
			sample.Net = &NetRates{}
		}
	}

	if sel.RAM {
		sample.RAM, sample.RAMErr = readRAMUsage()
	}

	if sel.Disk {
		var fs unix.Statfs_t
		if err := unix.Statfs("/", &fs); err != nil {
			sample.RootErr = fmt.Errorf("statfs /: %w", err)
		} else if fs.Blocks > 0 {
			sample.RootUsedPercent = float64(fs.Blocks-fs.Bfree) / float64(fs.Blocks) * 100
		}
	}

	if sel.Battery {
		sample.Battery, sample.BatteryErr = readBattery()
	}

	return sample
}

func readCPUTimes() ([]cpuTimes, error) {
	data, err := os.ReadFile("/proc/stat")
	if err != nil {
		return nil, fmt.Errorf("reading cpu stat: %w", err)
	}
	return parseCPUTimes(string(data)), nil
}

// readLoadAvg returns nil when /proc/loadavg cannot be read; the cpu
// node just omits the load keys.
func readLoadAvg() *LoadAvg {
	data, err := os.ReadFile("/proc/loadavg")
	if err != nil {
		return nil
	}
	l1, l5, l15, err := parseLoadAvg(string(data))
	if err != nil {
		return nil
	}
	return &LoadAvg{Load1: l1, Load5: l5, Load15: l15}
}

func readDiskCounters() ([]diskCounters, error) {
	data, err := os.ReadFile("/proc/diskstats")
	if err != nil {
		return nil, fmt.Errorf("reading diskstats: %w", err)
	}
	return parseDiskstats(string(data)), nil
}

func readNetCounters() (recvBytes, sentBytes uint64, err error) {
	data, err := os.ReadFile("/proc/net/dev")
	if err != nil {
		return 0, 0, fmt.Errorf("reading net counters: %w", err)
	}
	recvBytes, sentBytes = parseNetDev(string(data))
	return recvBytes, sentBytes, nil
}

func readRAMUsage() (*RAMUsage, error) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return nil, fmt.Errorf("reading meminfo: %w", err)
	}
	info, err := parseMeminfo(string(data))
	if err != nil {
		return nil, err
	}

	total := float64(info.totalKB) / 1024
	free := float64(info.freeKB) / 1024
	available := float64(info.availableKB) / 1024
	used := total - available

	usage := &RAMUsage{
		TotalMB:     total,
		UsedMB:      used,
		FreeMB:      free,
		AvailableMB: available,
	}
	if total > 0 {
		usage.Percent = used / total * 100
	}
	return usage, nil
}

// diskRates converts sector counter deltas into MB/s. Sectors are 512
// bytes in /proc/diskstats regardless of the device's native size.
func diskRates(before, after []diskCounters, interval time.Duration) []DiskIO {
	prev := make(map[string]diskCounters, len(before))
	for _, d := range before {
		prev[d.device] = d
	}

	const sectorBytes = 512
	const mb = 1024 * 1024
	seconds := interval.Seconds()

	var out []DiskIO
	for _, cur := range after {
		old, ok := prev[cur.device]
		if !ok || seconds <= 0 {
			continue
		}
		out = append(out, DiskIO{
			Device:    cur.device,
			ReadMBps:  float64(cur.sectorsRead-old.sectorsRead) * sectorBytes / seconds / mb,
			WriteMBps: float64(cur.sectorsWritten-old.sectorsWritten) * sectorBytes / seconds / mb,
		})
	}
	return out
}

func readBattery() (*BatteryState, error) {
	matches, err := filepath.Glob("/sys/class/power_supply/BAT*/uevent")
	if err != nil || len(matches) == 0 {
		return nil, errNotAvailable("Battery")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("reading battery state: %w", err)
	}
	state, ok := parseBatteryUevent(string(data))
	if !ok {
		return nil, errNotAvailable("Battery")
	}
	return &state, nil
}

func readTemps() ([]TempReading, error) {
	zones, err := filepath.Glob("/sys/class/thermal/thermal_zone*")
	if err != nil {
		return nil, err
	}

	var out []TempReading
	for _, zone := range zones {
		typeData, err := os.ReadFile(filepath.Join(zone, "type"))
		if err != nil {
			continue
		}
		tempData, err := os.ReadFile(filepath.Join(zone, "temp"))
		if err != nil {
			continue
		}

		var milliC int64
		if _, err := fmt.Sscanf(string(tempData), "%d", &milliC); err != nil {
			continue
		}
		sensor := string(bytesTrim(typeData))
		out = append(out, TempReading{Sensor: sensor, Celsius: float64(milliC) / 1000})
	}
	return out, nil
}

// procJiffies is one pass over /proc/<pid>: name, cpu jiffies, and
// resident memory.
type procJiffies struct {
	pid      int
	name     string
	jiffies  uint64
	rssBytes uint64
}

func readProcesses(n int, sortBy ProcessSort, interval time.Duration) ([]ProcessInfo, error) {
	first, err := scanProcs()
	if err != nil {
		return nil, err
	}

	var procs []ProcessInfo
	switch sortBy {
	case SortMem:
		data, err := os.ReadFile("/proc/meminfo")
		if err != nil {
			return nil, fmt.Errorf("reading meminfo: %w", err)
		}
		info, err := parseMeminfo(string(data))
		if err != nil {
			return nil, err
		}
		totalBytes := float64(info.totalKB) * 1024
		for _, p := range first {
			if totalBytes <= 0 {
				break
			}
			procs = append(procs, ProcessInfo{
				PID:   p.pid,
				Name:  p.name,
				Usage: float64(p.rssBytes) / totalBytes * 100,
			})
		}
	default:
		// CPU usage needs a delta between two scans.
		time.Sleep(interval)
		second, err := scanProcs()
		if err != nil {
			return nil, err
		}

		prev := make(map[int]procJiffies, len(first))
		for _, p := range first {
			prev[p.pid] = p
		}
		windowJiffies := interval.Seconds() * userHZ
		for _, cur := range second {
			old, ok := prev[cur.pid]
			if !ok || windowJiffies <= 0 || cur.jiffies < old.jiffies {
				continue
			}
			procs = append(procs, ProcessInfo{
				PID:   cur.pid,
				Name:  cur.name,
				Usage: float64(cur.jiffies-old.jiffies) / windowJiffies * 100,
			})
		}
	}

	sort.Slice(procs, func(i, j int) bool { return procs[i].Usage > procs[j].Usage })
	if len(procs) > n {
		procs = procs[:n]
	}
	return procs, nil
}

// scanProcs reads name, jiffies, and rss for every numeric entry in
// /proc. Processes that vanish mid-scan are skipped.
func scanProcs() ([]procJiffies, error) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("reading /proc: %w", err)
	}
	pageSize := uint64(os.Getpagesize())

	var out []procJiffies
	for _, entry := range entries {
		pid, err := parsePID(entry.Name())
		if err != nil {
			continue
		}

		statData, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "stat"))
		if err != nil {
			continue
		}
		name, jiffies, ok := parseProcStat(string(statData))
		if !ok {
			continue
		}

		proc := procJiffies{pid: pid, name: name, jiffies: jiffies}
		if statmData, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "statm")); err == nil {
			if rssPages, ok := parseStatmRSS(string(statmData)); ok {
				proc.rssBytes = rssPages * pageSize
			}
		}
		out = append(out, proc)
	}
	return out, nil
}

func parsePID(name string) (int, error) {
	var pid int
	if _, err := fmt.Sscanf(name, "%d", &pid); err != nil {
		return 0, err
	}
	if pid <= 0 {
		return 0, fmt.Errorf("not a pid: %s", name)
	}
	return pid, nil
}

// charsToString converts a NUL-terminated utsname field to a string.
func charsToString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func bytesTrim(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	return b
}
