package collect

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// cpuTimes holds one cpu line from /proc/stat: the total jiffies and
// the idle share, keyed by the core name ("cpu0", "cpu1", ...).
type cpuTimes struct {
	name  string
	idle  uint64
	total uint64
}

// parseCPUTimes extracts per-core jiffy counters from /proc/stat
// content. The aggregate "cpu" line is skipped; only numbered cores
// are returned, in file order.
func parseCPUTimes(content string) []cpuTimes {
	var out []cpuTimes
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || !strings.HasPrefix(fields[0], "cpu") || fields[0] == "cpu" {
			continue
		}

		var total, idle uint64
		for i, f := range fields[1:] {
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				continue
			}
			total += v
			// Fields 4 and 5 are idle and iowait.
			if i == 3 || i == 4 {
				idle += v
			}
		}
		out = append(out, cpuTimes{name: fields[0], idle: idle, total: total})
	}
	return out
}

// CorePercent is one core's busy percentage over a sampling window.
type CorePercent struct {
	Name    string
	Percent float64
}

// cpuPercents computes per-core busy percentages between two samples.
// Cores present in only one sample are skipped.
func cpuPercents(before, after []cpuTimes) []CorePercent {
	prev := make(map[string]cpuTimes, len(before))
	for _, t := range before {
		prev[t.name] = t
	}

	var out []CorePercent
	for _, cur := range after {
		old, ok := prev[cur.name]
		if !ok || cur.total <= old.total {
			continue
		}
		totalDelta := float64(cur.total - old.total)
		idleDelta := float64(cur.idle - old.idle)
		busy := (totalDelta - idleDelta) / totalDelta * 100
		if busy < 0 {
			busy = 0
		}
		out = append(out, CorePercent{Name: cur.name, Percent: busy})
	}
	return out
}

// memInfo holds the /proc/meminfo figures statz reports, in kilobytes.
type memInfo struct {
	totalKB     uint64
	freeKB      uint64
	availableKB uint64
}

// parseMeminfo extracts MemTotal, MemFree, and MemAvailable from
// /proc/meminfo content.
func parseMeminfo(content string) (memInfo, error) {
	var info memInfo
	seen := 0
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch fields[0] {
		case "MemTotal:":
			info.totalKB = v
			seen++
		case "MemFree:":
			info.freeKB = v
			seen++
		case "MemAvailable:":
			info.availableKB = v
			seen++
		}
	}
	if seen < 2 {
		return info, fmt.Errorf("meminfo content missing expected fields")
	}
	return info, nil
}

// parseOSRelease extracts the distribution name and version from
// /etc/os-release content.
func parseOSRelease(content string) (name, version string) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "PRETTY_NAME":
			name = value
		case "VERSION_ID":
			version = value
		}
	}
	return name, version
}

// cpuInfo holds the /proc/cpuinfo figures statz reports.
type cpuInfo struct {
	model        string
	logicalCores int
	frequencyMHz float64
}

// parseCPUInfo extracts the model name, logical core count, and
// reported frequency from /proc/cpuinfo content.
func parseCPUInfo(content string) cpuInfo {
	var info cpuInfo
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "processor":
			info.logicalCores++
		case "model name":
			if info.model == "" {
				info.model = value
			}
		case "cpu MHz":
			if info.frequencyMHz == 0 {
				if mhz, err := strconv.ParseFloat(value, 64); err == nil {
					info.frequencyMHz = mhz
				}
			}
		}
	}
	return info
}

// parseLoadAvg extracts the three load averages from /proc/loadavg
// content.
func parseLoadAvg(content string) (load1, load5, load15 float64, err error) {
	fields := strings.Fields(content)
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("loadavg content too short")
	}
	if load1, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, 0, err
	}
	if load5, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return 0, 0, 0, err
	}
	if load15, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return 0, 0, 0, err
	}
	return load1, load5, load15, nil
}

// parseNetDev sums received and transmitted byte counters across all
// interfaces in /proc/net/dev content, excluding loopback.
func parseNetDev(content string) (recvBytes, sentBytes uint64) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		iface, counters, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		iface = strings.TrimSpace(iface)
		if iface == "lo" {
			continue
		}
		fields := strings.Fields(counters)
		if len(fields) < 9 {
			continue
		}
		if rx, err := strconv.ParseUint(fields[0], 10, 64); err == nil {
			recvBytes += rx
		}
		if tx, err := strconv.ParseUint(fields[8], 10, 64); err == nil {
			sentBytes += tx
		}
	}
	return recvBytes, sentBytes
}

// diskCounters holds one device's sector counters from /proc/diskstats.
type diskCounters struct {
	device         string
	sectorsRead    uint64
	sectorsWritten uint64
}

// parseDiskstats extracts whole-device sector counters from
// /proc/diskstats content, skipping virtual devices and partitions.
func parseDiskstats(content string) []diskCounters {
	var out []diskCounters
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		// major minor name reads ... sectorsRead(6) ... writes ... sectorsWritten(10)
		if len(fields) < 11 {
			continue
		}
		name := fields[2]
		if !isWholeDisk(name) {
			continue
		}
		read, err := strconv.ParseUint(fields[5], 10, 64)
		if err != nil {
			continue
		}
		written, err := strconv.ParseUint(fields[9], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, diskCounters{device: name, sectorsRead: read, sectorsWritten: written})
	}
	return out
}

// isWholeDisk reports whether a diskstats device name looks like a
// physical disk rather than a partition or virtual device.
func isWholeDisk(name string) bool {
	for _, prefix := range []string{"loop", "ram", "sr", "dm-", "zram", "md"} {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	// nvme0n1p1 and mmcblk0p1 are partitions of nvme0n1 / mmcblk0.
	if strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "mmcblk") {
		return !strings.Contains(name, "p")
	}
	// sda1 is a partition of sda.
	last := name[len(name)-1]
	return last < '0' || last > '9'
}

// BatteryState is a point-in-time battery reading.
type BatteryState struct {
	Percent      float64
	PluggedIn    bool
	TimeLeftMins int
}

// parseBatteryUevent extracts charge state from a power_supply uevent
// file. Time remaining is derived from energy and power draw when the
// battery is discharging and both figures are exposed.
func parseBatteryUevent(content string) (BatteryState, bool) {
	var (
		state      BatteryState
		hasPercent bool
		energyNow  float64
		powerNow   float64
	)

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}
		switch key {
		case "POWER_SUPPLY_CAPACITY":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				state.Percent = v
				hasPercent = true
			}
		case "POWER_SUPPLY_STATUS":
			state.PluggedIn = value == "Charging" || value == "Full"
		case "POWER_SUPPLY_ENERGY_NOW":
			energyNow, _ = strconv.ParseFloat(value, 64)
		case "POWER_SUPPLY_POWER_NOW":
			powerNow, _ = strconv.ParseFloat(value, 64)
		}
	}

	if !state.PluggedIn && energyNow > 0 && powerNow > 0 {
		state.TimeLeftMins = int(energyNow / powerNow * 60)
	}
	return state, hasPercent
}

// parseProcStat extracts the command name and cpu jiffies from a
// /proc/<pid>/stat line. The comm field is parenthesized and may
// contain spaces, so fields are located relative to the closing paren.
func parseProcStat(content string) (name string, jiffies uint64, ok bool) {
	start := strings.IndexByte(content, '(')
	end := strings.LastIndexByte(content, ')')
	if start < 0 || end < start {
		return "", 0, false
	}
	name = content[start+1 : end]

	fields := strings.Fields(content[end+1:])
	// After comm: state(0) ppid(1) ... utime(11) stime(12).
	if len(fields) < 13 {
		return "", 0, false
	}
	utime, err := strconv.ParseUint(fields[11], 10, 64)
	if err != nil {
		return "", 0, false
	}
	stime, err := strconv.ParseUint(fields[12], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return name, utime + stime, true
}

// parseStatmRSS extracts the resident set size in pages from a
// /proc/<pid>/statm line.
func parseStatmRSS(content string) (uint64, bool) {
	fields := strings.Fields(content)
	if len(fields) < 2 {
		return 0, false
	}
	rss, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return rss, true
}
