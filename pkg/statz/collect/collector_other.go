//go:build !linux

package collect

import (
	"runtime"
	"time"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

func readOSSpecs() (snapshot.Node, error) {
	out := snapshot.NewMap()
	out.Set("system", snapshot.String(runtime.GOOS))
	out.Set("architecture", snapshot.String(runtime.GOARCH))
	return out, nil
}

func readCPUSpecs() (snapshot.Node, error) {
	out := snapshot.NewMap()
	out.Set("cores", snapshot.Int(int64(runtime.NumCPU())))
	out.Set("architecture", snapshot.String(runtime.GOARCH))
	return out, nil
}

func readRAMSpecs() (snapshot.Node, error) {
	return nil, errNotAvailable("RAM")
}

func readDiskSpecs() (snapshot.Node, error) {
	return nil, errNotAvailable("Disk")
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

// TakeUsageSample reports every selected component as unavailable on
// platforms without procfs support.
func TakeUsageSample(sel Selection, _ UsageOptions) *UsageSample {
	sample := &UsageSample{}
	if sel.CPU {
		sample.CPUErr = errNotAvailable("CPU usage")
	}
	if sel.RAM {
		sample.RAMErr = errNotAvailable("RAM usage")
	}
	if sel.Disk {
		sample.DisksErr = errNotAvailable("Disk usage")
		sample.RootErr = errNotAvailable("Disk usage")
	}
	if sel.Network {
		sample.NetErr = errNotAvailable("Network usage")
	}
	if sel.Battery {
		sample.BatteryErr = errNotAvailable("Battery")
	}
	return sample
}

func readTemps() ([]TempReading, error) {
	return nil, errNotAvailable("Temperature")
}

func readProcesses(int, ProcessSort, time.Duration) ([]ProcessInfo, error) {
	return nil, errNotAvailable("Process")
}
