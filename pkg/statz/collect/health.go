package collect

import (
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// Health sub-score weights. They sum to 100 so the weighted total is
// itself a 0-100 score.
const (
	weightCPU     = 30
	weightMemory  = 25
	weightDisk    = 20
	weightTemp    = 15
	weightBattery = 10
)

// HealthScore is a weighted 0-100 rating of overall system condition.
// Sub-scores for components that could not be read are treated as
// perfect rather than dragging the total down.
type HealthScore struct {
	Total       float64
	CPU         float64
	Memory      float64
	Disk        float64
	Temperature float64
	Battery     float64
}

// Health samples live utilization and sensors and rates the system.
func Health(opts UsageOptions) HealthScore {
	sel := Selection{CPU: true, RAM: true, Disk: true, Battery: true}
	sample := TakeUsageSample(sel, opts)
	temps, _ := readTemps()
	return scoreHealth(sample, temps)
}

// scoreHealth rates a usage sample. Each sub-score is the headroom
// left in that component: 100 minus its utilization percentage.
func scoreHealth(sample *UsageSample, temps []TempReading) HealthScore {
	score := HealthScore{CPU: 100, Memory: 100, Disk: 100, Temperature: 100, Battery: 100}

	if sample.CPUErr == nil && len(sample.Cores) > 0 {
		score.CPU = clampScore(100 - sample.CPUAverage())
	}
	if sample.RAMErr == nil && sample.RAM != nil {
		score.Memory = clampScore(100 - sample.RAM.Percent)
	}
	if sample.RootErr == nil {
		score.Disk = clampScore(100 - sample.RootUsedPercent)
	}
	if len(temps) > 0 {
		score.Temperature = clampScore(100 - maxTemp(temps))
	}
	if sample.BatteryErr == nil && sample.Battery != nil {
		score.Battery = clampScore(sample.Battery.Percent)
	}

	score.Total = (score.CPU*weightCPU +
		score.Memory*weightMemory +
		score.Disk*weightDisk +
		score.Temperature*weightTemp +
		score.Battery*weightBattery) / 100
	return score
}

// Node converts the score to the snapshot shape.
func (s HealthScore) Node() *snapshot.Map {
	out := snapshot.NewMap()
	out.Set("total", snapshot.Float(round1(s.Total)))
	out.Set("cpu", snapshot.Float(round1(s.CPU)))
	out.Set("memory", snapshot.Float(round1(s.Memory)))
	out.Set("disk", snapshot.Float(round1(s.Disk)))
	out.Set("temperature", snapshot.Float(round1(s.Temperature)))
	out.Set("battery", snapshot.Float(round1(s.Battery)))
	return out
}

func maxTemp(temps []TempReading) float64 {
	max := temps[0].Celsius
	for _, t := range temps[1:] {
		if t.Celsius > max {
			max = t.Celsius
		}
	}
	return max
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
