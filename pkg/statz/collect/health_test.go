package collect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

func TestScoreHealth_Weighted(t *testing.T) {
	sample := &UsageSample{
		Cores:           []CorePercent{{Name: "cpu0", Percent: 40}},
		RAM:             &RAMUsage{Percent: 60},
		RootUsedPercent: 50,
		Battery:         &BatteryState{Percent: 80},
	}
	temps := []TempReading{{Sensor: "x86_pkg_temp", Celsius: 70}}

	score := scoreHealth(sample, temps)

	assert.InDelta(t, 60.0, score.CPU, 0.001)
	assert.InDelta(t, 40.0, score.Memory, 0.001)
	assert.InDelta(t, 50.0, score.Disk, 0.001)
	assert.InDelta(t, 30.0, score.Temperature, 0.001)
	assert.InDelta(t, 80.0, score.Battery, 0.001)
	// 60*30 + 40*25 + 50*20 + 30*15 + 80*10 = 5050
	assert.InDelta(t, 50.5, score.Total, 0.001)
}

func TestScoreHealth_UnreadableComponentsScorePerfect(t *testing.T) {
	sample := &UsageSample{
		CPUErr:     errors.New("unavailable"),
		RAMErr:     errors.New("unavailable"),
		BatteryErr: errors.New("unavailable"),
	}

	score := scoreHealth(sample, nil)

	assert.Equal(t, 100.0, score.CPU)
	assert.Equal(t, 100.0, score.Memory)
	assert.Equal(t, 100.0, score.Temperature)
	assert.Equal(t, 100.0, score.Battery)
}

func TestScoreHealth_HottestSensorWins(t *testing.T) {
	sample := &UsageSample{}
	temps := []TempReading{
		{Sensor: "acpitz", Celsius: 45},
		{Sensor: "x86_pkg_temp", Celsius: 85},
	}

	score := scoreHealth(sample, temps)

	assert.InDelta(t, 15.0, score.Temperature, 0.001)
}

func TestHealthScore_Node(t *testing.T) {
	score := HealthScore{Total: 72.34, CPU: 80, Memory: 60, Disk: 70, Temperature: 90, Battery: 50}

	node := score.Node()

	require.Equal(t, []string{"total", "cpu", "memory", "disk", "temperature", "battery"}, node.Keys())
	total, _ := node.Get("total")
	assert.Equal(t, "72.3", string(total.(snapshot.Number)))
}
