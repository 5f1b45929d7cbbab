package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateSampler_FirstCallPrimes(t *testing.T) {
	var s RateSampler

	_, ok := s.Sample(1000, 500, time.Now())

	assert.False(t, ok)
}

func TestRateSampler_ComputesRates(t *testing.T) {
	var s RateSampler
	start := time.Now()
	const mb = 1024 * 1024

	_, ok := s.Sample(0, 0, start)
	require.False(t, ok)

	rates, ok := s.Sample(2*mb, 1*mb, start.Add(2*time.Second))

	require.True(t, ok)
	assert.InDelta(t, 1.0, rates.RecvMBps, 0.001)
	assert.InDelta(t, 0.5, rates.SentMBps, 0.001)
}

func TestRateSampler_RePrimesOnCounterReset(t *testing.T) {
	var s RateSampler
	start := time.Now()

	s.Sample(5000, 5000, start)
	_, ok := s.Sample(100, 100, start.Add(time.Second))
	require.False(t, ok, "counter reset must re-prime")

	rates, ok := s.Sample(100+1024*1024, 100, start.Add(2*time.Second))
	require.True(t, ok)
	assert.InDelta(t, 1.0, rates.RecvMBps, 0.001)
}

func TestRateSampler_RePrimesOnClockRegression(t *testing.T) {
	var s RateSampler
	start := time.Now()

	s.Sample(1000, 1000, start)
	_, ok := s.Sample(2000, 2000, start.Add(-time.Second))

	assert.False(t, ok)
}
