package collect

import "time"

// RateSampler turns monotonically increasing byte counters into
// throughput rates. The previous sample is explicit state held by the
// caller (the dashboard keeps one per session), not package state, so
// independent consumers never interfere with each other.
type RateSampler struct {
	primed   bool
	lastRecv uint64
	lastSent uint64
	lastAt   time.Time
}

// Sample records the current counters and returns the rates since the
// previous call. The first call only primes the baseline and reports
// ok=false.
func (s *RateSampler) Sample(recvBytes, sentBytes uint64, at time.Time) (rates NetRates, ok bool) {
	defer func() {
		s.primed = true
		s.lastRecv = recvBytes
		s.lastSent = sentBytes
		s.lastAt = at
	}()

	if !s.primed {
		return NetRates{}, false
	}

	elapsed := at.Sub(s.lastAt).Seconds()
	if elapsed <= 0 || recvBytes < s.lastRecv || sentBytes < s.lastSent {
		// Clock went backwards or counters reset; re-prime.
		return NetRates{}, false
	}

	const mb = 1024 * 1024
	return NetRates{
		RecvMBps: float64(recvBytes-s.lastRecv) / elapsed / mb,
		SentMBps: float64(sentBytes-s.lastSent) / elapsed / mb,
	}, true
}
