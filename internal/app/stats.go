package service

import (
	"math"
	"sort"
	"sync"
	"time"
)

// DefaultStatsWindow is the number of recent requests latency stats cover.
const DefaultStatsWindow = 200

// requestStats keeps request totals and a ring of recent latencies.
type requestStats struct {
	mu        sync.Mutex
	requests  int64
	non200    int64
	latencies []float64 // seconds, ring buffer
	next      int
	filled    bool
}

func newRequestStats(window int) *requestStats {
	return &requestStats{latencies: make([]float64, window)}
}

func (r *requestStats) observe(status int, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests++
	if status != 200 {
		r.non200++
	}
	r.latencies[r.next] = d.Seconds()
	r.next++
	if r.next == len(r.latencies) {
		r.next = 0
		r.filled = true
	}
}

type statsSnapshot struct {
	Requests   int64
	Non200Rate float64
	P95        float64
	Avg        float64
}

func (r *requestStats) snapshot() statsSnapshot {
	r.mu.Lock()
	n := r.next
	if r.filled {
		n = len(r.latencies)
	}
	window := make([]float64, n)
	copy(window, r.latencies[:n])
	snap := statsSnapshot{Requests: r.requests}
	if r.requests > 0 {
		snap.Non200Rate = float64(r.non200) / float64(r.requests)
	}
	r.mu.Unlock()

	if len(window) == 0 {
		return snap
	}
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	snap.Avg = round4(sum / float64(len(window)))
	snap.P95 = round4(p95(window))
	return snap
}

// p95 returns the last of 20 exclusive quantile cut points, or the maximum
// when fewer than 20 samples exist.
func p95(samples []float64) float64 {
	sort.Float64s(samples)
	m := len(samples)
	if m < 20 {
		return samples[m-1]
	}
	const n, i = 20, 19
	j := i * (m + 1) / n
	delta := i*(m+1) - j*n
	return (samples[j-1]*float64(n-delta) + samples[j]*float64(delta)) / n
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
