package monitoring

import (
	"sync"
	"time"
)

// emaAlpha weights the latest render in the moving average
const emaAlpha = 0.1

// RenderStats accumulates render timings for a watch session
type RenderStats struct {
	mu         sync.Mutex
	startedAt  time.Time
	renders    int64
	failures   int64
	last       time.Duration
	average    time.Duration
	slowest    time.Duration
	lastError  string
	lastFailed bool
}

// Snapshot is a point-in-time copy of RenderStats
type Snapshot struct {
	Uptime    time.Duration
	Renders   int64
	Failures  int64
	Last      time.Duration
	Average   time.Duration
	Slowest   time.Duration
	LastError string

	// LastFailed is true when the most recent render returned an error
	LastFailed bool
}

// NewRenderStats starts a session clock
func NewRenderStats() *RenderStats {
	return &RenderStats{startedAt: time.Now()}
}

// RecordRender records a successful render
func (s *RenderStats) RecordRender(duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renders++
	s.last = duration
	s.lastFailed = false

	if s.average == 0 {
		s.average = duration
	} else {
		// Exponential moving average
		s.average = time.Duration(float64(s.average)*(1-emaAlpha) + float64(duration)*emaAlpha)
	}

	if duration > s.slowest {
		s.slowest = duration
	}
}

// RecordFailure records a render that returned an error
func (s *RenderStats) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures++
	s.lastFailed = true
	if err != nil {
		s.lastError = err.Error()
	}
}

// Snapshot returns a copy of the current counters
func (s *RenderStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Uptime:     time.Since(s.startedAt),
		Renders:    s.renders,
		Failures:   s.failures,
		Last:       s.last,
		Average:    s.average,
		Slowest:    s.slowest,
		LastError:  s.lastError,
		LastFailed: s.lastFailed,
	}
}
