package clock

import (
	"fmt"
	"sync"
	"time"
)

// Reading is the state of a stopwatch at one instant.
type Reading struct {
	Running   bool   `json:"running"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Display   string `json:"display"`
}

// Stopwatch measures elapsed wall-clock time across start/stop cycles.
// Elapsed time is derived from a start reference rather than accumulated
// ticks, so it stays correct however rarely it is read.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	running bool
	start   time.Time
	elapsed time.Duration
}

// NewStopwatch creates a stopped stopwatch at zero.
func NewStopwatch() *Stopwatch {
	return NewStopwatchWithClock(time.Now)
}

// NewStopwatchWithClock creates a stopwatch reading time from now.
func NewStopwatchWithClock(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now}
}

// Start resumes counting. Starting a running stopwatch does nothing.
func (s *Stopwatch) Start() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.start = s.now().Add(-s.elapsed)
		s.running = true
	}
	return s.reading()
}

// Stop freezes the elapsed time.
func (s *Stopwatch) Stop() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.elapsed = s.now().Sub(s.start)
		s.running = false
	}
	return s.reading()
}

// Reset stops the stopwatch and clears the elapsed time.
func (s *Stopwatch) Reset() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.elapsed = 0
	return s.reading()
}

// Read returns the current state.
func (s *Stopwatch) Read() Reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reading()
}

// reading computes the state. Caller holds mu.
func (s *Stopwatch) reading() Reading {
	elapsed := s.elapsed
	if s.running {
		elapsed = s.now().Sub(s.start)
	}
	return Reading{
		Running:   s.running,
		ElapsedMs: elapsed.Milliseconds(),
		Display:   FormatElapsed(elapsed),
	}
}

// FormatElapsed renders d as HH:MM:SS, truncating to whole seconds.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
