// Package stopwatch times study sessions with pause and resume.
package stopwatch

import (
	"fmt"
	"math"
	"time"
)

// State of the stopwatch.
type State int

// States.
const (
	Idle State = iota
	Running
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "idle"
	}
}

// SampleInterval is how often a running stopwatch should be redrawn.
const SampleInterval = 100 * time.Millisecond

// Stopwatch measures elapsed wall-clock time. While running, elapsed is
// now - start, where start was moved back by the time already accumulated, so
// pausing and resuming keeps the total.
type Stopwatch struct {
	now     func() time.Time
	state   State
	start   time.Time
	elapsed time.Duration
}

// New returns an idle stopwatch. A nil clock uses time.Now.
func New(now func() time.Time) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now}
}

// Start begins or resumes timing. Starting an ended stopwatch resumes it.
func (s *Stopwatch) Start() {
	if s.state == Running {
		return
	}
	s.start = s.now().Add(-s.elapsed)
	s.state = Running
}

// Pause stops timing and keeps the accumulated time.
func (s *Stopwatch) Pause() {
	if s.state != Running {
		return
	}
	s.elapsed = s.now().Sub(s.start)
	s.state = Paused
}

// End stops timing for good; the session can then be saved.
func (s *Stopwatch) End() {
	if s.state == Running {
		s.elapsed = s.now().Sub(s.start)
	}
	if s.state == Idle && s.elapsed == 0 {
		return
	}
	s.state = Ended
}

// Reset clears all transient state.
func (s *Stopwatch) Reset() {
	s.state = Idle
	s.start = time.Time{}
	s.elapsed = 0
}

// State returns the current state.
func (s *Stopwatch) State() State {
	return s.state
}

// Elapsed returns the accumulated time, sampling the clock while running.
func (s *Stopwatch) Elapsed() time.Duration {
	if s.state == Running {
		return s.now().Sub(s.start)
	}
	return s.elapsed
}

// Minutes converts elapsed time to whole minutes, rounding to the nearest
// minute with a floor of one.
func Minutes(elapsed time.Duration) int {
	m := int(math.Round(elapsed.Minutes()))
	if m < 1 {
		return 1
	}
	return m
}

// FormatElapsed renders elapsed time as MM:SS.
func FormatElapsed(elapsed time.Duration) string {
	total := int(elapsed / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
