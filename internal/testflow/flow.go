// Package testflow implements the timed multi-section practice test.
package testflow

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/sattrack/internal/model"
)

// Step names.
const (
	StepMath1    = "Math Section 1"
	StepMath2    = "Math Section 2"
	StepBreak    = "Break"
	StepEnglish1 = "English Section 1"
	StepEnglish2 = "English Section 2"
)

// ErrNoSession is returned when no valid session configuration exists. The
// caller should send the user back to the entry screen.
var ErrNoSession = errors.New("no practice test configured")

var sectionSteps = map[model.SectionType][]string{
	model.SectionMath:     {StepMath1, StepMath2},
	model.SectionEnglish:  {StepEnglish1, StepEnglish2},
	model.SectionFullTest: {StepMath1, StepMath2, StepBreak, StepEnglish1, StepEnglish2},
}

// Durations in seconds.
var stepDurations = map[string]int{
	StepMath1:    35 * 60,
	StepMath2:    35 * 60,
	StepEnglish1: 32 * 60,
	StepEnglish2: 32 * 60,
	StepBreak:    10 * 60,
}

// Step is one named, fixed-duration phase of a test.
type Step struct {
	Name     string
	Duration int
}

// Steps resolves the ordered step list for a section type.
func Steps(section model.SectionType) ([]Step, bool) {
	names, ok := sectionSteps[section]
	if !ok {
		return nil, false
	}
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		d, ok := stepDurations[name]
		if !ok {
			return nil, false
		}
		steps = append(steps, Step{Name: name, Duration: d})
	}
	return steps, true
}

// TotalDuration sums the step durations of a section type in seconds.
func TotalDuration(section model.SectionType) int {
	steps, _ := Steps(section)
	total := 0
	for _, s := range steps {
		total += s.Duration
	}
	return total
}

// Event reports what a Tick or Skip did.
type Event int

// Events.
const (
	// EventIgnored means the call had no effect: a stale tick or a finished flow.
	EventIgnored Event = iota
	EventTicked
	EventAdvanced
	EventFinished
)

// Flow walks the steps of one practice test. It is driven by a single tick
// source identified by a tag; ticks carrying any other tag are dropped, so
// installing a new source cancels the previous one.
type Flow struct {
	cfg      model.SessionConfig
	steps    []Step
	index    int
	timeLeft int
	finished bool
	tag      int
}

// New builds a flow at its first step. It fails with ErrNoSession when cfg is
// nil or names no known section type.
func New(cfg *model.SessionConfig) (*Flow, error) {
	if cfg == nil {
		return nil, ErrNoSession
	}
	steps, ok := Steps(cfg.SectionType)
	if !ok || len(steps) == 0 {
		return nil, fmt.Errorf("%w: unknown section %q", ErrNoSession, cfg.SectionType)
	}
	return &Flow{
		cfg:      *cfg,
		steps:    steps,
		timeLeft: steps[0].Duration,
	}, nil
}

// Start installs a fresh tick source and returns its tag. Any earlier source
// is cancelled.
func (f *Flow) Start() int {
	if f.finished {
		return 0
	}
	f.tag++
	return f.tag
}

// ActiveTag returns the tag of the live tick source, or 0 when none is live.
func (f *Flow) ActiveTag() int {
	if f.finished {
		return 0
	}
	return f.tag
}

// Tick applies one second from the tick source identified by tag.
func (f *Flow) Tick(tag int) Event {
	if f.finished || tag == 0 || tag != f.tag {
		return EventIgnored
	}
	f.timeLeft--
	if f.timeLeft > 0 {
		return EventTicked
	}
	return f.advance()
}

// Skip ends the current step immediately.
func (f *Flow) Skip() Event {
	if f.finished {
		return EventIgnored
	}
	return f.advance()
}

func (f *Flow) advance() Event {
	next := f.index + 1
	if next >= len(f.steps) {
		f.finished = true
		f.timeLeft = 0
		return EventFinished
	}
	f.index = next
	f.timeLeft = f.steps[next].Duration
	f.Start()
	return EventAdvanced
}

// Config returns the session the flow was built from.
func (f *Flow) Config() model.SessionConfig {
	return f.cfg
}

// Steps returns a copy of the resolved step list.
func (f *Flow) Steps() []Step {
	return append([]Step(nil), f.steps...)
}

// Index returns the current step index.
func (f *Flow) Index() int {
	return f.index
}

// Current returns the current step.
func (f *Flow) Current() Step {
	return f.steps[f.index]
}

// TimeLeft returns the remaining seconds of the current step.
func (f *Flow) TimeLeft() int {
	return f.timeLeft
}

// Finished reports whether the terminal state was reached.
func (f *Flow) Finished() bool {
	return f.finished
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
