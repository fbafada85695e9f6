package testflow

import (
	"errors"
	"testing"

	"github.com/verte-zerg/sattrack/internal/model"
)

func newFlow(t *testing.T, section model.SectionType) *Flow {
	t.Helper()
	f, err := New(&model.SessionConfig{TestName: "PT", SectionType: section})
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}
	return f
}

func TestEveryStepHasDuration(t *testing.T) {
	for section, names := range sectionSteps {
		for _, name := range names {
			if _, ok := stepDurations[name]; !ok {
				t.Fatalf("step %q of %s has no duration", name, section)
			}
		}
	}
}

func TestTotalDurations(t *testing.T) {
	cases := map[model.SectionType]int{
		model.SectionMath:     4200,
		model.SectionEnglish:  3840,
		model.SectionFullTest: 8640,
	}
	for section, want := range cases {
		if got := TotalDuration(section); got != want {
			t.Fatalf("%s total = %d, want %d", section, got, want)
		}
		steps, _ := Steps(section)
		sum := 0
		for _, s := range steps {
			sum += s.Duration
		}
		if sum != want {
			t.Fatalf("%s step sum = %d, want %d", section, sum, want)
		}
	}
}

func TestFullTestStepOrder(t *testing.T) {
	steps, ok := Steps(model.SectionFullTest)
	if !ok {
		t.Fatalf("expected full test steps")
	}
	want := []string{StepMath1, StepMath2, StepBreak, StepEnglish1, StepEnglish2}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i, s := range steps {
		if s.Name != want[i] {
			t.Fatalf("step %d = %q, want %q", i, s.Name, want[i])
		}
	}
}

func TestNewWithoutSessionFails(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	_, err := New(&model.SessionConfig{TestName: "PT"})
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for missing section, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	f := newFlow(t, model.SectionEnglish)
	if f.Index() != 0 {
		t.Fatalf("expected index 0, got %d", f.Index())
	}
	if f.TimeLeft() != 1920 {
		t.Fatalf("expected 1920s, got %d", f.TimeLeft())
	}
	if f.Current().Name != StepEnglish1 {
		t.Fatalf("unexpected first step %q", f.Current().Name)
	}
	if f.ActiveTag() != 0 {
		t.Fatalf("expected no tick source before Start")
	}
}

func TestTickCountsDownAndAdvancesOnExpiry(t *testing.T) {
	f := newFlow(t, model.SectionMath)
	tag := f.Start()
	if ev := f.Tick(tag); ev != EventTicked {
		t.Fatalf("expected tick, got %v", ev)
	}
	if f.TimeLeft() != 2099 {
		t.Fatalf("expected 2099, got %d", f.TimeLeft())
	}
	var ev Event
	for f.Index() == 0 {
		ev = f.Tick(f.ActiveTag())
	}
	if ev != EventAdvanced {
		t.Fatalf("expected advance on expiry, got %v", ev)
	}
	if f.TimeLeft() != 2100 {
		t.Fatalf("expected reset to 2100, got %d", f.TimeLeft())
	}
	if f.ActiveTag() == tag {
		t.Fatalf("expected a fresh tick source after advancing")
	}
}

func TestSkipFinalStepFinishesOnce(t *testing.T) {
	f := newFlow(t, model.SectionMath)
	f.Start()
	if ev := f.Skip(); ev != EventAdvanced {
		t.Fatalf("expected advance, got %v", ev)
	}
	if ev := f.Skip(); ev != EventFinished {
		t.Fatalf("expected finish, got %v", ev)
	}
	finishes := 0
	for i := 0; i < 3; i++ {
		if f.Skip() == EventFinished {
			finishes++
		}
		if f.Tick(f.ActiveTag()) == EventFinished {
			finishes++
		}
	}
	if finishes != 0 {
		t.Fatalf("expected no further finish events, got %d", finishes)
	}
	if !f.Finished() || f.ActiveTag() != 0 {
		t.Fatalf("expected finished flow with no tick source")
	}
	if f.Start() != 0 {
		t.Fatalf("finished flow must not install a tick source")
	}
}

func TestDoubleSkipCancelsStaleTickSources(t *testing.T) {
	f := newFlow(t, model.SectionFullTest)
	first := f.Start()
	f.Skip()
	second := f.ActiveTag()
	f.Skip()
	third := f.ActiveTag()
	if f.Current().Name != StepBreak {
		t.Fatalf("expected break step, got %q", f.Current().Name)
	}
	before := f.TimeLeft()

	// Ticks from all three sources arrive within one interval.
	for _, tag := range []int{first, second, third} {
		f.Tick(tag)
	}
	if got := before - f.TimeLeft(); got != 1 {
		t.Fatalf("expected a single decrement, got %d", got)
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		2100: "35:00",
		61:   "01:01",
		0:    "00:00",
		-5:   "00:00",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", in, got, want)
		}
	}
}
