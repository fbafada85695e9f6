package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/testflow"
	"github.com/verte-zerg/sattrack/internal/theme"
)

func newTestCountdown(t *testing.T, section model.SectionType) *TestModel {
	t.Helper()
	flow, err := testflow.New(&model.SessionConfig{TestName: "PT 1", SectionType: section})
	if err != nil {
		t.Fatalf("new flow: %v", err)
	}
	return NewTestModel(flow, theme.PaletteFor(model.ThemeLight))
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestCountdownTicksActiveSource(t *testing.T) {
	m := newTestCountdown(t, model.SectionMath)
	if cmd := m.Init(); cmd == nil {
		t.Fatalf("expected tick command from Init")
	}
	tag := m.flow.ActiveTag()
	_, cmd := m.Update(tickMsg{tag: tag})
	if cmd == nil {
		t.Fatalf("expected tick to be rescheduled")
	}
	if got := m.flow.TimeLeft(); got != 35*60-1 {
		t.Fatalf("expected one second elapsed, got %d", got)
	}
}

func TestCountdownDropsStaleTickAfterSkip(t *testing.T) {
	m := newTestCountdown(t, model.SectionMath)
	m.Init()
	stale := m.flow.ActiveTag()

	_, cmd := m.Update(keyRunes("s"))
	if cmd == nil {
		t.Fatalf("expected a new tick source after skip")
	}
	if m.flow.Index() != 1 {
		t.Fatalf("expected second step, got %d", m.flow.Index())
	}
	before := m.flow.TimeLeft()
	_, cmd = m.Update(tickMsg{tag: stale})
	if cmd != nil {
		t.Fatalf("expected stale tick not to reschedule")
	}
	if m.flow.TimeLeft() != before {
		t.Fatalf("expected stale tick to be ignored")
	}
}

func TestCountdownSkipLastStepQuitsOnce(t *testing.T) {
	m := newTestCountdown(t, model.SectionEnglish)
	m.Init()
	m.Update(keyRunes("s"))
	_, cmd := m.Update(keyRunes("s"))
	if !isQuit(cmd) {
		t.Fatalf("expected quit after the final step")
	}
	if !m.Finished() || m.Aborted() {
		t.Fatalf("expected finished, not aborted")
	}
	_, cmd = m.Update(keyRunes("s"))
	if cmd != nil {
		t.Fatalf("expected no command after finish")
	}
	if !strings.Contains(m.View(), "Test complete") {
		t.Fatalf("unexpected view: %s", m.View())
	}
}

func TestCountdownQuitNeedsConfirmation(t *testing.T) {
	m := newTestCountdown(t, model.SectionFullTest)
	m.Init()
	if _, cmd := m.Update(keyRunes("q")); cmd != nil {
		t.Fatalf("expected confirmation before quitting")
	}
	if !strings.Contains(m.View(), "Quit the test?") {
		t.Fatalf("expected confirmation prompt in view")
	}
	if _, cmd := m.Update(keyRunes("n")); cmd != nil || m.confirmQuit {
		t.Fatalf("expected confirmation to be dismissed")
	}
	m.Update(keyRunes("q"))
	_, cmd := m.Update(keyRunes("y"))
	if !isQuit(cmd) || !m.Aborted() {
		t.Fatalf("expected aborted quit")
	}
}

func TestCountdownViewShowsStep(t *testing.T) {
	m := newTestCountdown(t, model.SectionFullTest)
	view := m.View()
	for _, want := range []string{"PT 1", "Step 1 of 5: Math Section 1", "35:00", "Break"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}
