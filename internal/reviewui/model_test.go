package reviewui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/store"
	"github.com/verte-zerg/sattrack/internal/theme"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

func newTestModel(t *testing.T, filter tracker.QuestionFilter, tab int) (*Model, *tracker.Tracker) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	questions := []model.WrongQuestion{
		{ID: "q1", TestName: "PT 1", Section: "Math", Question: "Solve 2x = 8", Tags: []string{"algebra"}},
		{ID: "q2", TestName: "PT 1", Section: "English", Question: "Pick the best transition", Choices: []string{"A", "B"}, Tags: []string{"grammar"}, Reviewed: true},
		{ID: "q3", TestName: "PT 2", Section: "Math", Question: "Area of a circle", Tags: []string{"geometry", "algebra"}},
	}
	scores := []model.ScoreEntry{
		{ID: "s1", Date: "2025-03-01", TestName: "PT 1", Section: model.SectionMath, Score: model.IntPtr(640)},
		{ID: "s2", Date: "2025-03-08", TestName: "PT 2", Section: model.SectionMath, Score: model.IntPtr(700)},
	}
	if err := store.SaveCollection(ctx, st, store.KeyWrongQuestions, questions); err != nil {
		t.Fatalf("seed questions: %v", err)
	}
	if err := store.SaveCollection(ctx, st, store.KeyScores, scores); err != nil {
		t.Fatalf("seed scores: %v", err)
	}
	tr := tracker.New(st, tracker.Options{})
	m := NewModel(tr, filter, tab, theme.PaletteFor(model.ThemeLight))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, tr
}

func press(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func enter(m *Model) {
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func visibleIDs(m *Model) []string {
	ids := make([]string, 0, len(m.visibleQuestions))
	for _, q := range m.visibleQuestions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestInitialFilterIsApplied(t *testing.T) {
	m, _ := newTestModel(t, tracker.QuestionFilter{Tag: "algebra"}, TabQuestions)
	if got := strings.Join(visibleIDs(m), ","); got != "q1,q3" {
		t.Fatalf("unexpected visible questions %s", got)
	}
	view := m.View()
	if !strings.Contains(view, "2 of 3 questions") || !strings.Contains(view, "tag=algebra") {
		t.Fatalf("unexpected header:\n%s", view)
	}
}

func TestToggleReviewedPersists(t *testing.T) {
	m, tr := newTestModel(t, tracker.QuestionFilter{}, TabQuestions)
	press(m, "r")
	got := tr.Questions(context.Background())
	if !got[0].Reviewed {
		t.Fatalf("expected first question reviewed")
	}
	if m.status != "Marked as reviewed." {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestUnreviewedOnlyHidesToggledQuestion(t *testing.T) {
	m, _ := newTestModel(t, tracker.QuestionFilter{OnlyUnreviewed: true}, TabQuestions)
	if got := strings.Join(visibleIDs(m), ","); got != "q1,q3" {
		t.Fatalf("unexpected visible questions %s", got)
	}
	press(m, "r")
	if got := strings.Join(visibleIDs(m), ","); got != "q3" {
		t.Fatalf("expected reviewed question to leave the view, got %s", got)
	}
}

func TestFilterForm(t *testing.T) {
	m, _ := newTestModel(t, tracker.QuestionFilter{}, TabQuestions)
	press(m, "/")
	if m.mode != modeFilter {
		t.Fatalf("expected filter mode")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	press(m, "PT 2")
	enter(m)
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after apply")
	}
	if got := strings.Join(visibleIDs(m), ","); got != "q3" {
		t.Fatalf("unexpected visible questions %s", got)
	}
	if len(m.visibleScores) != 1 || m.visibleScores[0].ID != "s2" {
		t.Fatalf("expected test name filter on scores, got %+v", m.visibleScores)
	}
	press(m, "c")
	if len(m.visibleQuestions) != 3 {
		t.Fatalf("expected cleared filter")
	}
}

func TestEditTags(t *testing.T) {
	m, tr := newTestModel(t, tracker.QuestionFilter{}, TabQuestions)
	press(m, "t")
	if m.mode != modeTags || m.tagInput.Value() != "algebra" {
		t.Fatalf("expected tag editor with current tags, got %q", m.tagInput.Value())
	}
	m.tagInput.SetValue(" linear ,algebra, ")
	enter(m)
	got := tr.Questions(context.Background())[0].Tags
	if strings.Join(got, ",") != "linear,algebra" {
		t.Fatalf("unexpected tags %v", got)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, tr := newTestModel(t, tracker.QuestionFilter{}, TabQuestions)
	press(m, "d")
	if !strings.Contains(m.View(), "Delete question?") {
		t.Fatalf("expected confirmation modal")
	}
	press(m, "n")
	if len(tr.Questions(context.Background())) != 3 {
		t.Fatalf("expected nothing deleted")
	}
	press(m, "d")
	press(m, "y")
	got := tr.Questions(context.Background())
	if len(got) != 2 || got[0].ID != "q2" {
		t.Fatalf("unexpected questions after delete: %+v", got)
	}
}

func TestDeleteScoreFromScoresTab(t *testing.T) {
	m, tr := newTestModel(t, tracker.QuestionFilter{}, TabQuestions)
	press(m, "l")
	if m.activeTab != TabScores {
		t.Fatalf("expected scores tab")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	press(m, "d")
	press(m, "y")
	got := tr.Scores(context.Background())
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("unexpected scores after delete: %+v", got)
	}
}

func TestStudyTabRendersLog(t *testing.T) {
	m, _ := newTestModel(t, tracker.QuestionFilter{}, TabStudy)
	if !strings.Contains(m.View(), "No study sessions logged.") {
		t.Fatalf("unexpected study view:\n%s", m.View())
	}
}
