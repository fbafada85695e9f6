package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/sattrack/internal/model"
)

func TestSummarizeScoresPerSection(t *testing.T) {
	scores := []model.ScoreEntry{
		{ID: "a", Section: model.SectionMath, Score: model.IntPtr(600)},
		{ID: "b", Section: model.SectionFullTest, Score: model.IntPtr(1250), MathScore: model.IntPtr(600), EnglishScore: model.IntPtr(650)},
		{ID: "c", Section: model.SectionMath, Score: model.IntPtr(700)},
		{ID: "d", Section: model.SectionMath},
	}
	summaries := SummarizeScores(scores)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	math := summaries[0]
	if math.Section != model.SectionMath || math.Count != 2 || math.Best != 700 || math.Latest != 700 {
		t.Fatalf("unexpected math summary: %+v", math)
	}
	if math.Average != 650 || math.Recent != 650 {
		t.Fatalf("unexpected math averages: %+v", math)
	}
	if math.Trend != " @" {
		t.Fatalf("unexpected trend %q", math.Trend)
	}
	if summaries[1].Section != model.SectionFullTest || summaries[1].Best != 1250 {
		t.Fatalf("unexpected full test summary: %+v", summaries[1])
	}
}

func TestFormatScore(t *testing.T) {
	full := model.ScoreEntry{Score: model.IntPtr(1250), MathScore: model.IntPtr(600), EnglishScore: model.IntPtr(650)}
	if got := FormatScore(full); got != "1250 (M 600 / E 650)" {
		t.Fatalf("unexpected full score %q", got)
	}
	if got := FormatScore(model.ScoreEntry{Score: model.IntPtr(640)}); got != "640" {
		t.Fatalf("unexpected score %q", got)
	}
	if got := FormatScore(model.ScoreEntry{}); got != "-" {
		t.Fatalf("unexpected empty score %q", got)
	}
}

func TestRenderScores(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderScores(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if buf.String() != "No scores recorded.\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	scores := []model.ScoreEntry{
		{ID: "0123456789abcdef", Date: "2024-05-01", TestName: "Practice 1", Section: model.SectionMath, Score: model.IntPtr(640)},
	}
	if err := RenderScores(&buf, scores); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"01234567", "Practice 1", "640", "Tests", "Math"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Fatalf("expected shortened id in output:\n%s", out)
	}
}

func TestRenderQuestionsFitsWidth(t *testing.T) {
	questions := []model.WrongQuestion{
		{ID: "q1", TestName: "T1", Section: "Math", Question: strings.Repeat("long question ", 20), Tags: []string{"algebra"}, Reviewed: true},
		{ID: "q2", TestName: "T1", Section: "Reading & Writing", Question: "short"},
	}
	var buf bytes.Buffer
	if err := RenderQuestions(&buf, questions, 100); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for _, line := range lines[:3] {
		if displayWidth(line) > 100 {
			t.Fatalf("line wider than terminal: %q", line)
		}
	}
	if !strings.Contains(buf.String(), "2 questions, 1 reviewed, 1 to review (50% reviewed)") {
		t.Fatalf("missing summary:\n%s", buf.String())
	}
}

func TestRenderStudyTotals(t *testing.T) {
	sessions := []model.StudySessionEntry{
		{ID: "s1", Date: "2024-05-01 10:00", Subject: model.SubjectMath, Minutes: 90, Type: model.StudyStopwatch},
		{ID: "s2", Date: "2024-05-02 10:00", Subject: model.SubjectEnglish, Minutes: 30, Type: model.StudyManual},
	}
	var buf bytes.Buffer
	if err := RenderStudy(&buf, sessions); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Total: 2.0 hr (Math 1.5 hr, English 30 min, 75% math)") {
		t.Fatalf("unexpected totals:\n%s", buf.String())
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
