package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

// minQuestionWidth keeps the question column readable on narrow terminals.
const minQuestionWidth = 24

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatScore renders the score cell of an entry. Full tests show the
// sub-scores next to the total.
func FormatScore(s model.ScoreEntry) string {
	total := "-"
	if s.Score != nil {
		total = strconv.Itoa(*s.Score)
	}
	if s.MathScore == nil && s.EnglishScore == nil {
		return total
	}
	return fmt.Sprintf("%s (M %s / E %s)", total, optionalInt(s.MathScore), optionalInt(s.EnglishScore))
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// RenderScores prints the score history followed by per-section summaries.
func RenderScores(w io.Writer, scores []model.ScoreEntry) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded.")
		return err
	}
	headers := []string{"ID", "Date", "Test Name", "Section", "Score"}
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{
			tracker.ShortID(s.ID),
			s.Date,
			s.TestName,
			string(s.Section),
			FormatScore(s),
		})
	}
	if err := writeLines(w, formatTable(headers, rows, nil)); err != nil {
		return err
	}

	summaries := SummarizeScores(scores)
	if len(summaries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	headers = []string{"Section", "Tests", "Best", "Latest", "Average", "Recent", "Trend"}
	rows = rows[:0]
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Section),
			strconv.Itoa(s.Count),
			strconv.Itoa(s.Best),
			strconv.Itoa(s.Latest),
			fmt.Sprintf("%.1f", s.Average),
			fmt.Sprintf("%.1f", s.Recent),
			s.Trend,
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

// RenderQuestions prints the question list fitted to width, followed by the
// review summary.
func RenderQuestions(w io.Writer, questions []model.WrongQuestion, width int) error {
	summary := tracker.Summarize(questions)
	if len(questions) == 0 {
		_, err := fmt.Fprintln(w, "No questions found.")
		return err
	}
	headers := []string{"ID", "Test Name", "Section", "Rev", "Tags", "Question"}
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		reviewed := ""
		if q.Reviewed {
			reviewed = "yes"
		}
		rows = append(rows, []string{
			tracker.ShortID(q.ID),
			q.TestName,
			q.Section,
			reviewed,
			strings.Join(q.Tags, ", "),
			q.Question,
		})
	}
	fitLastColumn(headers, rows, width)
	if err := writeLines(w, formatTable(headers, rows, nil)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d questions, %d reviewed, %d to review (%d%% reviewed)\n",
		summary.Total, summary.Reviewed, summary.Unreviewed, summary.ReviewedPercent())
	return err
}

// fitLastColumn truncates the last column so rows fit in width.
func fitLastColumn(headers []string, rows [][]string, width int) {
	last := len(headers) - 1
	used := 0
	for i := 0; i < last; i++ {
		colWidth := displayWidth(headers[i])
		for _, row := range rows {
			if w := displayWidth(row[i]); w > colWidth {
				colWidth = w
			}
		}
		used += colWidth + 2
	}
	avail := width - used
	if avail < minQuestionWidth {
		avail = minQuestionWidth
	}
	for _, row := range rows {
		row[last] = Truncate(row[last], avail)
	}
}

// RenderStudy prints the study log followed by the per-subject totals.
func RenderStudy(w io.Writer, sessions []model.StudySessionEntry) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No study sessions logged.")
		return err
	}
	headers := []string{"ID", "Date", "Subject", "Minutes", "Type", "Details"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			tracker.ShortID(s.ID),
			s.Date,
			string(s.Subject),
			strconv.Itoa(s.Minutes),
			string(s.Type),
			s.Details,
		})
	}
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{3: true})); err != nil {
		return err
	}
	totals := tracker.TotalStudy(sessions)
	_, err := fmt.Fprintf(w, "\nTotal: %s (Math %s, English %s, %d%% math)\n",
		tracker.FormatStudyTotal(totals.Total),
		tracker.FormatStudyTotal(totals.Math),
		tracker.FormatStudyTotal(totals.English),
		totals.MathPercent())
	return err
}
