package reviewui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/stats"
)

func questionColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Rev", Width: 3},
		{Title: "Section", Width: 8},
		{Title: "Test Name", Width: 14},
		{Title: "Tags", Width: 18},
		{Title: "Question", Width: 20},
	}
	return growLast(cols, width)
}

func scoreColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Section", Width: 9},
		{Title: "Score", Width: 22},
		{Title: "Test Name", Width: 16},
	}
	return growLast(cols, width)
}

// growLast widens the last column to fill width. Every cell carries one
// column of right padding.
func growLast(cols []table.Column, width int) []table.Column {
	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.Width + 1
	}
	last := &cols[len(cols)-1]
	if rest := width - used - 1; rest > last.Width {
		last.Width = rest
	}
	return cols
}

func questionRows(questions []model.WrongQuestion) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for _, q := range questions {
		reviewed := "[ ]"
		if q.Reviewed {
			reviewed = "[x]"
		}
		testName := q.TestName
		if testName == "" {
			testName = "-"
		}
		rows = append(rows, table.Row{
			reviewed,
			q.Section,
			testName,
			strings.Join(q.Tags, ", "),
			strings.Join(strings.Fields(q.Question), " "),
		})
	}
	return rows
}

func scoreRows(scores []model.ScoreEntry) []table.Row {
	rows := make([]table.Row, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, table.Row{
			s.Date,
			string(s.Section),
			stats.FormatScore(s),
			s.TestName,
		})
	}
	return rows
}
