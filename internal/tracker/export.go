package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/verte-zerg/sattrack/internal/model"
)

var questionCSVHeader = []string{
	"Test Name",
	"Section",
	"Question",
	"User Answer",
	"Correct Answer",
	"Reviewed",
	"Tags",
}

var scoreCSVHeader = []string{
	"Date",
	"Test Name",
	"Section",
	"Score",
	"Math",
	"English",
}

// WriteQuestionsCSV writes questions as CSV with tags joined by ";".
func WriteQuestionsCSV(w io.Writer, questions []model.WrongQuestion) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(questionCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, q := range questions {
		reviewed := "No"
		if q.Reviewed {
			reviewed = "Yes"
		}
		row := []string{
			q.TestName,
			q.Section,
			q.Question,
			q.UserAnswer,
			q.CorrectAnswer,
			reviewed,
			strings.Join(q.Tags, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteScoresCSV writes scores as CSV. Missing values are left blank.
func WriteScoresCSV(w io.Writer, scores []model.ScoreEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scoreCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, s := range scores {
		row := []string{
			s.Date,
			s.TestName,
			string(s.Section),
			optionalInt(s.Score),
			optionalInt(s.MathScore),
			optionalInt(s.EnglishScore),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
