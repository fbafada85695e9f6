package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/store"
)

// ErrBlankQuestion is returned when a question has no text.
var ErrBlankQuestion = errors.New("question text must not be blank")

// QuestionFilter narrows the question list. Empty fields match everything;
// set fields are combined with AND.
type QuestionFilter struct {
	Tag            string
	TestName       string
	Section        string
	OnlyUnreviewed bool
}

// Predicates returns the active predicates of the filter.
func (f QuestionFilter) Predicates() []Predicate[model.WrongQuestion] {
	var preds []Predicate[model.WrongQuestion]
	if f.OnlyUnreviewed {
		preds = append(preds, func(q model.WrongQuestion) bool { return !q.Reviewed })
	}
	if f.Tag != "" {
		tag := f.Tag
		preds = append(preds, func(q model.WrongQuestion) bool { return q.HasTag(tag) })
	}
	if f.TestName != "" {
		name := f.TestName
		preds = append(preds, func(q model.WrongQuestion) bool { return q.TestName == name })
	}
	if f.Section != "" {
		section := f.Section
		preds = append(preds, func(q model.WrongQuestion) bool { return q.Section == section })
	}
	return preds
}

// FilterQuestions applies f to questions.
func FilterQuestions(questions []model.WrongQuestion, f QuestionFilter) []model.WrongQuestion {
	return Filter(questions, f.Predicates()...)
}

// QuestionSummary holds the review counts of a question list.
type QuestionSummary struct {
	Total      int
	Reviewed   int
	Unreviewed int
}

// ReviewedPercent returns the reviewed share rounded to a whole percent.
func (s QuestionSummary) ReviewedPercent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Reviewed*100 + s.Total/2) / s.Total
}

// Summarize counts reviewed and unreviewed questions.
func Summarize(questions []model.WrongQuestion) QuestionSummary {
	reviewed := Count(questions, func(q model.WrongQuestion) bool { return q.Reviewed })
	return QuestionSummary{
		Total:      len(questions),
		Reviewed:   reviewed,
		Unreviewed: len(questions) - reviewed,
	}
}

// AvailableTags lists every tag in first-seen order.
func AvailableTags(questions []model.WrongQuestion) []string {
	var all []string
	for _, q := range questions {
		all = append(all, q.Tags...)
	}
	return uniqueInOrder(all)
}

// TestNames lists every test name in first-seen order.
func TestNames(questions []model.WrongQuestion) []string {
	names := make([]string, 0, len(questions))
	for _, q := range questions {
		names = append(names, q.TestName)
	}
	return uniqueInOrder(names)
}

// Sections lists every section in first-seen order.
func Sections(questions []model.WrongQuestion) []string {
	sections := make([]string, 0, len(questions))
	for _, q := range questions {
		sections = append(sections, q.Section)
	}
	return uniqueInOrder(sections)
}

// Questions loads all recorded wrong questions.
func (t *Tracker) Questions(ctx context.Context) []model.WrongQuestion {
	return store.LoadCollection[model.WrongQuestion](ctx, t.store, store.KeyWrongQuestions, t.logger)
}

func (t *Tracker) readQuestions(ctx context.Context) ([]model.WrongQuestion, error) {
	return store.ReadCollection[model.WrongQuestion](ctx, t.store, store.KeyWrongQuestions, t.logger)
}

func (t *Tracker) saveQuestions(ctx context.Context, questions []model.WrongQuestion) error {
	if err := store.SaveCollection(ctx, t.store, store.KeyWrongQuestions, questions); err != nil {
		return fmt.Errorf("failed to save questions: %w", err)
	}
	return nil
}

// updateQuestion rewrites the collection with fn applied to the question id.
func (t *Tracker) updateQuestion(ctx context.Context, id string, fn func(model.WrongQuestion) model.WrongQuestion) (model.WrongQuestion, error) {
	questions, err := t.readQuestions(ctx)
	if err != nil {
		return model.WrongQuestion{}, err
	}
	var updated model.WrongQuestion
	found := false
	questions = Map(questions, func(q model.WrongQuestion) model.WrongQuestion {
		if q.ID != id {
			return q
		}
		found = true
		updated = fn(q)
		return updated
	})
	if !found {
		return model.WrongQuestion{}, fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	if err := t.saveQuestions(ctx, questions); err != nil {
		return model.WrongQuestion{}, err
	}
	return updated, nil
}

// ToggleReviewed flips the reviewed flag of a question.
func (t *Tracker) ToggleReviewed(ctx context.Context, id string) (model.WrongQuestion, error) {
	return t.updateQuestion(ctx, id, func(q model.WrongQuestion) model.WrongQuestion {
		q.Reviewed = !q.Reviewed
		return q
	})
}

// EditTags replaces the tags of a question with the parsed comma list.
func (t *Tracker) EditTags(ctx context.Context, id, raw string) (model.WrongQuestion, error) {
	tags := ParseTags(raw)
	return t.updateQuestion(ctx, id, func(q model.WrongQuestion) model.WrongQuestion {
		q.Tags = tags
		return q
	})
}

// DeleteQuestion removes a question.
func (t *Tracker) DeleteQuestion(ctx context.Context, id string) error {
	current, err := t.readQuestions(ctx)
	if err != nil {
		return err
	}
	questions, removed := DeleteByID(current, id, func(q model.WrongQuestion) string { return q.ID })
	if removed == 0 {
		return fmt.Errorf("question %s: %w", id, ErrNotFound)
	}
	if err := t.saveQuestions(ctx, questions); err != nil {
		return err
	}
	t.logger.Info("question deleted", zap.String("id", id))
	return nil
}

// ManualQuestion is a question added from the review screen, not tied to a test.
type ManualQuestion struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
	Section       string
	Tags          string
	Choices       string
}

// AddQuestion prepends a manually entered question.
func (t *Tracker) AddQuestion(ctx context.Context, in ManualQuestion) (model.WrongQuestion, error) {
	if strings.TrimSpace(in.Question) == "" {
		return model.WrongQuestion{}, ErrBlankQuestion
	}
	choices := ParseChoices(in.Choices)
	qType := model.QuestionMultiple
	if len(choices) == 0 {
		qType = model.QuestionWritten
	}
	q := model.WrongQuestion{
		ID:            t.newID(),
		TestName:      "",
		Question:      in.Question,
		Section:       in.Section,
		Choices:       choices,
		UserAnswer:    in.UserAnswer,
		CorrectAnswer: in.CorrectAnswer,
		Type:          qType,
		Reviewed:      false,
		Tags:          ParseTags(in.Tags),
	}
	current, err := t.readQuestions(ctx)
	if err != nil {
		return model.WrongQuestion{}, err
	}
	questions := append([]model.WrongQuestion{q}, current...)
	if err := t.saveQuestions(ctx, questions); err != nil {
		return model.WrongQuestion{}, err
	}
	return q, nil
}
