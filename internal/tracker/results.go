package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/session"
	"github.com/verte-zerg/sattrack/internal/store"
)

// Fallbacks used when results are entered without a started test.
const (
	DefaultTestName = "Unnamed Test"
	DefaultSection  = model.SectionFullTest
)

var (
	// ErrMissingScore is returned when the score fields for the section are empty.
	ErrMissingScore = errors.New("score is required")
	// ErrNegativeScore is returned for scores below zero.
	ErrNegativeScore = errors.New("scores must not be negative")
	// ErrMissingQuestionSection is returned when a wrong question has no section.
	ErrMissingQuestionSection = errors.New("question section is required")
)

// ScoreInput carries the scores typed on the results screen. Full tests use
// Math and English; other sections use Score.
type ScoreInput struct {
	Score   *int
	Math    *int
	English *int
}

// QuestionInput is a wrong question typed on the results screen.
type QuestionInput struct {
	Section        model.Subject
	Question       string
	MultipleChoice bool
	Choices        []string
	UserAnswer     string
	CorrectAnswer  string
	Tags           string
}

// ResultDraft collects the results of one practice test before they are saved.
type ResultDraft struct {
	tracker  *Tracker
	TestName string
	Section  model.SectionType
	pending  []model.WrongQuestion
}

// NewResultDraft starts a draft for the current test, falling back to an
// unnamed full test when none was started.
func (t *Tracker) NewResultDraft(ctx context.Context) *ResultDraft {
	d := &ResultDraft{tracker: t, TestName: DefaultTestName, Section: DefaultSection}
	if cfg, ok := session.Current(ctx, t.store, t.logger); ok && strings.TrimSpace(cfg.TestName) != "" {
		d.TestName = cfg.TestName
		d.Section = cfg.SectionType
	}
	return d
}

// Pending returns the wrong questions added so far.
func (d *ResultDraft) Pending() []model.WrongQuestion {
	return append([]model.WrongQuestion(nil), d.pending...)
}

// AddQuestion queues a wrong question. Written answers exist only for Math;
// English questions are always multiple choice.
func (d *ResultDraft) AddQuestion(in QuestionInput) (model.WrongQuestion, error) {
	if in.Section == "" {
		return model.WrongQuestion{}, ErrMissingQuestionSection
	}
	if strings.TrimSpace(in.Question) == "" {
		return model.WrongQuestion{}, ErrBlankQuestion
	}
	multiple := in.MultipleChoice || in.Section == model.SubjectEnglish
	q := model.WrongQuestion{
		ID:            d.tracker.newID(),
		TestName:      d.TestName,
		Question:      in.Question,
		Section:       string(in.Section),
		UserAnswer:    in.UserAnswer,
		CorrectAnswer: in.CorrectAnswer,
		Type:          model.QuestionWritten,
		Reviewed:      false,
		Tags:          ParseTags(in.Tags),
	}
	if multiple {
		q.Type = model.QuestionMultiple
		q.Choices = Filter(in.Choices, func(c string) bool { return strings.TrimSpace(c) != "" })
	}
	d.pending = append(d.pending, q)
	return q, nil
}

// BuildScore validates the input and returns the entry that Submit stores.
func (d *ResultDraft) BuildScore(in ScoreInput) (model.ScoreEntry, error) {
	entry := model.ScoreEntry{
		ID:       d.tracker.newID(),
		Date:     d.tracker.now().UTC().Format("2006-01-02"),
		TestName: d.TestName,
		Section:  d.Section,
	}
	if d.Section == model.SectionFullTest {
		if in.Math == nil || in.English == nil {
			return model.ScoreEntry{}, ErrMissingScore
		}
		if *in.Math < 0 || *in.English < 0 {
			return model.ScoreEntry{}, ErrNegativeScore
		}
		entry.MathScore = model.IntPtr(*in.Math)
		entry.EnglishScore = model.IntPtr(*in.English)
		entry.Score = model.IntPtr(*in.Math + *in.English)
		return entry, nil
	}
	if in.Score == nil {
		return model.ScoreEntry{}, ErrMissingScore
	}
	if *in.Score < 0 {
		return model.ScoreEntry{}, ErrNegativeScore
	}
	entry.Score = model.IntPtr(*in.Score)
	return entry, nil
}

// Submit appends the score and the queued questions to their collections.
func (d *ResultDraft) Submit(ctx context.Context, in ScoreInput) (model.ScoreEntry, error) {
	entry, err := d.BuildScore(in)
	if err != nil {
		return model.ScoreEntry{}, err
	}
	t := d.tracker

	// Both collections are read before either is written.
	scores, err := t.readScores(ctx)
	if err != nil {
		return model.ScoreEntry{}, err
	}
	var questions []model.WrongQuestion
	if len(d.pending) > 0 {
		if questions, err = t.readQuestions(ctx); err != nil {
			return model.ScoreEntry{}, err
		}
	}

	scores = append(scores, entry)
	if err := store.SaveCollection(ctx, t.store, store.KeyScores, scores); err != nil {
		return model.ScoreEntry{}, fmt.Errorf("failed to save scores: %w", err)
	}
	if len(d.pending) > 0 {
		questions = append(questions, d.pending...)
		if err := t.saveQuestions(ctx, questions); err != nil {
			return model.ScoreEntry{}, err
		}
	}
	t.logger.Info("results submitted",
		zap.String("test", entry.TestName),
		zap.String("section", string(entry.Section)),
		zap.Int("questions", len(d.pending)),
	)
	d.pending = nil
	return entry, nil
}
