package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/stopwatch"
	"github.com/verte-zerg/sattrack/internal/store"
)

const studyDateLayout = "2006-01-02 15:04"

var (
	// ErrInvalidMinutes is returned when a manual entry has no positive duration.
	ErrInvalidMinutes = errors.New("minutes must be greater than 0")
	// ErrMissingSubject is returned when no subject was chosen.
	ErrMissingSubject = errors.New("subject must be Math or English")
)

// StudySessions loads the study log, newest first.
func (t *Tracker) StudySessions(ctx context.Context) []model.StudySessionEntry {
	return store.LoadCollection[model.StudySessionEntry](ctx, t.store, store.KeyStudySessions, t.logger)
}

func (t *Tracker) readStudySessions(ctx context.Context) ([]model.StudySessionEntry, error) {
	return store.ReadCollection[model.StudySessionEntry](ctx, t.store, store.KeyStudySessions, t.logger)
}

// LogManual records a manually entered study session.
func (t *Tracker) LogManual(ctx context.Context, minutes int, subject model.Subject, details string) (model.StudySessionEntry, error) {
	if minutes <= 0 {
		return model.StudySessionEntry{}, ErrInvalidMinutes
	}
	return t.logStudy(ctx, minutes, subject, details, model.StudyManual)
}

// SaveStopwatch records a stopwatch-timed session, rounding to at least one minute.
func (t *Tracker) SaveStopwatch(ctx context.Context, elapsed time.Duration, subject model.Subject, details string) (model.StudySessionEntry, error) {
	return t.logStudy(ctx, stopwatch.Minutes(elapsed), subject, details, model.StudyStopwatch)
}

func (t *Tracker) logStudy(ctx context.Context, minutes int, subject model.Subject, details string, kind model.StudyType) (model.StudySessionEntry, error) {
	if subject != model.SubjectMath && subject != model.SubjectEnglish {
		return model.StudySessionEntry{}, ErrMissingSubject
	}
	entry := model.StudySessionEntry{
		ID:      t.newID(),
		Minutes: minutes,
		Details: strings.TrimSpace(details),
		Subject: subject,
		Date:    t.now().Format(studyDateLayout),
		Type:    kind,
	}
	current, err := t.readStudySessions(ctx)
	if err != nil {
		return model.StudySessionEntry{}, err
	}
	sessions := append([]model.StudySessionEntry{entry}, current...)
	if err := store.SaveCollection(ctx, t.store, store.KeyStudySessions, sessions); err != nil {
		return model.StudySessionEntry{}, fmt.Errorf("failed to save study sessions: %w", err)
	}
	t.logger.Info("study session logged",
		zap.String("subject", string(subject)),
		zap.Int("minutes", minutes),
		zap.String("type", string(kind)),
	)
	return entry, nil
}

// DeleteStudySession removes a study session.
func (t *Tracker) DeleteStudySession(ctx context.Context, id string) error {
	current, err := t.readStudySessions(ctx)
	if err != nil {
		return err
	}
	sessions, removed := DeleteByID(current, id, func(s model.StudySessionEntry) string { return s.ID })
	if removed == 0 {
		return fmt.Errorf("study session %s: %w", id, ErrNotFound)
	}
	if err := store.SaveCollection(ctx, t.store, store.KeyStudySessions, sessions); err != nil {
		return fmt.Errorf("failed to save study sessions: %w", err)
	}
	return nil
}

// StudyTotals aggregates study minutes per subject.
type StudyTotals struct {
	Math    int
	English int
	Total   int
}

// MathPercent returns the math share of math+english minutes, rounded.
func (s StudyTotals) MathPercent() int {
	sum := s.Math + s.English
	if sum == 0 {
		return 0
	}
	return int(math.Round(float64(s.Math) / float64(sum) * 100))
}

// TotalStudy sums the minutes of sessions.
func TotalStudy(sessions []model.StudySessionEntry) StudyTotals {
	var totals StudyTotals
	for _, s := range sessions {
		totals.Total += s.Minutes
		switch s.Subject {
		case model.SubjectMath:
			totals.Math += s.Minutes
		case model.SubjectEnglish:
			totals.English += s.Minutes
		}
	}
	return totals
}

// FormatStudyTotal renders minutes as "N min" below an hour and "X.Y hr" above.
func FormatStudyTotal(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%.1f hr", float64(minutes)/60)
}
