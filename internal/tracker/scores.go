package tracker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/store"
)

// Scores loads all recorded scores in insertion order.
func (t *Tracker) Scores(ctx context.Context) []model.ScoreEntry {
	return store.LoadCollection[model.ScoreEntry](ctx, t.store, store.KeyScores, t.logger)
}

func (t *Tracker) readScores(ctx context.Context) ([]model.ScoreEntry, error) {
	return store.ReadCollection[model.ScoreEntry](ctx, t.store, store.KeyScores, t.logger)
}

// FilterScores keeps the scores of one test. An empty name keeps everything.
func FilterScores(scores []model.ScoreEntry, testName string) []model.ScoreEntry {
	if testName == "" {
		return Filter(scores)
	}
	return Filter(scores, func(s model.ScoreEntry) bool { return s.TestName == testName })
}

// DeleteScore removes a score entry.
func (t *Tracker) DeleteScore(ctx context.Context, id string) error {
	current, err := t.readScores(ctx)
	if err != nil {
		return err
	}
	scores, removed := DeleteByID(current, id, func(s model.ScoreEntry) string { return s.ID })
	if removed == 0 {
		return fmt.Errorf("score %s: %w", id, ErrNotFound)
	}
	if err := store.SaveCollection(ctx, t.store, store.KeyScores, scores); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	t.logger.Info("score deleted", zap.String("id", id))
	return nil
}

// ScoreTrend returns the total scores of entries in order, skipping entries
// without a score.
func ScoreTrend(scores []model.ScoreEntry) []float64 {
	out := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s.Score != nil {
			out = append(out, float64(*s.Score))
		}
	}
	return out
}
