// Package stats summarizes and renders the recorded collections as text.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// ScoreSummary describes the scores of one section type.
type ScoreSummary struct {
	Section model.SectionType
	Count   int
	Best    int
	Latest  int
	Average float64
	// Recent is the mean of the last few scores.
	Recent float64
	Trend  string
}

// RecentWindow is the number of scores averaged into ScoreSummary.Recent.
const RecentWindow = 3

// SummarizeScores groups scores by section type in menu order. Sections
// without any scored entry are omitted.
func SummarizeScores(scores []model.ScoreEntry) []ScoreSummary {
	out := make([]ScoreSummary, 0, len(model.SectionTypes))
	for _, section := range model.SectionTypes {
		subset := tracker.Filter(scores, func(s model.ScoreEntry) bool { return s.Section == section })
		values := tracker.ScoreTrend(subset)
		if len(values) == 0 {
			continue
		}
		summary := ScoreSummary{
			Section: section,
			Count:   len(values),
			Latest:  int(values[len(values)-1]),
			Trend:   Sparkline(values),
		}
		var sum float64
		for _, v := range values {
			sum += v
			if int(v) > summary.Best {
				summary.Best = int(v)
			}
		}
		summary.Average = sum / float64(len(values))
		recent := MovingAverage(values, RecentWindow)
		summary.Recent = recent[len(recent)-1]
		out = append(out, summary)
	}
	return out
}
