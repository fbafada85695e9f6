// Package tracker records results and manages the reviewable collections.
//
// Every mutation reads the whole collection, applies a pure transform and
// writes the whole collection back.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/logging"
	"github.com/verte-zerg/sattrack/internal/store"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Predicate selects items of a collection.
type Predicate[T any] func(T) bool

// Filter keeps the items matching every predicate. Nil predicates match
// everything. The result is never nil.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// Map returns a new slice with fn applied to every item.
func Map[T any](items []T, fn func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// DeleteByID drops the items whose id matches and keeps the order of the
// rest. removed reports how many items were dropped.
func DeleteByID[T any](items []T, id string, idOf func(T) string) (out []T, removed int) {
	out = make([]T, 0, len(items))
	for _, item := range items {
		if idOf(item) == id {
			removed++
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

// Count returns how many items match pred.
func Count[T any](items []T, pred Predicate[T]) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Options configures a Tracker.
type Options struct {
	Logger *zap.Logger
	Now    func() time.Time
	NewID  func() string
}

// Tracker reads and writes the persisted collections.
type Tracker struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New returns a Tracker over st.
func New(st store.Store, opts Options) *Tracker {
	t := &Tracker{
		store:  st,
		logger: logging.OrNop(opts.Logger),
		now:    opts.Now,
		newID:  opts.NewID,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	return t
}

// ParseTags splits a comma-separated tag list, trimming blanks.
func ParseTags(raw string) []string {
	return splitTrim(raw, ",")
}

// ParseChoices splits a "|"-separated choice list, trimming blanks.
func ParseChoices(raw string) []string {
	return splitTrim(raw, "|")
}

// JoinTags renders tags for editing.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func splitTrim(raw, sep string) []string {
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func uniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ErrAmbiguousID is returned when an id prefix matches more than one record.
var ErrAmbiguousID = errors.New("id prefix matches more than one record")

// ResolveID expands a unique id prefix to the full id.
func ResolveID(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound
	}
	match := ""
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%q: %w", prefix, ErrAmbiguousID)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%q: %w", prefix, ErrNotFound)
	}
	return match, nil
}

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
