// Package store provides the local key-value persistence used by every screen.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Keys of the persisted state.
const (
	KeyCurrentTest    = "currentTest"
	KeyScores         = "scores"
	KeyWrongQuestions = "wrongQuestions"
	KeyStudySessions  = "studySessions"
	KeyTheme          = "theme"
)

// Store is a flat key-value area. Get reports ok=false for a missing key.
// Writes replace the whole value; the last writer wins.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON reads key and decodes it into T.
func GetJSON[T any](ctx context.Context, st Store, key string) (T, bool, error) {
	var out T
	raw, ok, err := st.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return out, true, nil
}

// SetJSON encodes value and writes it under key.
func SetJSON(ctx context.Context, st Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return st.Set(ctx, key, raw)
}

// ReadCollection reads the JSON array stored under key. A missing key or a
// malformed value yields an empty collection and the decode problem is only
// logged. A failed read is returned so callers never rewrite the collection
// from a partial view.
func ReadCollection[T any](ctx context.Context, st Store, key string, logger *zap.Logger) ([]T, error) {
	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if logger != nil {
			logger.Warn("malformed collection, treating as empty", zap.String("key", key), zap.Error(err))
		}
		return []T{}, nil
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// LoadCollection is ReadCollection for read-only views: a failed read is
// logged and shows as an empty collection.
func LoadCollection[T any](ctx context.Context, st Store, key string, logger *zap.Logger) []T {
	items, err := ReadCollection[T](ctx, st, key, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to read collection", zap.String("key", key), zap.Error(err))
		}
		return []T{}
	}
	return items
}

// SaveCollection overwrites the whole collection stored under key.
func SaveCollection[T any](ctx context.Context, st Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return SetJSON(ctx, st, key, items)
}
