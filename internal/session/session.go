// Package session stores the practice test chosen on the home screen.
package session

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/store"
)

var (
	// ErrBlankTestName is returned when the test name is empty after trimming.
	ErrBlankTestName = errors.New("test name must not be blank")
	// ErrInvalidSection is returned for an unknown section type.
	ErrInvalidSection = errors.New("section must be Math, English or Full Test")
)

// Start writes the session configuration consumed by the test flow. Nothing is
// written when the input is invalid.
func Start(ctx context.Context, st store.Store, testName string, section model.SectionType) (model.SessionConfig, error) {
	if strings.TrimSpace(testName) == "" {
		return model.SessionConfig{}, ErrBlankTestName
	}
	if !section.Valid() {
		return model.SessionConfig{}, ErrInvalidSection
	}
	cfg := model.SessionConfig{TestName: testName, SectionType: section}
	if err := store.SetJSON(ctx, st, store.KeyCurrentTest, cfg); err != nil {
		return model.SessionConfig{}, err
	}
	return cfg, nil
}

// Current returns the stored session configuration. ok is false when nothing
// usable is stored; read and decode failures are logged, not returned.
func Current(ctx context.Context, st store.Store, logger *zap.Logger) (model.SessionConfig, bool) {
	cfg, ok, err := store.GetJSON[model.SessionConfig](ctx, st, store.KeyCurrentTest)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to load current test", zap.Error(err))
		}
		return model.SessionConfig{}, false
	}
	if !ok || !cfg.SectionType.Valid() {
		return model.SessionConfig{}, false
	}
	return cfg, true
}
