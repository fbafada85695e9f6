// Package theme persists the dark/light preference and maps it to styles.
package theme

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/store"
)

// Load returns the stored theme. Anything other than "dark" is light.
func Load(ctx context.Context, st store.Store) model.Theme {
	value, ok, err := store.GetJSON[string](ctx, st, store.KeyTheme)
	if err != nil || !ok {
		return model.ThemeLight
	}
	if model.Theme(value) == model.ThemeDark {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// Save persists t.
func Save(ctx context.Context, st store.Store, t model.Theme) error {
	if t != model.ThemeDark && t != model.ThemeLight {
		return fmt.Errorf("unknown theme %q", t)
	}
	return store.SetJSON(ctx, st, store.KeyTheme, string(t))
}

// Toggle flips the stored theme and returns the new value.
func Toggle(ctx context.Context, st store.Store) (model.Theme, error) {
	next := model.ThemeDark
	if Load(ctx, st) == model.ThemeDark {
		next = model.ThemeLight
	}
	if err := Save(ctx, st, next); err != nil {
		return "", err
	}
	return next, nil
}

// Parse matches "dark" or "light" case-insensitively.
func Parse(input string) (model.Theme, bool) {
	switch model.Theme(strings.ToLower(strings.TrimSpace(input))) {
	case model.ThemeDark:
		return model.ThemeDark, true
	case model.ThemeLight:
		return model.ThemeLight, true
	default:
		return "", false
	}
}

// Palette holds the colors used by the screens.
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Danger  lipgloss.Color
	Success lipgloss.Color
	Border  lipgloss.Color
}

// PaletteFor returns the palette of t.
func PaletteFor(t model.Theme) Palette {
	if t == model.ThemeDark {
		return Palette{
			Text:    lipgloss.Color("#F0F0F0"),
			Muted:   lipgloss.Color("#8C8C8C"),
			Accent:  lipgloss.Color("#C89A3A"),
			Danger:  lipgloss.Color("#FF4D4F"),
			Success: lipgloss.Color("#52C41A"),
			Border:  lipgloss.Color("#4A4A4A"),
		}
	}
	return Palette{
		Text:    lipgloss.Color("#1F1F1F"),
		Muted:   lipgloss.Color("#6E6E6E"),
		Accent:  lipgloss.Color("#1F6FEB"),
		Danger:  lipgloss.Color("#CF1322"),
		Success: lipgloss.Color("#389E0D"),
		Border:  lipgloss.Color("#B8B8B8"),
	}
}
