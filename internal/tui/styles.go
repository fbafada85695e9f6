// Package tui provides the Bubble Tea screens for the timed test, the study
// stopwatch and the results form.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sattrack/internal/theme"
)

type styles struct {
	title   lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	danger  lipgloss.Style
	success lipgloss.Style
	clock   lipgloss.Style
	footer  lipgloss.Style
	box     lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	return styles{
		title:   lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		text:    lipgloss.NewStyle().Foreground(p.Text),
		muted:   lipgloss.NewStyle().Foreground(p.Muted),
		accent:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		danger:  lipgloss.NewStyle().Foreground(p.Danger),
		success: lipgloss.NewStyle().Foreground(p.Success),
		clock: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Border),
		footer: lipgloss.NewStyle().Foreground(p.Muted),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Border).
			Padding(1, 2),
	}
}

// place centers content, keeping a one-line footer at the bottom when there
// is room for it.
func place(width, height int, content, footer string) string {
	if width == 0 || height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	if footer == "" || height < 3 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func percent(done, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", done*100/total)
}
