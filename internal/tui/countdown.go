package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sattrack/internal/testflow"
	"github.com/verte-zerg/sattrack/internal/theme"
)

type tickMsg struct {
	tag int
}

func tickCmd(tag int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{tag: tag}
	})
}

// TestModel runs the countdown of a practice test.
type TestModel struct {
	flow   *testflow.Flow
	styles styles

	width  int
	height int

	confirmQuit bool
	aborted     bool
}

// NewTestModel constructs the countdown screen for flow.
func NewTestModel(flow *testflow.Flow, palette theme.Palette) *TestModel {
	return &TestModel{
		flow:   flow,
		styles: newStyles(palette),
	}
}

// Finished reports whether every step ran out or was skipped.
func (m *TestModel) Finished() bool {
	return m.flow.Finished()
}

// Aborted reports whether the user quit before the last step ended.
func (m *TestModel) Aborted() bool {
	return m.aborted
}

// Init implements tea.Model.
func (m *TestModel) Init() tea.Cmd {
	return tickCmd(m.flow.Start())
}

// Update implements tea.Model.
func (m *TestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, m.handleEvent(m.flow.Tick(msg.tag), msg.tag)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.aborted = true
			return m, tea.Quit
		}
		if m.confirmQuit {
			switch msg.String() {
			case "y", "Y":
				m.aborted = true
				return m, tea.Quit
			default:
				m.confirmQuit = false
				return m, nil
			}
		}
		switch msg.String() {
		case "q", "esc":
			m.confirmQuit = true
			return m, nil
		case "s", "enter":
			return m, m.handleEvent(m.flow.Skip(), 0)
		}
	}
	return m, nil
}

// handleEvent reschedules the tick source after a flow event. A stale tick
// is dropped without rescheduling, so at most one source stays live.
func (m *TestModel) handleEvent(ev testflow.Event, tag int) tea.Cmd {
	switch ev {
	case testflow.EventTicked:
		return tickCmd(tag)
	case testflow.EventAdvanced:
		return tickCmd(m.flow.ActiveTag())
	case testflow.EventFinished:
		return tea.Quit
	default:
		return nil
	}
}

// View implements tea.Model.
func (m *TestModel) View() string {
	if m.flow.Finished() {
		return place(m.width, m.height, m.styles.success.Render("Test complete. Opening results..."), "")
	}
	cfg := m.flow.Config()
	steps := m.flow.Steps()
	current := m.flow.Current()

	lines := []string{
		m.styles.title.Render(cfg.TestName),
		m.styles.muted.Render(string(cfg.SectionType)),
		"",
		m.styles.text.Render(fmt.Sprintf("Step %d of %d: %s", m.flow.Index()+1, len(steps), current.Name)),
		m.styles.clock.Render(testflow.FormatClock(m.flow.TimeLeft())),
		"",
	}
	for i, step := range steps {
		line := fmt.Sprintf("%s  %s", testflow.FormatClock(step.Duration), step.Name)
		switch {
		case i < m.flow.Index():
			lines = append(lines, m.styles.muted.Render("  "+line))
		case i == m.flow.Index():
			lines = append(lines, m.styles.accent.Render("> "+line))
		default:
			lines = append(lines, m.styles.text.Render("  "+line))
		}
	}
	done, total := m.elapsed()
	lines = append(lines, "", m.styles.muted.Render(progressBar(done, total, 30)+" "+percent(done, total)))
	if m.confirmQuit {
		lines = append(lines, "", m.styles.danger.Render("Quit the test? Results will not open. (y/N)"))
	}
	return place(m.width, m.height, strings.Join(lines, "\n"), m.renderFooter())
}

func (m *TestModel) elapsed() (done, total int) {
	for i, step := range m.flow.Steps() {
		total += step.Duration
		switch {
		case i < m.flow.Index():
			done += step.Duration
		case i == m.flow.Index():
			done += step.Duration - m.flow.TimeLeft()
		}
	}
	return done, total
}

func (m *TestModel) renderFooter() string {
	return m.styles.footer.Render("Skip step: s/enter  Quit: q")
}
