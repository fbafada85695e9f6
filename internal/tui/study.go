package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/stopwatch"
	"github.com/verte-zerg/sattrack/internal/theme"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

type sampleMsg struct {
	gen int
}

func sampleCmd(gen int) tea.Cmd {
	return tea.Tick(stopwatch.SampleInterval, func(time.Time) tea.Msg {
		return sampleMsg{gen: gen}
	})
}

// StudyModel is the study stopwatch screen.
type StudyModel struct {
	tracker *tracker.Tracker
	sw      *stopwatch.Stopwatch
	styles  styles

	width  int
	height int

	subject model.Subject
	details textinput.Model
	editing bool
	gen     int

	confirmQuit bool
	lastSaved   *model.StudySessionEntry
	errMsg      string
}

// NewStudyModel constructs the stopwatch screen. subject preselects the
// subject; an empty value selects Math.
func NewStudyModel(tr *tracker.Tracker, sw *stopwatch.Stopwatch, subject model.Subject, palette theme.Palette) *StudyModel {
	if subject == "" {
		subject = model.SubjectMath
	}
	details := textinput.New()
	details.Prompt = "Details: "
	details.Placeholder = "what did you study?"
	details.CharLimit = 200
	details.Width = 40
	details.Cursor.SetMode(cursor.CursorBlink)
	return &StudyModel{
		tracker: tr,
		sw:      sw,
		styles:  newStyles(palette),
		subject: subject,
		details: details,
	}
}

// LastSaved returns the most recently saved session, if any.
func (m *StudyModel) LastSaved() (model.StudySessionEntry, bool) {
	if m.lastSaved == nil {
		return model.StudySessionEntry{}, false
	}
	return *m.lastSaved, true
}

// Init implements tea.Model.
func (m *StudyModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *StudyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case sampleMsg:
		if msg.gen != m.gen || m.sw.State() != stopwatch.Running {
			return m, nil
		}
		return m, sampleCmd(m.gen)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.editing {
			return m.updateDetails(msg)
		}
		if m.confirmQuit {
			if msg.String() == "y" || msg.String() == "Y" {
				return m, tea.Quit
			}
			m.confirmQuit = false
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *StudyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch msg.String() {
	case "q", "esc":
		if m.hasUnsaved() {
			m.confirmQuit = true
			return m, nil
		}
		return m, tea.Quit
	case " ", "space", "p":
		return m, m.toggle()
	case "e":
		m.sw.End()
		return m, nil
	case "r":
		m.sw.Reset()
		m.gen++
		return m, nil
	case "tab", "m":
		if m.subject == model.SubjectMath {
			m.subject = model.SubjectEnglish
		} else {
			m.subject = model.SubjectMath
		}
		return m, nil
	case "i":
		m.editing = true
		return m, m.details.Focus()
	case "enter":
		if m.sw.State() == stopwatch.Ended {
			m.save()
		}
		return m, nil
	}
	return m, nil
}

func (m *StudyModel) toggle() tea.Cmd {
	if m.sw.State() == stopwatch.Running {
		m.sw.Pause()
		return nil
	}
	m.sw.Start()
	m.gen++
	return sampleCmd(m.gen)
}

func (m *StudyModel) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.editing = false
		m.details.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

func (m *StudyModel) hasUnsaved() bool {
	return m.sw.State() != stopwatch.Idle && m.sw.Elapsed() > 0
}

func (m *StudyModel) save() {
	entry, err := m.tracker.SaveStopwatch(context.Background(), m.sw.Elapsed(), m.subject, strings.TrimSpace(m.details.Value()))
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.lastSaved = &entry
	m.sw.Reset()
	m.gen++
	m.details.SetValue("")
}

// View implements tea.Model.
func (m *StudyModel) View() string {
	elapsed := m.sw.Elapsed()
	subjects := make([]string, 0, 2)
	for _, s := range []model.Subject{model.SubjectMath, model.SubjectEnglish} {
		if s == m.subject {
			subjects = append(subjects, m.styles.accent.Render("["+string(s)+"]"))
		} else {
			subjects = append(subjects, m.styles.muted.Render(" "+string(s)+" "))
		}
	}
	lines := []string{
		m.styles.title.Render("Study Stopwatch"),
		strings.Join(subjects, " "),
		"",
		m.styles.clock.Render(stopwatch.FormatElapsed(elapsed)),
		m.styles.muted.Render(m.sw.State().String()),
		"",
		m.details.View(),
	}
	if m.sw.State() == stopwatch.Ended {
		lines = append(lines, "", m.styles.text.Render(fmt.Sprintf("Press enter to log %d min of %s.", stopwatch.Minutes(elapsed), m.subject)))
	}
	if m.lastSaved != nil {
		lines = append(lines, "", m.styles.success.Render(fmt.Sprintf("Logged %d min of %s.", m.lastSaved.Minutes, m.lastSaved.Subject)))
	}
	if m.errMsg != "" {
		lines = append(lines, "", m.styles.danger.Render(m.errMsg))
	}
	if m.confirmQuit {
		lines = append(lines, "", m.styles.danger.Render("Discard the unsaved session? (y/N)"))
	}
	return place(m.width, m.height, strings.Join(lines, "\n"), m.renderFooter())
}

func (m *StudyModel) renderFooter() string {
	if m.editing {
		return m.styles.footer.Render("enter/esc: done")
	}
	return m.styles.footer.Render("Start/pause: space  End: e  Save: enter  Reset: r  Subject: tab  Details: i  Quit: q")
}
