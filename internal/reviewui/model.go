// Package reviewui provides the Bubble Tea browser for recorded questions,
// scores and study sessions.
package reviewui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/stats"
	"github.com/verte-zerg/sattrack/internal/theme"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

// Tabs.
const (
	TabQuestions = iota
	TabScores
	TabStudy
)

const (
	filterTag = iota
	filterTestName
	filterSection
)

const detailHeight = 3

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeTags
	modeConfirmDelete
)

type styles struct {
	activeNav   lipgloss.Style
	inactiveNav lipgloss.Style
	header      lipgloss.Style
	text        lipgloss.Style
	errorText   lipgloss.Style
	status      lipgloss.Style
	modal       lipgloss.Style
	table       table.Styles
}

func newStyles(p theme.Palette) styles {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	tableStyles.Cell = tableStyles.Cell.
		Foreground(p.Text).
		Padding(0, 1).
		PaddingLeft(0)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(p.Accent).
		Bold(true)
	return styles{
		activeNav: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Accent),
		inactiveNav: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Border),
		header:    lipgloss.NewStyle().Foreground(p.Muted),
		text:      lipgloss.NewStyle().Foreground(p.Text),
		errorText: lipgloss.NewStyle().Foreground(p.Danger),
		status:    lipgloss.NewStyle().Foreground(p.Success),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Accent).
			Padding(1, 2),
		table: tableStyles,
	}
}

// Model implements the Bubble Tea review UI.
type Model struct {
	tracker *tracker.Tracker
	styles  styles
	keys    keyMap
	help    help.Model

	filter tracker.QuestionFilter

	questions        []model.WrongQuestion
	visibleQuestions []model.WrongQuestion
	scores           []model.ScoreEntry
	visibleScores    []model.ScoreEntry
	sessions         []model.StudySessionEntry

	tabs          []string
	activeTab     int
	questionTable table.Model
	scoreTable    table.Model
	studyView     viewport.Model

	width  int
	height int

	mode          mode
	filterInputs  []textinput.Model
	filterIndex   int
	tagInput      textinput.Model
	pendingDelete string

	status string
	errMsg string
}

// NewModel constructs the review UI starting on tab with filter applied.
func NewModel(tr *tracker.Tracker, filter tracker.QuestionFilter, tab int, palette theme.Palette) *Model {
	m := &Model{
		tracker: tr,
		styles:  newStyles(palette),
		keys:    defaultKeyMap(),
		help:    help.New(),
		filter:  filter,
		tabs:    []string{"Questions", "Scores", "Study"},
	}
	if tab >= 0 && tab < len(m.tabs) {
		m.activeTab = tab
	}
	m.questionTable = newTable(questionColumns(0), m.styles.table)
	m.scoreTable = newTable(scoreColumns(0), m.styles.table)
	m.studyView = viewport.New(0, 0)
	m.initInputs()
	m.reload()
	m.focusActiveTable()
	return m
}

// newTable sets the columns up front; rows must never outnumber them.
func newTable(cols []table.Column, s table.Styles) table.Model {
	t := table.New(table.WithColumns(cols), table.WithHeight(1))
	t.SetStyles(s)
	return t
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newInput("Tag: "),
		newInput("Test name: "),
		newInput("Section: "),
	}
	m.tagInput = newInput("Tags: ")
	m.tagInput.Placeholder = "algebra, geometry"
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeFilter:
			return m.updateFilter(msg)
		case modeTags:
			return m.updateTags(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveTab(-1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.Right):
		m.moveTab(1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil
	case key.Matches(msg, m.keys.Filter):
		return m.startFilter()
	case key.Matches(msg, m.keys.Pending):
		m.filter.OnlyUnreviewed = !m.filter.OnlyUnreviewed
		m.applyVisible()
		return m, nil
	case key.Matches(msg, m.keys.Clear):
		m.filter = tracker.QuestionFilter{}
		m.applyVisible()
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		m.toggleReviewed()
		return m, nil
	case key.Matches(msg, m.keys.Tags):
		return m.startTags()
	case key.Matches(msg, m.keys.Delete):
		m.startDelete()
		return m, nil
	}
	var cmd tea.Cmd
	switch m.activeTab {
	case TabQuestions:
		m.questionTable, cmd = m.questionTable.Update(msg)
	case TabScores:
		m.scoreTable, cmd = m.scoreTable.Update(msg)
	default:
		m.studyView, cmd = m.studyView.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.mode == modeTags || m.mode == modeConfirmDelete {
		return fitLines(m.renderModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(m.styles.activeNav.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = lipgloss.Height(m.renderHelp())
	if m.errMsg != "" || m.status != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.questionTable.SetColumns(questionColumns(m.width))
	m.questionTable.SetWidth(m.width)
	m.questionTable.SetHeight(maxInt(2, bodyHeight-detailHeight))
	m.scoreTable.SetColumns(scoreColumns(m.width))
	m.scoreTable.SetWidth(m.width)
	m.scoreTable.SetHeight(maxInt(2, bodyHeight-detailHeight))
	m.studyView.Width = m.width
	m.studyView.Height = bodyHeight
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	m.tagInput.Width = maxInt(10, modalInnerWidth(m.width)-lipgloss.Width(m.tagInput.Prompt))
	m.renderStudy()
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.status = ""
	m.errMsg = ""
	m.focusActiveTable()
}

func (m *Model) focusActiveTable() {
	m.questionTable.Blur()
	m.scoreTable.Blur()
	switch m.activeTab {
	case TabQuestions:
		m.questionTable.Focus()
	case TabScores:
		m.scoreTable.Focus()
	}
}

// reload reads every collection from the store and rebuilds the views.
func (m *Model) reload() {
	ctx := context.Background()
	m.questions = m.tracker.Questions(ctx)
	m.scores = m.tracker.Scores(ctx)
	m.sessions = m.tracker.StudySessions(ctx)
	m.applyVisible()
}

func (m *Model) applyVisible() {
	m.visibleQuestions = tracker.FilterQuestions(m.questions, m.filter)
	m.visibleScores = tracker.FilterScores(m.scores, m.filter.TestName)
	m.questionTable.SetRows(questionRows(m.visibleQuestions))
	m.scoreTable.SetRows(scoreRows(m.visibleScores))
	clampCursor(&m.questionTable, len(m.visibleQuestions))
	clampCursor(&m.scoreTable, len(m.visibleScores))
	m.renderStudy()
}

func clampCursor(t *table.Model, n int) {
	if n == 0 {
		t.SetCursor(0)
		return
	}
	if t.Cursor() >= n {
		t.SetCursor(n - 1)
	}
	if t.Cursor() < 0 {
		t.SetCursor(0)
	}
}

func (m *Model) selectedQuestion() (model.WrongQuestion, bool) {
	idx := m.questionTable.Cursor()
	if idx < 0 || idx >= len(m.visibleQuestions) {
		return model.WrongQuestion{}, false
	}
	return m.visibleQuestions[idx], true
}

func (m *Model) selectedScore() (model.ScoreEntry, bool) {
	idx := m.scoreTable.Cursor()
	if idx < 0 || idx >= len(m.visibleScores) {
		return model.ScoreEntry{}, false
	}
	return m.visibleScores[idx], true
}

func (m *Model) toggleReviewed() {
	if m.activeTab != TabQuestions {
		return
	}
	q, ok := m.selectedQuestion()
	if !ok {
		return
	}
	updated, err := m.tracker.ToggleReviewed(context.Background(), q.ID)
	if err != nil {
		m.setError(err)
		return
	}
	if updated.Reviewed {
		m.setStatus("Marked as reviewed.")
	} else {
		m.setStatus("Marked as not reviewed.")
	}
	m.reload()
}

func (m *Model) startTags() (tea.Model, tea.Cmd) {
	if m.activeTab != TabQuestions {
		return m, nil
	}
	q, ok := m.selectedQuestion()
	if !ok {
		return m, nil
	}
	m.mode = modeTags
	m.pendingDelete = ""
	m.tagInput.SetValue(tracker.JoinTags(q.Tags))
	m.tagInput.CursorEnd()
	return m, m.tagInput.Focus()
}

func (m *Model) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.tagInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		m.tagInput.Blur()
		q, ok := m.selectedQuestion()
		if !ok {
			return m, nil
		}
		if _, err := m.tracker.EditTags(context.Background(), q.ID, m.tagInput.Value()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Tags updated.")
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}

func (m *Model) startDelete() {
	switch m.activeTab {
	case TabQuestions:
		if q, ok := m.selectedQuestion(); ok {
			m.pendingDelete = q.ID
			m.mode = modeConfirmDelete
		}
	case TabScores:
		if s, ok := m.selectedScore(); ok {
			m.pendingDelete = s.ID
			m.mode = modeConfirmDelete
		}
	}
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.pendingDelete
	m.pendingDelete = ""
	m.mode = modeBrowse
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	ctx := context.Background()
	var err error
	if m.activeTab == TabScores {
		err = m.tracker.DeleteScore(ctx, id)
	} else {
		err = m.tracker.DeleteQuestion(ctx, id)
	}
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setStatus("Deleted.")
	m.reload()
	return m, nil
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	if m.activeTab == TabStudy {
		return m, nil
	}
	m.mode = modeFilter
	m.errMsg = ""
	m.filterInputs[filterTag].SetValue(m.filter.Tag)
	m.filterInputs[filterTestName].SetValue(m.filter.TestName)
	m.filterInputs[filterSection].SetValue(m.filter.Section)
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		m.filter.Tag = strings.TrimSpace(m.filterInputs[filterTag].Value())
		m.filter.TestName = strings.TrimSpace(m.filterInputs[filterTestName].Value())
		m.filter.Section = strings.TrimSpace(m.filterInputs[filterSection].Value())
		m.applyVisible()
		return m, nil
	case key.Matches(msg, m.keys.NextItem):
		return m, m.setFilterIndex(m.filterIndex + 1)
	case key.Matches(msg, m.keys.PrevItem):
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) setError(err error) {
	m.status = ""
	m.errMsg = err.Error()
}

func (m *Model) setStatus(s string) {
	m.errMsg = ""
	m.status = s
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, m.styles.activeNav.Render(tab))
		} else {
			parts = append(parts, m.styles.inactiveNav.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderSummary(), m.width)
}

func (m *Model) renderSummary() string {
	var summary string
	switch m.activeTab {
	case TabQuestions:
		s := tracker.Summarize(m.visibleQuestions)
		summary = fmt.Sprintf("%d of %d questions  reviewed %d%%  filter: %s",
			s.Total, len(m.questions), s.ReviewedPercent(), describeFilter(m.filter))
	case TabScores:
		summary = fmt.Sprintf("%d of %d scores  test: %s", len(m.visibleScores), len(m.scores), orAny(m.filter.TestName))
		for _, s := range stats.SummarizeScores(m.visibleScores) {
			summary += fmt.Sprintf("  %s best %d %s", s.Section, s.Best, s.Trend)
		}
	default:
		totals := tracker.TotalStudy(m.sessions)
		summary = fmt.Sprintf("%d sessions  total %s", len(m.sessions), tracker.FormatStudyTotal(totals.Total))
	}
	return m.styles.header.Render(truncateLine(summary, m.width))
}

func describeFilter(f tracker.QuestionFilter) string {
	parts := []string{
		"tag=" + orAny(f.Tag),
		"test=" + orAny(f.TestName),
		"section=" + orAny(f.Section),
	}
	if f.OnlyUnreviewed {
		parts = append(parts, "unreviewed")
	}
	return strings.Join(parts, " ")
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func (m *Model) renderHelp() string {
	if m.mode == modeFilter {
		return m.help.View(formKeyMap{keys: m.keys})
	}
	return m.help.View(m.keys)
}

func (m *Model) renderFooter() string {
	help := m.renderHelp()
	switch {
	case m.errMsg != "":
		return help + "\n" + m.styles.errorText.Render(m.errMsg)
	case m.status != "":
		return help + "\n" + m.styles.status.Render(m.status)
	default:
		return help
	}
}

func (m *Model) renderBody(height int) string {
	if m.mode == modeFilter {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	switch m.activeTab {
	case TabQuestions:
		if len(m.visibleQuestions) == 0 {
			return fitLines(emptyQuestionsMessage(len(m.questions)), m.width, height)
		}
		return m.questionTable.View() + "\n" + fitLines(m.renderQuestionDetail(), m.width, detailHeight)
	case TabScores:
		if len(m.visibleScores) == 0 {
			return fitLines("No scores recorded.", m.width, height)
		}
		return m.scoreTable.View() + "\n" + fitLines(m.renderScoreDetail(), m.width, detailHeight)
	default:
		return m.studyView.View()
	}
}

func emptyQuestionsMessage(total int) string {
	if total == 0 {
		return "No questions recorded."
	}
	return "No questions match the filter. Press c to clear it."
}

func (m *Model) renderQuestionDetail() string {
	q, ok := m.selectedQuestion()
	if !ok {
		return ""
	}
	lines := []string{m.styles.text.Render(truncateLine(strings.Join(strings.Fields(q.Question), " "), m.width))}
	if len(q.Choices) > 0 {
		lines = append(lines, m.styles.header.Render(truncateLine("Choices: "+strings.Join(q.Choices, " | "), m.width)))
	} else {
		lines = append(lines, m.styles.header.Render("Written answer"))
	}
	lines = append(lines, m.styles.header.Render(truncateLine(
		fmt.Sprintf("Your answer: %s  Correct: %s", q.UserAnswer, q.CorrectAnswer), m.width)))
	return strings.Join(lines, "\n")
}

func (m *Model) renderScoreDetail() string {
	s, ok := m.selectedScore()
	if !ok {
		return ""
	}
	return m.styles.text.Render(fmt.Sprintf("%s  %s  %s", s.TestName, s.Section, stats.FormatScore(s)))
}

func (m *Model) renderStudy() {
	var buf bytes.Buffer
	if err := stats.RenderStudy(&buf, m.sessions); err != nil {
		m.studyView.SetContent(fmt.Sprintf("Failed to render study log: %v", err))
		return
	}
	m.studyView.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, m.styles.header.Render("Empty fields match everything. Test name also filters scores."))
	return strings.Join(lines, "\n")
}

func (m *Model) renderModal() string {
	var body []string
	if m.mode == modeTags {
		body = []string{
			m.styles.text.Bold(true).Render("Edit Tags"),
			m.tagInput.View(),
			m.styles.header.Render("Comma-separated. Enter to save / Esc to cancel"),
		}
	} else {
		what := "question"
		if m.activeTab == TabScores {
			what = "score"
		}
		body = []string{
			m.styles.text.Bold(true).Render("Delete " + what + "?"),
			m.styles.header.Render("y to delete / any other key to cancel"),
		}
	}
	box := m.styles.modal.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
