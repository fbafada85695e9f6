package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/stats"
	"github.com/verte-zerg/sattrack/internal/theme"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

type resultsStage int

const (
	stageScore resultsStage = iota
	stageQuestion
	stageDone
)

const (
	fieldQuestion = iota
	fieldChoices
	fieldUserAnswer
	fieldCorrectAnswer
	fieldTags
)

var errInvalidScore = errors.New("scores must be whole numbers")

// ResultsModel is the form that records a score and the missed questions of
// one practice test.
type ResultsModel struct {
	ctx    context.Context
	draft  *tracker.ResultDraft
	styles styles

	width  int
	height int

	stage resultsStage

	scoreInputs []textinput.Model
	scoreIndex  int

	questionInputs []textinput.Model
	questionIndex  int
	subject        model.Subject
	multiple       bool

	saved  *model.ScoreEntry
	errMsg string
}

// NewResultsModel constructs the results form for draft. ctx bounds the
// store writes made on submit.
func NewResultsModel(ctx context.Context, draft *tracker.ResultDraft, palette theme.Palette) *ResultsModel {
	m := &ResultsModel{
		ctx:      ctx,
		draft:    draft,
		styles:   newStyles(palette),
		multiple: true,
	}
	if draft.Section == model.SectionFullTest {
		m.scoreInputs = []textinput.Model{
			newInput("Math score: ", "200-800"),
			newInput("English score: ", "200-800"),
		}
	} else {
		m.scoreInputs = []textinput.Model{newInput("Score: ", "200-800")}
	}
	m.questionInputs = []textinput.Model{
		newInput("Question: ", ""),
		newInput("Choices: ", "A | B | C | D"),
		newInput("Your answer: ", ""),
		newInput("Correct answer: ", ""),
		newInput("Tags: ", "algebra, geometry"),
	}
	m.resetQuestion()
	m.setScoreIndex(0)
	return m
}

func newInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 0
	input.Width = 48
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Saved returns the stored score once the form was submitted.
func (m *ResultsModel) Saved() (model.ScoreEntry, bool) {
	if m.saved == nil {
		return model.ScoreEntry{}, false
	}
	return *m.saved, true
}

// Init implements tea.Model.
func (m *ResultsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.stage {
		case stageScore:
			return m.updateScore(msg)
		case stageQuestion:
			return m.updateQuestion(msg)
		default:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *ResultsModel) updateScore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down":
		return m, m.setScoreIndex(m.scoreIndex + 1)
	case "shift+tab", "up":
		return m, m.setScoreIndex(m.scoreIndex - 1)
	case "ctrl+n":
		m.errMsg = ""
		m.stage = stageQuestion
		return m, m.setQuestionIndex(fieldQuestion)
	case "enter":
		if m.scoreIndex < len(m.scoreInputs)-1 {
			return m, m.setScoreIndex(m.scoreIndex + 1)
		}
		return m, m.submit()
	}
	if len(msg.Runes) > 0 && !isDigits(msg.Runes) {
		return m, nil
	}
	var cmd tea.Cmd
	m.scoreInputs[m.scoreIndex], cmd = m.scoreInputs[m.scoreIndex].Update(msg)
	return m, cmd
}

func (m *ResultsModel) updateQuestion(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.errMsg = ""
		m.resetQuestion()
		m.stage = stageScore
		return m, m.setScoreIndex(m.scoreIndex)
	case "tab", "down":
		return m, m.setQuestionIndex(m.nextQuestionField(1))
	case "shift+tab", "up":
		return m, m.setQuestionIndex(m.nextQuestionField(-1))
	case "ctrl+t":
		if m.subject == model.SubjectMath {
			m.subject = model.SubjectEnglish
			m.multiple = true
		} else {
			m.subject = model.SubjectMath
		}
		return m, m.setQuestionIndex(m.questionIndex)
	case "ctrl+w":
		if m.subject == model.SubjectMath {
			m.multiple = !m.multiple
		}
		return m, m.setQuestionIndex(m.questionIndex)
	case "enter":
		if m.questionIndex < fieldTags {
			return m, m.setQuestionIndex(m.nextQuestionField(1))
		}
		if err := m.addQuestion(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.resetQuestion()
		m.stage = stageScore
		return m, m.setScoreIndex(m.scoreIndex)
	}
	var cmd tea.Cmd
	m.questionInputs[m.questionIndex], cmd = m.questionInputs[m.questionIndex].Update(msg)
	return m, cmd
}

func (m *ResultsModel) nextQuestionField(delta int) int {
	count := len(m.questionInputs)
	idx := m.questionIndex
	for i := 0; i < count; i++ {
		idx = (idx + delta + count) % count
		if idx != fieldChoices || m.multiple {
			return idx
		}
	}
	return m.questionIndex
}

func (m *ResultsModel) setScoreIndex(idx int) tea.Cmd {
	count := len(m.scoreInputs)
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.scoreIndex = idx
	var cmd tea.Cmd
	for i := range m.scoreInputs {
		if i == idx {
			cmd = m.scoreInputs[i].Focus()
		} else {
			m.scoreInputs[i].Blur()
		}
	}
	return cmd
}

func (m *ResultsModel) setQuestionIndex(idx int) tea.Cmd {
	if idx == fieldChoices && !m.multiple {
		idx = fieldUserAnswer
	}
	m.questionIndex = idx
	var cmd tea.Cmd
	for i := range m.questionInputs {
		if i == idx {
			cmd = m.questionInputs[i].Focus()
		} else {
			m.questionInputs[i].Blur()
		}
	}
	return cmd
}

func (m *ResultsModel) resetQuestion() {
	for i := range m.questionInputs {
		m.questionInputs[i].SetValue("")
		m.questionInputs[i].Blur()
	}
	m.questionIndex = fieldQuestion
	m.subject = model.SubjectMath
	if m.draft.Section == model.SectionEnglish {
		m.subject = model.SubjectEnglish
	}
	m.multiple = true
}

func (m *ResultsModel) addQuestion() error {
	in := tracker.QuestionInput{
		Section:        m.subject,
		Question:       strings.TrimSpace(m.questionInputs[fieldQuestion].Value()),
		MultipleChoice: m.multiple,
		UserAnswer:     strings.TrimSpace(m.questionInputs[fieldUserAnswer].Value()),
		CorrectAnswer:  strings.TrimSpace(m.questionInputs[fieldCorrectAnswer].Value()),
		Tags:           m.questionInputs[fieldTags].Value(),
	}
	if m.multiple {
		in.Choices = tracker.ParseChoices(m.questionInputs[fieldChoices].Value())
	}
	_, err := m.draft.AddQuestion(in)
	return err
}

func (m *ResultsModel) scoreInput() (tracker.ScoreInput, error) {
	values := make([]*int, len(m.scoreInputs))
	for i, input := range m.scoreInputs {
		raw := strings.TrimSpace(input.Value())
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return tracker.ScoreInput{}, errInvalidScore
		}
		values[i] = model.IntPtr(n)
	}
	if m.draft.Section == model.SectionFullTest {
		return tracker.ScoreInput{Math: values[0], English: values[1]}, nil
	}
	return tracker.ScoreInput{Score: values[0]}, nil
}

func (m *ResultsModel) submit() tea.Cmd {
	in, err := m.scoreInput()
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	entry, err := m.draft.Submit(m.ctx, in)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.saved = &entry
	m.errMsg = ""
	m.stage = stageDone
	return nil
}

func isDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// View implements tea.Model.
func (m *ResultsModel) View() string {
	var body string
	switch m.stage {
	case stageQuestion:
		body = m.renderQuestionForm()
	case stageDone:
		body = m.renderDone()
	default:
		body = m.renderScoreForm()
	}
	if m.errMsg != "" {
		body += "\n\n" + m.styles.danger.Render(m.errMsg)
	}
	return place(m.width, m.height, m.styles.box.Render(body), m.renderFooter())
}

func (m *ResultsModel) renderScoreForm() string {
	lines := []string{
		m.styles.title.Render("Results: " + m.draft.TestName),
		m.styles.muted.Render(string(m.draft.Section)),
		"",
	}
	for _, input := range m.scoreInputs {
		lines = append(lines, input.View())
	}
	pending := m.draft.Pending()
	lines = append(lines, "", m.styles.text.Render(fmt.Sprintf("Wrong questions: %d", len(pending))))
	for _, q := range pending {
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("  [%s] %s", q.Section, stats.Truncate(q.Question, 50))))
	}
	return strings.Join(lines, "\n")
}

func (m *ResultsModel) renderQuestionForm() string {
	kind := "Multiple choice"
	if !m.multiple {
		kind = "Written"
	}
	lines := []string{
		m.styles.title.Render("Add wrong question"),
		m.styles.accent.Render(string(m.subject)) + m.styles.muted.Render("  "+kind),
		"",
	}
	for i, input := range m.questionInputs {
		if i == fieldChoices && !m.multiple {
			continue
		}
		lines = append(lines, input.View())
	}
	return strings.Join(lines, "\n")
}

func (m *ResultsModel) renderDone() string {
	lines := []string{m.styles.success.Render("Results saved.")}
	if m.saved != nil {
		lines = append(lines, m.styles.text.Render(fmt.Sprintf("%s  %s  %s", m.saved.TestName, m.saved.Section, stats.FormatScore(*m.saved))))
	}
	return strings.Join(lines, "\n")
}

func (m *ResultsModel) renderFooter() string {
	switch m.stage {
	case stageQuestion:
		help := "Next: tab  Add: enter on tags  Subject: ctrl+t  Cancel: esc"
		if m.subject == model.SubjectMath {
			help = "Next: tab  Add: enter on tags  Subject: ctrl+t  Written/choice: ctrl+w  Cancel: esc"
		}
		return m.styles.footer.Render(help)
	case stageDone:
		return m.styles.footer.Render("Press any key to exit")
	default:
		return m.styles.footer.Render("Next: tab  Add wrong question: ctrl+n  Submit: enter  Quit: esc")
	}
}
