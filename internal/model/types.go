// Package model defines shared data structures.
package model

import "strings"

// SectionType selects which ordered list of timed steps a practice test walks through.
type SectionType string

// Section types.
const (
	SectionMath     SectionType = "Math"
	SectionEnglish  SectionType = "English"
	SectionFullTest SectionType = "Full Test"
)

// SectionTypes lists every section type in menu order.
var SectionTypes = []SectionType{SectionMath, SectionEnglish, SectionFullTest}

// Valid reports whether s is a known section type.
func (s SectionType) Valid() bool {
	switch s {
	case SectionMath, SectionEnglish, SectionFullTest:
		return true
	default:
		return false
	}
}

// ParseSectionType matches user input case-insensitively ("full", "full test" and
// "fulltest" all select the full test).
func ParseSectionType(input string) (SectionType, bool) {
	normalized := strings.ToLower(strings.Join(strings.Fields(input), " "))
	switch normalized {
	case "math":
		return SectionMath, true
	case "english":
		return SectionEnglish, true
	case "full test", "full", "fulltest":
		return SectionFullTest, true
	default:
		return "", false
	}
}

// Subject is the subject a study session or wrong question is attributed to.
type Subject string

// Subjects.
const (
	SubjectMath    Subject = "Math"
	SubjectEnglish Subject = "English"
)

// ParseSubject matches user input case-insensitively.
func ParseSubject(input string) (Subject, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "math":
		return SubjectMath, true
	case "english":
		return SubjectEnglish, true
	default:
		return "", false
	}
}

// QuestionType distinguishes multiple-choice from written answers.
type QuestionType string

// Question types.
const (
	QuestionMultiple QuestionType = "multiple"
	QuestionWritten  QuestionType = "written"
)

// StudyType records how a study session was timed.
type StudyType string

// Study session types.
const (
	StudyStopwatch StudyType = "stopwatch"
	StudyManual    StudyType = "manual"
)

// SessionConfig is written when a practice test is started and read by the
// test flow and the results recorder.
type SessionConfig struct {
	TestName    string      `json:"testName"`
	SectionType SectionType `json:"sectionType"`
}

// ScoreEntry is one recorded practice test result. Full tests carry the
// math/english sub-scores alongside the summed score.
type ScoreEntry struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"`
	TestName     string      `json:"testName"`
	Section      SectionType `json:"section"`
	Score        *int        `json:"score,omitempty"`
	MathScore    *int        `json:"mathScore,omitempty"`
	EnglishScore *int        `json:"englishScore,omitempty"`
}

// WrongQuestion is a missed question recorded for later review.
type WrongQuestion struct {
	ID            string       `json:"id"`
	TestName      string       `json:"testName"`
	Question      string       `json:"question"`
	Section       string       `json:"section"`
	Choices       []string     `json:"choices"`
	UserAnswer    string       `json:"userAnswer"`
	CorrectAnswer string       `json:"correctAnswer"`
	Type          QuestionType `json:"type"`
	Reviewed      bool         `json:"reviewed"`
	Tags          []string     `json:"tags"`
}

// HasTag reports whether the question carries tag exactly.
func (q WrongQuestion) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// StudySessionEntry is a logged block of study time.
type StudySessionEntry struct {
	ID      string    `json:"id"`
	Minutes int       `json:"minutes"`
	Details string    `json:"details"`
	Subject Subject   `json:"subject"`
	Date    string    `json:"date"`
	Type    StudyType `json:"type"`
}

// Theme is the persisted color scheme.
type Theme string

// Themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
