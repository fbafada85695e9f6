package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/sattrack/internal/config"
)

func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--db", db}, args...))
	err := root.Execute()
	return out.String(), err
}

func newTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("SATTRACK_DB", "")
	return filepath.Join(dir, "sattrack.db")
}

func TestResultsFlagsRecordFullTest(t *testing.T) {
	db := newTestEnv(t)
	out, err := runCLI(t, db, "results", "--name", "PT 1", "--section", "full", "--math", "600", "--english", "650")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if !strings.Contains(out, "Saved PT 1 (Full Test): 1250 (M 600 / E 650)") {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = runCLI(t, db, "scores")
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if !strings.Contains(out, "PT 1") || !strings.Contains(out, "1250") {
		t.Fatalf("unexpected scores output:\n%s", out)
	}
}

func TestResultsWithoutCurrentTestUsesFallback(t *testing.T) {
	db := newTestEnv(t)
	out, err := runCLI(t, db, "results", "--math", "500", "--english", "520")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if !strings.Contains(out, "Unnamed Test (Full Test): 1020") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestResultsMissingScoreFails(t *testing.T) {
	db := newTestEnv(t)
	if _, err := runCLI(t, db, "results", "--section", "math", "--math", "600"); err == nil {
		t.Fatalf("expected error without --score for a math test")
	}
}

func TestTestWithoutSessionFails(t *testing.T) {
	db := newTestEnv(t)
	_, err := runCLI(t, db, "test")
	if err == nil || !strings.Contains(err.Error(), "no practice test configured") {
		t.Fatalf("expected missing session error, got %v", err)
	}
}

func TestQuestionsLifecycle(t *testing.T) {
	db := newTestEnv(t)
	if _, err := runCLI(t, db, "questions", "add", "--question", "Solve 2x = 8", "--subject", "Math", "--tags", "algebra", "--correct-answer", "4"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := runCLI(t, db, "questions", "add", "--question", "Best transition?", "--subject", "English", "--choices", "A|B|C"); err != nil {
		t.Fatalf("add: %v", err)
	}

	out, err := runCLI(t, db, "questions", "export", "--tag", "algebra")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[1], "Solve 2x = 8") || !strings.HasSuffix(lines[1], ",No,algebra") {
		t.Fatalf("unexpected export:\n%s", out)
	}

	out, err = runCLI(t, db, "questions", "list", "--unreviewed")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "2 questions, 0 reviewed") {
		t.Fatalf("unexpected list:\n%s", out)
	}

	out, err = runCLI(t, db, "questions", "list", "--section", "English")
	if err != nil {
		t.Fatalf("list --section: %v", err)
	}
	if !strings.Contains(out, "1 questions, 0 reviewed") {
		t.Fatalf("unexpected filtered list:\n%s", out)
	}
}

func TestQuestionsAddRejectsFilterFlags(t *testing.T) {
	db := newTestEnv(t)
	_, err := runCLI(t, db, "questions", "add", "--question", "Solve x", "--section", "English")
	if err == nil || !strings.Contains(err.Error(), "unknown flag: --section") {
		t.Fatalf("expected unknown flag error, got %v", err)
	}
}

func TestStudyLogAndList(t *testing.T) {
	db := newTestEnv(t)
	out, err := runCLI(t, db, "study", "log", "--minutes", "45", "--subject", "english", "--details", "reading")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if out != "Logged 45 min of English\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := runCLI(t, db, "study", "log", "--minutes", "0"); err == nil {
		t.Fatalf("expected error for zero minutes")
	}
	out, err = runCLI(t, db, "study", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "reading") || !strings.Contains(out, "Total: 45 min") {
		t.Fatalf("unexpected list:\n%s", out)
	}
}

func TestThemeToggle(t *testing.T) {
	db := newTestEnv(t)
	out, err := runCLI(t, db, "theme")
	if err != nil || out != "light\n" {
		t.Fatalf("expected light default, got %q (%v)", out, err)
	}
	out, err = runCLI(t, db, "theme", "toggle")
	if err != nil || out != "dark\n" {
		t.Fatalf("expected dark after toggle, got %q (%v)", out, err)
	}
	if _, err := runCLI(t, db, "theme", "sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("decode template: %v", err)
	}
	if cfg.Practice.Section != nil || cfg.Log.Level != nil {
		t.Fatalf("expected every value commented out")
	}
}
