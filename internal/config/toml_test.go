package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Practice.Section != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[practice]
section = "Math"

[study]
subject = "English"

[log]
level = "debug"
max-backups = 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Section == nil || *cfg.Practice.Section != "Math" {
		t.Fatalf("unexpected practice section: %v", cfg.Practice.Section)
	}
	if cfg.Study.Subject == nil || *cfg.Study.Subject != "English" {
		t.Fatalf("unexpected study subject: %v", cfg.Study.Subject)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
	if cfg.Log.MaxBackups == nil || *cfg.Log.MaxBackups != 2 {
		t.Fatalf("unexpected max backups: %v", cfg.Log.MaxBackups)
	}
	if cfg.Log.MaxSizeMB != nil {
		t.Fatalf("expected unset max size, got %d", *cfg.Log.MaxSizeMB)
	}
}

func TestDefaultDBPathHonorsEnv(t *testing.T) {
	t.Setenv("SATTRACK_DB", "/tmp/custom.db")
	if got := DefaultDBPath(); got != "/tmp/custom.db" {
		t.Fatalf("expected env override, got %q", got)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("SATTRACK_DB", "")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := DefaultDBPath(); got != filepath.Join("/data", "sattrack", "sattrack.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "sattrack", "sattrack.log") {
		t.Fatalf("unexpected log path %q", got)
	}
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "sattrack", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
}
