package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/config"
	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/theme"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE:      runThemeCmd,
	}
}

func runThemeCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if len(args) == 0 {
		return printf(cmd.OutOrStdout(), "%s\n", theme.Load(ctx, a.store))
	}
	var next model.Theme
	if strings.EqualFold(strings.TrimSpace(args[0]), "toggle") {
		next, err = theme.Toggle(ctx, a.store)
		if err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
	} else {
		parsed, ok := theme.Parse(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q (use dark, light or toggle)", args[0])
		}
		if err := theme.Save(ctx, a.store, parsed); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		next = parsed
	}
	a.logger.Info("theme changed", zap.String("theme", string(next)))
	return printf(cmd.OutOrStdout(), "%s\n", next)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sattrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# section = %q     # Default section: Math, English or Full Test

[study]
# subject = %q          # Default stopwatch subject: Math or English

[log]
# level = "info"           # debug, info, warn or error
# max-size-mb = 5          # Rotate the log file after this many megabytes
# max-backups = 3          # Rotated files to keep
`,
		model.SectionFullTest,
		model.SubjectMath,
	)
}
