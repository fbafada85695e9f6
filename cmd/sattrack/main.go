// Package main provides the CLI entrypoint for sattrack.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/config"
	"github.com/verte-zerg/sattrack/internal/logging"
	"github.com/verte-zerg/sattrack/internal/store"
	"github.com/verte-zerg/sattrack/internal/theme"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

var (
	dbPath   string
	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sattrack",
		Short:         "SAT practice test timer and review tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runStartCmd,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: $XDG_DATA_HOME/sattrack/sattrack.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	addStartFlags(rootCmd)

	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newResultsCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newQuestionsCmd())
	rootCmd.AddCommand(newStudyCmd())
	rootCmd.AddCommand(newThemeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds what every data command needs: the store, the logger, the
// tracker over both and the palette of the stored theme.
type app struct {
	cfg     config.FileConfig
	store   *store.SQLite
	logger  *zap.Logger
	tracker *tracker.Tracker
	palette theme.Palette
}

func openApp(cmd *cobra.Command) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)

	opts := logging.Options{Path: config.DefaultLogPath(), Level: logLevel}
	if fileCfg.Log.MaxSizeMB != nil {
		opts.MaxSizeMB = *fileCfg.Log.MaxSizeMB
	}
	if fileCfg.Log.MaxBackups != nil {
		opts.MaxBackups = *fileCfg.Log.MaxBackups
	}
	logger, err := logging.New(opts)
	if err != nil {
		logErrf("failed to set up logging: %v\n", err)
		logger = zap.NewNop()
	}

	path := dbPath
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	logger.Debug("store opened", zap.String("path", path))

	a := &app{
		cfg:     fileCfg,
		store:   st,
		logger:  logger,
		tracker: tracker.New(st, tracker.Options{Logger: logger}),
	}
	a.palette = theme.PaletteFor(theme.Load(cmd.Context(), st))
	return a, nil
}

func (a *app) Close() {
	if cerr := a.store.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
	// Best-effort flush; the file may already be rotated away.
	_ = a.logger.Sync()
}

func runProgram(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
