package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/session"
	"github.com/verte-zerg/sattrack/internal/stats"
	"github.com/verte-zerg/sattrack/internal/testflow"
	"github.com/verte-zerg/sattrack/internal/tracker"
	"github.com/verte-zerg/sattrack/internal/tui"
)

var (
	startName    string
	startSection string

	resultsScore   int
	resultsMath    int
	resultsEnglish int
	resultsName    string
	resultsSection string
)

func addStartFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&startName, "name", "", "practice test name")
	cmd.Flags().StringVar(&startSection, "section", string(model.SectionFullTest), "section: Math, English or Full Test")
}

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a timed practice test",
		Args:  cobra.NoArgs,
		RunE:  runStartCmd,
	}
	addStartFlags(cmd)
	return cmd
}

func runStartCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	applyStringConfig(cmd, "section", &startSection, a.cfg.Practice.Section)
	section, ok := model.ParseSectionType(startSection)
	if !ok {
		return fmt.Errorf("invalid --section %q: %w", startSection, session.ErrInvalidSection)
	}
	name := startName
	if strings.TrimSpace(name) == "" {
		name, err = prompt(cmd.InOrStdin(), cmd.OutOrStdout(), "Test name: ")
		if err != nil {
			return err
		}
	}
	cfg, err := session.Start(cmd.Context(), a.store, strings.TrimSpace(name), section)
	if err != nil {
		return err
	}
	a.logger.Info("practice test started",
		zap.String("test", cfg.TestName),
		zap.String("section", string(cfg.SectionType)),
	)
	return runTestFlow(cmd.Context(), a, cfg)
}

func prompt(in io.Reader, out io.Writer, label string) (string, error) {
	if _, err := fmt.Fprint(out, label); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Resume the countdown of the current practice test",
		Args:  cobra.NoArgs,
		RunE:  runTestCmd,
	}
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, ok := session.Current(cmd.Context(), a.store, a.logger)
	if !ok {
		return fmt.Errorf("%w: run `sattrack start` first", testflow.ErrNoSession)
	}
	return runTestFlow(cmd.Context(), a, cfg)
}

func runTestFlow(ctx context.Context, a *app, cfg model.SessionConfig) error {
	flow, err := testflow.New(&cfg)
	if err != nil {
		return err
	}
	countdown := tui.NewTestModel(flow, a.palette)
	if err := runProgram(countdown); err != nil {
		return err
	}
	if countdown.Aborted() || !countdown.Finished() {
		a.logger.Info("practice test aborted", zap.String("test", cfg.TestName))
		logErrln("Test aborted. Record results later with: sattrack results")
		return nil
	}
	a.logger.Info("practice test finished", zap.String("test", cfg.TestName))
	return runResultsForm(ctx, a, a.tracker.NewResultDraft(ctx))
}

func runResultsForm(ctx context.Context, a *app, draft *tracker.ResultDraft) error {
	form := tui.NewResultsModel(ctx, draft, a.palette)
	if err := runProgram(form); err != nil {
		return err
	}
	if entry, ok := form.Saved(); ok {
		logErrf("Saved %s (%s): %s\n", entry.TestName, entry.Section, stats.FormatScore(entry))
	}
	return nil
}

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Record the score and missed questions of a practice test",
		Args:  cobra.NoArgs,
		RunE:  runResultsCmd,
	}
	cmd.Flags().IntVar(&resultsScore, "score", 0, "score of a Math or English test (skips the form)")
	cmd.Flags().IntVar(&resultsMath, "math", 0, "math score of a full test (skips the form)")
	cmd.Flags().IntVar(&resultsEnglish, "english", 0, "english score of a full test (skips the form)")
	cmd.Flags().StringVar(&resultsName, "name", "", "test name (default: the current test)")
	cmd.Flags().StringVar(&resultsSection, "section", "", "section (default: the current test)")
	return cmd
}

func runResultsCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	draft := a.tracker.NewResultDraft(ctx)
	if strings.TrimSpace(resultsName) != "" {
		draft.TestName = strings.TrimSpace(resultsName)
	}
	if resultsSection != "" {
		section, ok := model.ParseSectionType(resultsSection)
		if !ok {
			return fmt.Errorf("invalid --section %q: %w", resultsSection, session.ErrInvalidSection)
		}
		draft.Section = section
	}

	in := tracker.ScoreInput{}
	if cmd.Flags().Changed("score") {
		in.Score = model.IntPtr(resultsScore)
	}
	if cmd.Flags().Changed("math") {
		in.Math = model.IntPtr(resultsMath)
	}
	if cmd.Flags().Changed("english") {
		in.English = model.IntPtr(resultsEnglish)
	}
	if in.Score == nil && in.Math == nil && in.English == nil {
		return runResultsForm(ctx, a, draft)
	}
	entry, err := draft.Submit(ctx, in)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s): %s\n", entry.TestName, entry.Section, stats.FormatScore(entry)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
