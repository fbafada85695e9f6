package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sattrack/internal/model"
	"github.com/verte-zerg/sattrack/internal/stats"
	"github.com/verte-zerg/sattrack/internal/stopwatch"
	"github.com/verte-zerg/sattrack/internal/tracker"
	"github.com/verte-zerg/sattrack/internal/tui"
)

var (
	studySubject string
	studyMinutes int
	studyDetails string
)

func newStudyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Time a study session with a stopwatch",
		Args:  cobra.NoArgs,
		RunE:  runStudyCmd,
	}
	cmd.PersistentFlags().StringVar(&studySubject, "subject", string(model.SubjectMath), "subject: Math or English")

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log a study session by hand",
		Args:  cobra.NoArgs,
		RunE:  runStudyLogCmd,
	}
	logCmd.Flags().IntVar(&studyMinutes, "minutes", 0, "minutes studied")
	logCmd.Flags().StringVar(&studyDetails, "details", "", "what was studied")
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the study log",
		Args:  cobra.NoArgs,
		RunE:  runStudyListCmd,
	}
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a study session",
		Args:  cobra.ExactArgs(1),
		RunE:  runStudyDeleteCmd,
	}
	cmd.AddCommand(logCmd, list, del)
	return cmd
}

func resolveSubject(cmd *cobra.Command, cfgSubject *string) (model.Subject, error) {
	applyStringConfig(cmd, "subject", &studySubject, cfgSubject)
	subject, ok := model.ParseSubject(studySubject)
	if !ok {
		return "", fmt.Errorf("invalid --subject %q: %w", studySubject, tracker.ErrMissingSubject)
	}
	return subject, nil
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	subject, err := resolveSubject(cmd, a.cfg.Study.Subject)
	if err != nil {
		return err
	}
	screen := tui.NewStudyModel(a.tracker, stopwatch.New(nil), subject, a.palette)
	if err := runProgram(screen); err != nil {
		return err
	}
	if entry, ok := screen.LastSaved(); ok {
		logErrf("Logged %d min of %s\n", entry.Minutes, entry.Subject)
	}
	return nil
}

func runStudyLogCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	subject, err := resolveSubject(cmd, a.cfg.Study.Subject)
	if err != nil {
		return err
	}
	entry, err := a.tracker.LogManual(cmd.Context(), studyMinutes, subject, studyDetails)
	if err != nil {
		return err
	}
	return printf(cmd.OutOrStdout(), "Logged %d min of %s\n", entry.Minutes, entry.Subject)
}

func runStudyListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := stats.RenderStudy(cmd.OutOrStdout(), a.tracker.StudySessions(cmd.Context())); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runStudyDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	sessions := a.tracker.StudySessions(ctx)
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	id, err := tracker.ResolveID(ids, args[0])
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteStudySession(ctx, id); err != nil {
		return err
	}
	return printf(cmd.OutOrStdout(), "Deleted study session %s\n", tracker.ShortID(id))
}
