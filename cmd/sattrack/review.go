package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/sattrack/internal/reviewui"
	"github.com/verte-zerg/sattrack/internal/stats"
	"github.com/verte-zerg/sattrack/internal/tracker"
)

var (
	scoresTestName string
	exportOutput   string

	questionFilter tracker.QuestionFilter
	manualQuestion tracker.ManualQuestion
)

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List recorded scores",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
	cmd.PersistentFlags().StringVar(&scoresTestName, "test-name", "", "only show scores of this test")

	browse := &cobra.Command{
		Use:   "browse",
		Short: "Browse scores interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowser(cmd, tracker.QuestionFilter{TestName: scoresTestName}, reviewui.TabScores)
		},
	}
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a score (a unique id prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE:  runScoresDeleteCmd,
	}
	export := &cobra.Command{
		Use:   "export",
		Short: "Export scores as CSV",
		Args:  cobra.NoArgs,
		RunE:  runScoresExportCmd,
	}
	export.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	cmd.AddCommand(browse, del, export)
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	scores := tracker.FilterScores(a.tracker.Scores(cmd.Context()), scoresTestName)
	if err := stats.RenderScores(cmd.OutOrStdout(), scores); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runScoresDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	scores := a.tracker.Scores(ctx)
	ids := make([]string, len(scores))
	for i, s := range scores {
		ids[i] = s.ID
	}
	id, err := tracker.ResolveID(ids, args[0])
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteScore(ctx, id); err != nil {
		return err
	}
	return printf(cmd.OutOrStdout(), "Deleted score %s\n", tracker.ShortID(id))
}

func runScoresExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	scores := tracker.FilterScores(a.tracker.Scores(cmd.Context()), scoresTestName)
	return withOutput(cmd.OutOrStdout(), exportOutput, func(w io.Writer) error {
		return tracker.WriteScoresCSV(w, scores)
	})
}

func addQuestionFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&questionFilter.Tag, "tag", "", "only questions with this tag")
	cmd.Flags().StringVar(&questionFilter.TestName, "test-name", "", "only questions from this test")
	cmd.Flags().StringVar(&questionFilter.Section, "section", "", "only questions of this section")
	cmd.Flags().BoolVar(&questionFilter.OnlyUnreviewed, "unreviewed", false, "only questions not yet reviewed")
}

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Browse missed questions (space: reviewed, t: tags, d: delete)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowser(cmd, questionFilter, reviewui.TabQuestions)
		},
	}
	addQuestionFilterFlags(cmd)

	list := &cobra.Command{
		Use:   "list",
		Short: "Print missed questions",
		Args:  cobra.NoArgs,
		RunE:  runQuestionsListCmd,
	}
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a missed question by hand",
		Args:  cobra.NoArgs,
		RunE:  runQuestionsAddCmd,
	}
	add.Flags().StringVar(&manualQuestion.Question, "question", "", "question text")
	add.Flags().StringVar(&manualQuestion.UserAnswer, "user-answer", "", "your answer")
	add.Flags().StringVar(&manualQuestion.CorrectAnswer, "correct-answer", "", "correct answer")
	add.Flags().StringVar(&manualQuestion.Section, "subject", "", "section the question belongs to")
	add.Flags().StringVar(&manualQuestion.Tags, "tags", "", "comma-separated tags")
	add.Flags().StringVar(&manualQuestion.Choices, "choices", "", "answer choices separated by |")
	review := &cobra.Command{
		Use:   "review ID",
		Short: "Toggle the reviewed flag of a question",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuestionsReviewCmd,
	}
	tag := &cobra.Command{
		Use:   "tag ID TAGS",
		Short: "Replace the tags of a question with a comma-separated list",
		Args:  cobra.ExactArgs(2),
		RunE:  runQuestionsTagCmd,
	}
	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuestionsDeleteCmd,
	}
	export := &cobra.Command{
		Use:   "export",
		Short: "Export questions as CSV",
		Args:  cobra.NoArgs,
		RunE:  runQuestionsExportCmd,
	}
	export.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	addQuestionFilterFlags(list)
	addQuestionFilterFlags(export)
	cmd.AddCommand(list, add, review, tag, del, export)
	return cmd
}

func runBrowser(cmd *cobra.Command, filter tracker.QuestionFilter, tab int) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return runProgram(reviewui.NewModel(a.tracker, filter, tab, a.palette))
}

func runQuestionsListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	questions := tracker.FilterQuestions(a.tracker.Questions(cmd.Context()), questionFilter)
	if err := stats.RenderQuestions(cmd.OutOrStdout(), questions, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runQuestionsAddCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.tracker.AddQuestion(cmd.Context(), manualQuestion)
	if err != nil {
		return err
	}
	return printf(cmd.OutOrStdout(), "Added question %s\n", tracker.ShortID(q.ID))
}

func resolveQuestionID(ctx context.Context, a *app, prefix string) (string, error) {
	questions := a.tracker.Questions(ctx)
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return tracker.ResolveID(ids, prefix)
}

func runQuestionsReviewCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveQuestionID(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	q, err := a.tracker.ToggleReviewed(cmd.Context(), id)
	if err != nil {
		return err
	}
	state := "not reviewed"
	if q.Reviewed {
		state = "reviewed"
	}
	return printf(cmd.OutOrStdout(), "Question %s marked %s\n", tracker.ShortID(q.ID), state)
}

func runQuestionsTagCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveQuestionID(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	q, err := a.tracker.EditTags(cmd.Context(), id, args[1])
	if err != nil {
		return err
	}
	return printf(cmd.OutOrStdout(), "Question %s tags: %s\n", tracker.ShortID(q.ID), tracker.JoinTags(q.Tags))
}

func runQuestionsDeleteCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolveQuestionID(cmd.Context(), a, args[0])
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteQuestion(cmd.Context(), id); err != nil {
		return err
	}
	return printf(cmd.OutOrStdout(), "Deleted question %s\n", tracker.ShortID(id))
}

func runQuestionsExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	questions := tracker.FilterQuestions(a.tracker.Questions(cmd.Context()), questionFilter)
	return withOutput(cmd.OutOrStdout(), exportOutput, func(w io.Writer) error {
		return tracker.WriteQuestionsCSV(w, questions)
	})
}

// withOutput runs write against path, or against stdout when path is empty.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

func printf(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
