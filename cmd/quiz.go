package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/physiz/internal/catalog"
	"github.com/abhisek/physiz/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a challenge on the command line (no TUI)",
	Long: `Take a Quiz Arena challenge line by line on stdin/stdout.

Multiple-choice questions accept the option number or its text; numeric
questions accept a number, optionally followed by the unit.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("topic", "", "Topic ID (required, see physiz topics)")
	_ = quizCmd.MarkFlagRequired("topic")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	topic, _ := cmd.Flags().GetString("topic")

	d, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer func() { _ = d.Log.Sync() }()

	cat, err := d.requireCatalog()
	if err != nil {
		return err
	}
	t, ok := cat.Topic(topic)
	if !ok {
		return fmt.Errorf("unknown topic %q (see physiz topics)", topic)
	}

	s, err := d.Arena.Start(cmd.Context(), topic)
	if err != nil {
		return fmt.Errorf("start challenge on %q: %w", topic, err)
	}

	_, err = playChallenge(s, t.Title, cat, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

// playChallenge runs s to completion over in/out and prints the report.
// It returns a nil report if input ends first.
func playChallenge(s *session.ChallengeSession, title string, tiers *catalog.Catalog, in io.Reader, out io.Writer) (*session.Report, error) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Monster Physics: %s (%d questions)\n\n", title, len(s.Questions))

	for s.Phase() == session.PhaseInProgress {
		q := s.Current()
		n, total := s.Progress()

		fmt.Fprintf(out, "── Question %d/%d (level %d) ──\n", n, total, q.Level)
		fmt.Fprintln(out, q.Text)
		for i, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o.Display)
		}

		var answer string
		for answer == "" {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				return nil, scanner.Err()
			}
			answer = strings.TrimSpace(scanner.Text())
		}

		rec, err := s.Submit(answer)
		if err != nil {
			return nil, err
		}
		if rec.IsCorrect {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectDisplay())
			if q.TrapExplanation != "" {
				fmt.Fprintf(out, "Trap: %s\n", q.TrapExplanation)
			}
		}
		if q.Hint != "" {
			fmt.Fprintf(out, "Hint: %s\n", q.Hint)
		}
		fmt.Fprintln(out)
	}

	r, err := s.Report()
	if err != nil {
		return nil, err
	}
	printReport(out, r, tiers)
	return r, nil
}

func printReport(out io.Writer, r *session.Report, tiers *catalog.Catalog) {
	tier, _ := tiers.Tier(r.Tier.Key())
	fmt.Fprintf(out, "── Report: %d/%d correct (%.0f%%) ──\n", r.Score, r.Total, r.Accuracy*100)
	fmt.Fprintf(out, "%s %s\n", tier.Icon, tier.Title)
	if len(tier.Quotes) > 0 {
		fmt.Fprintf(out, "%q\n", tier.Quotes[rand.IntN(len(tier.Quotes))])
	}
}
