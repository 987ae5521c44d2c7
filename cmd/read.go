package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/physiz/internal/app"
	"github.com/abhisek/physiz/internal/textbook"
	"github.com/abhisek/physiz/internal/ui/markdown"
)

var readCmd = &cobra.Command{
	Use:   "read [SECTION]",
	Short: "Print a textbook section, or list sections",
	Long: `Print a textbook section with its conceptual questions.

Without SECTION the table of contents is printed. With --tui the
section opens in the interactive reader instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui, _ := cmd.Flags().GetBool("tui"); tui && len(args) == 1 {
			return runApp(cmd, app.Options{Section: args[0]})
		}

		book, err := textbook.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			printContents(out, book)
			return nil
		}

		sec, ok := book.FindSection(args[0])
		if !ok {
			return fmt.Errorf("unknown section %q (run physiz read for the list)", args[0])
		}
		printSection(out, book, sec)
		return nil
	},
}

func init() {
	readCmd.Flags().Bool("tui", false, "Open the section in the interactive reader")
}

func printContents(out io.Writer, book *textbook.Book) {
	for i, t := range book.Topics() {
		fmt.Fprintf(out, "%d. %s\n", i+1, t.Title)
		for _, s := range t.Sections {
			quiz := ""
			if s.Quiz != "" {
				quiz = "  [quiz: " + s.Quiz + "]"
			}
			fmt.Fprintf(out, "   %-18s %s%s\n", s.ID, s.Title, quiz)
		}
	}
}

func printSection(out io.Writer, book *textbook.Book, sec textbook.Section) {
	fmt.Fprintln(out, markdown.Plain(sec.Content))

	if len(sec.Questions) > 0 {
		fmt.Fprintf(out, "\nQuestions to think about\n%s\n", strings.Repeat("─", 24))
		for i, q := range sec.Questions {
			fmt.Fprintf(out, "%d. %s\n", i+1, q.Text)
			if q.Hint != "" {
				fmt.Fprintf(out, "   Hint: %s\n", q.Hint)
			}
		}
	}

	var extras []string
	for _, d := range book.SectionDerivations(sec.ID) {
		extras = append(extras, fmt.Sprintf("physiz derive %s", d.Key))
	}
	if quiz, ok := book.SectionQuiz(sec.ID); ok {
		extras = append(extras, fmt.Sprintf("physiz quiz --topic %s", quiz))
	}
	if len(extras) > 0 {
		fmt.Fprintf(out, "\nSee also: %s\n", strings.Join(extras, ", "))
	}
}
