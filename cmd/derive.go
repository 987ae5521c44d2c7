package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/physiz/internal/textbook"
	"github.com/abhisek/physiz/internal/ui/markdown"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [KEY]",
	Short: "Print an equation derivation, or list them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := textbook.Default()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			for _, d := range book.Derivations() {
				fmt.Fprintf(out, "%-16s %s\n", d.Key, d.Title)
			}
			return nil
		}

		d, ok := book.Derivation(args[0])
		if !ok {
			return fmt.Errorf("unknown derivation %q (run physiz derive for the list)", args[0])
		}
		printDerivation(out, d)
		return nil
	},
}

func printDerivation(out io.Writer, d textbook.Derivation) {
	fmt.Fprintln(out, d.Title)
	if d.Intro != "" {
		fmt.Fprintf(out, "\n%s\n", markdown.Plain(d.Intro))
	}
	for i, st := range d.Steps {
		fmt.Fprintf(out, "\nStep %d: %s\n", i+1, st.Title)
		if st.Text != "" {
			fmt.Fprintln(out, markdown.Plain(st.Text))
		}
		if st.Equation != "" {
			fmt.Fprintf(out, "    %s\n", st.Equation)
		}
	}
}
