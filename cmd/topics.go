package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List quiz topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, false)
		if err != nil {
			return err
		}
		cat, err := d.requireCatalog()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		// Sections that link to each topic.
		sections := make(map[string][]string)
		for _, t := range d.Book.Topics() {
			for _, s := range t.Sections {
				if s.Quiz != "" {
					sections[s.Quiz] = append(sections[s.Quiz], s.ID)
				}
			}
		}

		fmt.Fprintf(out, "%-20s  %-30s  %9s  %s\n", "ID", "Title", "Templates", "Sections")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, t := range cat.Topics {
			title := t.Title
			if len(title) > 30 {
				title = title[:27] + "..."
			}
			fmt.Fprintf(out, "%-20s  %-30s  %9d  %s\n",
				t.ID, title, len(t.Templates), strings.Join(sections[t.ID], ", "))
		}

		fmt.Fprintf(out, "\n%d topics\n", len(cat.Topics))
		return nil
	},
}
