package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/physiz/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the Quiz Arena",
	Long:  "Open the TUI in the Quiz Arena. With --topic, a challenge on that topic starts immediately.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		return runApp(cmd, app.Options{StartArena: true, Topic: topic})
	},
}

func init() {
	playCmd.Flags().String("topic", "", "Topic ID to start a challenge on")
}
