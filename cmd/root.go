package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/physiz/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "physiz",
	Short: "Physics textbook and Monster Physics quiz arena",
	Long: `Physiz is a terminal physics textbook with a quiz arena.

Read sections with worked derivations, then take five-question
challenges generated from parameterized templates and earn a tier
from Fledgling to Physics Monster.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ./physiz.yaml or $XDG_CONFIG_HOME/physiz/physiz.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a question catalog (overrides catalog.path and PHYSIZ_CATALOG_PATH)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(versionCmd)
}
