package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "soulsense",
	Short:        "Emotional intelligence self-assessment",
	Long:         "Soul Sense is a terminal app for EQ self-assessment, journaling and progress tracking.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOULSENSE_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides SOULSENSE_LOG_LEVEL)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
