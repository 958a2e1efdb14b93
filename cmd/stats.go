package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show EQ progress, journal statistics and insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		dash, err := d.stats.Dashboard(cmd.Context(), user, timeNow())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if dash.EQ.Count == 0 && dash.Journal.Count == 0 {
			fmt.Fprintf(out, "No data for %s yet. Take an assessment to get started.\n", user)
			return nil
		}

		sep := strings.Repeat("─", 48)
		fmt.Fprintf(out, "EQ progress for %s\n%s\n", user, sep)
		if eq := dash.EQ; eq.Count > 0 {
			fmt.Fprintf(out, "Tests: %d  Latest: %d  Best: %d  Average: %.1f\n", eq.Count, eq.Latest, eq.Best, eq.Average)
			if eq.Count >= 2 {
				fmt.Fprintf(out, "Change since first test: %+.1f%%\n", eq.Improvement)
			}
			fmt.Fprintf(out, "\n%s", dash.Chart)
		}

		if js := dash.Journal; js.Count > 0 {
			fmt.Fprintf(out, "\nJournal\n%s\n", sep)
			fmt.Fprintf(out, "Entries: %d  Avg sentiment: %+.1f  Most positive: %+.1f\n", js.Count, js.AvgSentiment, js.MostPositive)
			for _, p := range js.TopPatterns {
				fmt.Fprintf(out, "  %-20s %d (%.0f%%)\n", p.Name, p.Count, p.Percent)
			}
		}

		printSection(out, "Insights", sep, dash.Insights)
		printSection(out, "Health", sep, dash.Health)
		if dash.Nudge != "" {
			fmt.Fprintf(out, "\n%s\n", dash.Nudge)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("user", "u", "", "User name (required)")
	_ = statsCmd.MarkFlagRequired("user")
}
