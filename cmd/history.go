package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print past assessment scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		scores, err := d.store.ScoreRepo().QueryScores(cmd.Context(), store.QueryOpts{Username: user, Limit: limit})
		if err != nil {
			return fmt.Errorf("query scores: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(scores) == 0 {
			fmt.Fprintln(out, "No assessments yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDate\tUser\tAge group\tScore\tPercent\tSentiment\tDuration")
		for _, s := range scores {
			pct := 0.0
			if s.MaxScore > 0 {
				pct = 100 * float64(s.TotalScore) / float64(s.MaxScore)
			}
			sent := "-"
			if s.Sentiment != nil {
				sent = fmt.Sprintf("%+.0f", *s.Sentiment)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%.0f%%\t%s\t%s\n",
				s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Username, s.AgeGroup,
				s.TotalScore, s.MaxScore, pct, sent,
				(time.Duration(s.DurationMs) * time.Millisecond).Round(time.Second))
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().StringP("user", "u", "", "Only this user's scores")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of scores to show (0 for all)")
}
