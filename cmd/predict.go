package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/risk"
	"github.com/abhisek/soulsense/internal/store"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Run the wellbeing risk model on a user's latest assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		repo := d.store.ScoreRepo()
		scores, err := repo.QueryScores(ctx, store.QueryOpts{Username: user, Limit: 1})
		if err != nil {
			return fmt.Errorf("query scores: %w", err)
		}
		if len(scores) == 0 {
			return fmt.Errorf("no assessments for %q", user)
		}
		latest := scores[0]
		responses, err := repo.Responses(ctx, latest.ID)
		if err != nil {
			return fmt.Errorf("load responses: %w", err)
		}
		answers := make([]int, len(responses))
		for i, r := range responses {
			answers[i] = r.Value
		}

		m, err := d.risk()
		if err != nil {
			return fmt.Errorf("load risk model: %w", err)
		}
		p := m.Predict(risk.NewFeatures(answers, latest.Age, latest.TotalScore))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Assessment %d taken %s\n\n", latest.ID, latest.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprint(out, risk.Explain(p))
		return nil
	},
}

func init() {
	predictCmd.Flags().StringP("user", "u", "", "User name (required)")
	_ = predictCmd.MarkFlagRequired("user")
}
