package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a user's scores and journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		yes, _ := cmd.Flags().GetBool("yes")

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "Delete all data for %q? [y/N] ", user)
			in := bufio.NewScanner(cmd.InOrStdin())
			if !in.Scan() || !strings.EqualFold(strings.TrimSpace(in.Text()), "y") {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		scores, err := d.store.ScoreRepo().DeleteUser(ctx, user)
		if err != nil {
			return fmt.Errorf("delete scores: %w", err)
		}
		entries, err := d.store.JournalRepo().DeleteUser(ctx, user)
		if err != nil {
			return fmt.Errorf("delete journal entries: %w", err)
		}
		slog.Info("user data reset", "user", user, "scores", scores, "journal_entries", entries)
		fmt.Fprintf(out, "Deleted %d scores and %d journal entries for %s.\n", scores, entries, user)
		return nil
	},
}

func init() {
	resetCmd.Flags().StringP("user", "u", "", "User name (required)")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	_ = resetCmd.MarkFlagRequired("user")
}
