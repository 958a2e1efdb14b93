package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/soulsense/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and read journal entries",
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a journal entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		user, _ := flags.GetString("user")
		text, _ := flags.GetString("text")

		draft := journal.Draft{Username: user, Content: text}
		draft.SleepHours = optFloat(flags, "sleep")
		draft.SleepQuality = optInt(flags, "quality")
		draft.EnergyLevel = optInt(flags, "energy")
		draft.WorkHours = optFloat(flags, "work")
		if err := draft.Validate(); err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		e, err := d.journal.Write(cmd.Context(), draft)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Saved entry %d. Sentiment %+.0f\n", e.ID, e.Sentiment)
		if len(e.Patterns) > 0 {
			fmt.Fprintf(out, "Patterns: %s\n", strings.Join(e.Patterns, ", "))
		}
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		entries, err := d.journal.Entries(cmd.Context(), user, limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No journal entries.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDate\tSentiment\tPatterns\tEntry")
		for _, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%+.0f\t%s\t%s\n",
				e.ID, e.EntryDate.Local().Format("2006-01-02 15:04"), e.Sentiment,
				strings.Join(e.Patterns, ","), truncate(strings.ReplaceAll(e.Content, "\n", " "), 50))
		}
		return w.Flush()
	},
}

// optFloat returns the flag value only when it was given.
func optFloat(flags *pflag.FlagSet, name string) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetFloat64(name)
	return &v
}

func optInt(flags *pflag.FlagSet, name string) *int {
	if !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

func init() {
	journalAddCmd.Flags().StringP("user", "u", "", "User name (required)")
	journalAddCmd.Flags().StringP("text", "t", "", "Entry text (required)")
	journalAddCmd.Flags().Float64("sleep", 0, "Hours slept (0-24)")
	journalAddCmd.Flags().Int("quality", 0, "Sleep quality (1-10)")
	journalAddCmd.Flags().Int("energy", 0, "Energy level (1-10)")
	journalAddCmd.Flags().Float64("work", 0, "Hours worked (0-24)")
	_ = journalAddCmd.MarkFlagRequired("user")
	_ = journalAddCmd.MarkFlagRequired("text")

	journalListCmd.Flags().StringP("user", "u", "", "User name (required)")
	journalListCmd.Flags().IntP("limit", "n", 20, "Number of entries (0 for all)")
	_ = journalListCmd.MarkFlagRequired("user")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
}
