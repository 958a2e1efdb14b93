package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM request/response events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		events, err := d.store.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if purpose != "" {
			events = slices.DeleteFunc(events, func(e store.LLMRequestEvent) bool { return e.Purpose != purpose })
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Seq\tTime\tPurpose\tModel\tTokens\tLatency\tOK")
		var tokens, failed int
		for _, e := range events {
			ok := "yes"
			if !e.Success {
				ok = "no"
				failed++
			}
			tokens += e.InputTokens + e.OutputTokens
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d/%d\t%dms\t%s\n",
				e.Sequence, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Purpose,
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d calls, %d tokens, %d failed\n", len(events), tokens, failed)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <seq>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sequence %q: %w", args[0], err)
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		e, err := d.store.EventRepo().GetLLMRequest(cmd.Context(), seq)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(out, "Seq:       %d\n", e.Sequence)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
		fmt.Fprintf(out, "Model:     %s\n", e.Model)
		fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
		fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		fmt.Fprintf(out, "Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Fprintf(out, "\n%s\n%s\n%s\n", sep, part.title, sep)
			if part.body == "" {
				fmt.Fprintln(out, "(not captured)")
				continue
			}
			fmt.Fprintln(out, part.body)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose: reflection-sentiment or journal-sentiment")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
