package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/profile"
	"github.com/abhisek/soulsense/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect or replace the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions, optionally for one age",
	RunE: func(cmd *cobra.Command, args []string) error {
		ageFlag, _ := cmd.Flags().GetString("age")
		age, err := profile.ParseAge(ageFlag)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		qs, err := d.bank.Load(cmd.Context(), age, 0)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAges\tQuestion")
		for _, q := range qs {
			fmt.Fprintf(w, "%d\t%d-%d\t%s\n", q.ID, q.AgeMin, q.AgeMax, q.Text)
		}
		return w.Flush()
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Replace the question bank with a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bf, err := questions.ParseFile(args[0])
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.bank.Install(cmd.Context(), bf); err != nil {
			return err
		}
		version := bf.Version
		if version == "" {
			version = questions.CustomVersion
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions (version %s).\n", len(bf.Questions), version)
		return nil
	},
}

func init() {
	questionsListCmd.Flags().StringP("age", "a", "", "Only questions suitable for this age")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsImportCmd)
}
