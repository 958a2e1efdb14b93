package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/config"
	"github.com/abhisek/soulsense/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

// openSettings opens the settings file without touching the database.
func openSettings() (*settings.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return settings.Open(cfg.DataDir), nil
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSettings()
		if err != nil {
			return err
		}
		st := s.Load()
		out := cmd.OutOrStdout()
		for _, k := range settings.Keys {
			v, _ := st.Get(k)
			fmt.Fprintf(out, "%-16s %s\n", k, v)
		}
		fmt.Fprintf(out, "\nfile: %s\n", s.Path())
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long:  "Change one setting. Keys: " + strings.Join(settings.Keys, ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSettings()
		if err != nil {
			return err
		}
		st, err := s.Set(args[0], args[1])
		if err != nil {
			return err
		}
		v, _ := st.Get(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
