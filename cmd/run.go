package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/app"
	"github.com/abhisek/soulsense/internal/i18n"
	"github.com/abhisek/soulsense/internal/screen"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the interactive app (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	prefs := d.settings.Load()
	tr, err := i18n.New(prefs.Language)
	if err != nil {
		slog.Warn("unknown language, using English", "lang", prefs.Language, "error", err)
		tr = i18n.Must("en")
	}

	svc := &screen.Services{
		Bank:      d.bank,
		Scores:    d.store.ScoreRepo(),
		Journal:   d.journal,
		Analytics: d.stats,
		Analyzer:  d.analyzer,
		Settings:  d.settings,
		Risk:      d.risk,
		Prefs:     prefs,
		T:         tr,
		Bell:      os.Stderr,
		Logger:    slog.Default(),
	}

	var opts []app.Option
	if skip, _ := cmd.Flags().GetBool("no-splash"); skip {
		opts = append(opts, app.SkipWelcome())
	}
	slog.Info("tui started", "lang", prefs.Language, "theme", prefs.Theme)
	return app.Run(cmd.Context(), svc, opts...)
}
