package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/abhisek/soulsense/internal/analytics"
	"github.com/abhisek/soulsense/internal/config"
	"github.com/abhisek/soulsense/internal/journal"
	"github.com/abhisek/soulsense/internal/llm"
	"github.com/abhisek/soulsense/internal/logging"
	"github.com/abhisek/soulsense/internal/questions"
	"github.com/abhisek/soulsense/internal/risk"
	"github.com/abhisek/soulsense/internal/sentiment"
	"github.com/abhisek/soulsense/internal/settings"
	"github.com/abhisek/soulsense/internal/store"
)

// deps are the collaborators every command shares.
type deps struct {
	cfg      *config.Config
	store    *store.Store
	settings *settings.Store
	bank     *questions.Bank
	analyzer sentiment.Analyzer
	journal  *journal.Service
	stats    *analytics.Service

	// risk trains or loads the model once, on first call.
	risk func() (*risk.Model, error)

	closers []io.Closer
}

// openDeps loads configuration, starts file logging, opens the store and
// seeds the question bank.
func openDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.SetDBPath(p)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	d := &deps{cfg: cfg}
	logCloser, err := logging.Setup(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "File logging unavailable:", err)
	} else {
		d.closers = append(d.closers, logCloser)
	}

	if err := store.EnsureDir(cfg.DBPath); err != nil {
		d.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)

	d.bank = questions.NewBank(st.QuestionRepo(), st.MetaRepo())
	if _, err := d.bank.EnsureSeeded(ctx); err != nil {
		d.Close()
		return nil, fmt.Errorf("seed question bank: %w", err)
	}

	d.settings = settings.Open(cfg.DataDir)
	d.analyzer = newAnalyzer(ctx, cfg.LLM, st.EventRepo())
	d.journal = journal.NewService(st.JournalRepo(), d.analyzer)
	d.stats = analytics.NewService(st.ScoreRepo(), st.JournalRepo())

	modelPath := cfg.ModelPath()
	d.risk = sync.OnceValues(func() (*risk.Model, error) {
		return risk.LoadOrTrain(modelPath)
	})

	slog.Debug("dependencies ready", "db", cfg.DBPath, "llm", cfg.LLM.Provider)
	return d, nil
}

// newAnalyzer chains the configured LLM in front of the offline lexicon.
// Without a provider the lexicon works alone.
func newAnalyzer(ctx context.Context, cfg llm.Config, events store.EventRepo) sentiment.Analyzer {
	lex := sentiment.NewLexicon()
	provider, err := llm.NewProvider(ctx, cfg, events)
	switch {
	case errors.Is(err, llm.ErrDisabled):
		return lex
	case err != nil:
		slog.Warn("LLM provider not configured, using lexicon sentiment", "error", err)
		return lex
	}
	return sentiment.NewFallback(sentiment.NewLLM(provider, sentiment.WithTimeout(cfg.Timeout)), lex)
}

// Close releases everything openDeps acquired, newest first.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			slog.Warn("close", "error", err)
		}
	}
	d.closers = nil
}
