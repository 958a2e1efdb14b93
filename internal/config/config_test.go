package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/soulsense/internal/llm"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", home)
	t.Setenv("SOULSENSE_DATA_DIR", "")
	t.Setenv("SOULSENSE_DB", "")
	t.Setenv("SOULSENSE_LLM_PROVIDER", "unset")
	os.Unsetenv("SOULSENSE_LLM_PROVIDER")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	dir := filepath.Join(home, "soulsense")
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, DBFile), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, LogFile), cfg.LogPath())
	assert.Equal(t, filepath.Join(dir, "risk_model.json"), cfg.ModelPath())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, llm.ProviderNone, cfg.LLM.Provider)
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SOULSENSE_DATA_DIR", "/srv/soul")
	t.Setenv("SOULSENSE_DB", "/tmp/x/scores.db")
	t.Setenv("SOULSENSE_LOG_LEVEL", "debug")
	t.Setenv("SOULSENSE_LLM_PROVIDER", "anthropic")
	t.Setenv("SOULSENSE_ANTHROPIC_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/soul", cfg.DataDir)
	assert.Equal(t, "/tmp/x/scores.db", cfg.DBPath)
	assert.Equal(t, "/tmp/x/risk_model.json", cfg.ModelPath())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "k", cfg.LLM.Anthropic.APIKey)

	cfg.SetDBPath("")
	assert.Equal(t, "/tmp/x/scores.db", cfg.DBPath)
	cfg.SetDBPath("/elsewhere.db")
	assert.Equal(t, "/elsewhere.db", cfg.DBPath)
}
