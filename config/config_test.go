package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameroncuttingedge/titration_four/game"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.EventBuffer)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, game.DefaultWeights, cfg.Eval.Weights())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("QUESTION_SET", "/tmp/set.yaml")
	t.Setenv("EVENT_BUFFER", "8")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")
	t.Setenv("EVAL_CENTER", "5")
	t.Setenv("EVAL_MAX_SWING", "150.5")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/set.yaml", cfg.QuestionSet)
	assert.Equal(t, 8, cfg.EventBuffer)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.Eval.Center)
	assert.Equal(t, 150.5, cfg.Eval.MaxSwing)
	assert.Equal(t, 10000, cfg.Eval.Win)
}

func TestParse_BadNumber(t *testing.T) {
	t.Setenv("EVENT_BUFFER", "lots")
	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_FILE=game.log\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("LOG_FILE")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "game.log", cfg.LogFile)
}
