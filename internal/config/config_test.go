package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/bfrpg-rules/internal/config"
	"github.com/KirkDiggler/bfrpg-rules/internal/entities/bfrpg"
	"github.com/KirkDiggler/bfrpg-rules/internal/errors"
)

// unsetenv clears key for the duration of the test
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.AutoRollTokenHP)
	assert.Equal(t, 250*time.Millisecond, cfg.FormulaTimeout)
	assert.Equal(t, "Death Ray or Poison", cfg.Saves.Death)
	assert.Equal(t, "Magic Wands", cfg.Saves.Wands)
	assert.Equal(t, "Paralysis or Petrify", cfg.Saves.Paralysis)
	assert.Equal(t, "Dragon Breath", cfg.Saves.Breath)
	assert.Equal(t, "Spells", cfg.Saves.Spells)
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("BFRPG_LOG_FORMAT", "JSON")
	t.Setenv("BFRPG_LOG_LEVEL", " debug ")
	t.Setenv("BFRPG_AUTO_ROLL_TOKEN_HP", "false")
	t.Setenv("BFRPG_FORMULA_TIMEOUT", "1s")
	t.Setenv("BFRPG_SAVE_DEATH", "  Poison  ")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.AutoRollTokenHP)
	assert.Equal(t, time.Second, cfg.FormulaTimeout)
	assert.Equal(t, "Poison", cfg.Saves.Death)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{name: "malformed bool", key: "BFRPG_AUTO_ROLL_TOKEN_HP", value: "sometimes", wantMsg: "parse env"},
		{name: "malformed duration", key: "BFRPG_FORMULA_TIMEOUT", value: "soon", wantMsg: "parse env"},
		{name: "non positive timeout", key: "BFRPG_FORMULA_TIMEOUT", value: "0s", wantMsg: "FormulaTimeout"},
		{name: "unknown log format", key: "BFRPG_LOG_FORMAT", value: "xml", wantMsg: "must be one of: text, json"},
		{name: "unknown log level", key: "BFRPG_LOG_LEVEL", value: "trace", wantMsg: "LogLevel"},
		{name: "blank save name", key: "BFRPG_SAVE_WANDS", value: "   ", wantMsg: "Config.Saves.Wands: is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			cfg, err := config.Parse()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	unsetenv(t, "BFRPG_SAVE_SPELLS")
	t.Setenv("BFRPG_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BFRPG_SAVE_SPELLS=Rods, Staves and Spells\nBFRPG_LOG_LEVEL=error\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Rods, Staves and Spells", cfg.Saves.Spells)
	assert.Equal(t, "warn", cfg.LogLevel, "file values never override the environment")
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestSaveLabels(t *testing.T) {
	cfg, err := config.Parse()
	require.NoError(t, err)

	labels := cfg.Saves.Labels()
	require.Len(t, labels, len(bfrpg.Saves))
	for _, key := range bfrpg.Saves {
		assert.NotEmpty(t, labels[key], key)
	}
	assert.Equal(t, "Dragon Breath", labels[bfrpg.SaveBreath])
}
