package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every path lookup at a temp dir and clears XPTRACK_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{
		"XPTRACK_CONFIG", "XPTRACK_DATA_DIR", "XPTRACK_BACKEND", "XPTRACK_DB",
		"XPTRACK_LOG_LEVEL", "XPTRACK_STREAK_CATEGORIES", "XPTRACK_LEVEL_DIVISOR",
		"XPTRACK_BREAK_ON_INTERLEAVE",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeYAML(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "data", "xptrack"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "data", "xptrack", "xptrack.db"), cfg.DB)
	assert.Equal(t, []string{"Typing", "Music"}, cfg.Rules.StreakCategories)
	assert.Equal(t, 100, cfg.Rules.LevelDivisor)
	assert.False(t, cfg.Rules.BreakOnInterleave)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	p := writeYAML(t, dir, `
data_dir: /srv/xp
backend: sqlite
logging:
  level: debug
rules:
  streak_categories: [Piano, Typing, Reading]
  level_divisor: 50
  break_on_interleave: true
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "/srv/xp", cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join("/srv/xp", "xptrack.db"), cfg.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "xptrack", cfg.Logging.Service)
	assert.Equal(t, []string{"Piano", "Typing", "Reading"}, cfg.Rules.StreakCategories)
	assert.Equal(t, 50, cfg.Rules.LevelDivisor)
	assert.True(t, cfg.Rules.BreakOnInterleave)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := isolate(t)
	p := writeYAML(t, dir, "backend: sqlite\nrules:\n  level_divisor: 50\n")
	t.Setenv("XPTRACK_BACKEND", "JSON")
	t.Setenv("XPTRACK_LEVEL_DIVISOR", "25")
	t.Setenv("XPTRACK_STREAK_CATEGORIES", " Drawing , ,Piano")
	t.Setenv("XPTRACK_BREAK_ON_INTERLEAVE", "true")
	t.Setenv("XPTRACK_DB", "/tmp/custom.db")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, 25, cfg.Rules.LevelDivisor)
	assert.Equal(t, []string{"Drawing", "Piano"}, cfg.Rules.StreakCategories)
	assert.True(t, cfg.Rules.BreakOnInterleave)
	assert.Equal(t, "/tmp/custom.db", cfg.DB)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	dir := isolate(t)
	p := writeYAML(t, dir, "backend: sqlite\n")
	t.Setenv("XPTRACK_CONFIG", p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown backend", "backend: postgres\n"},
		{"zero divisor", "rules:\n  level_divisor: 0\n"},
		{"blank category", "rules:\n  streak_categories: [Typing, '']\n"},
		{"malformed yaml", "rules: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			_, err := Load(writeYAML(t, dir, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRulesTracker(t *testing.T) {
	r := Rules{StreakCategories: []string{"Piano"}, LevelDivisor: 10, BreakOnInterleave: true}
	tr := r.Tracker()
	assert.True(t, tr.IsStreakEligible("piano"))
	assert.False(t, tr.IsStreakEligible("Typing"))
	assert.Equal(t, 1, tr.Level(10))
	assert.True(t, tr.BreakOnInterleave)
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"XPTRACK_LEVEL_DIVISOR", "ten"},
		{"XPTRACK_LEVEL_DIVISOR", "1.5"},
		{"XPTRACK_BREAK_ON_INTERLEAVE", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
