// Package config provides hierarchical configuration loading for xptrack.
// Precedence: defaults < YAML file < environment variables.
package config

import "github.com/abhisek/xptrack/internal/tracker"

// Backend names accepted in Config.Backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all runtime configuration for the xptrack CLI.
type Config struct {
	DataDir string  `yaml:"data_dir"` // Profile storage root (default: $XDG_DATA_HOME/xptrack)
	Backend string  `yaml:"backend"`  // "json" | "sqlite" (default: "json")
	DB      string  `yaml:"db"`       // SQLite path (default: <data_dir>/xptrack.db)
	Logging Logging `yaml:"logging"`
	Rules   Rules   `yaml:"rules"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`   // debug | info | warn | error (default: "warn")
	Service string `yaml:"service"` // Service name attached to every record
}

// Rules holds the configurable XP engine rules.
type Rules struct {
	StreakCategories  []string `yaml:"streak_categories"`
	LevelDivisor      int      `yaml:"level_divisor"`
	BreakOnInterleave bool     `yaml:"break_on_interleave"`
}

// Tracker converts r to the engine's rule set.
func (r Rules) Tracker() tracker.Rules {
	return tracker.Rules{
		StreakCategories:  append([]string(nil), r.StreakCategories...),
		LevelDivisor:      r.LevelDivisor,
		BreakOnInterleave: r.BreakOnInterleave,
	}
}

// Defaults returns a Config with sensible defaults. DataDir and DB are
// resolved by Load once the environment is known.
func Defaults() Config {
	return Config{
		Backend: BackendJSON,
		Logging: Logging{
			Level:   "warn",
			Service: "xptrack",
		},
		Rules: Rules{
			StreakCategories: append([]string(nil), tracker.DefaultStreakCategories...),
			LevelDivisor:     tracker.DefaultLevelDivisor,
		},
	}
}
