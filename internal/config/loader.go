package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. An empty path means DefaultConfigPath.
// The YAML file is optional; a missing file is not an error.
func Load(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if yamlPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		yamlPath = p
	}

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	if err := loadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	if err := resolvePaths(&cfg); err != nil {
		return nil, fmt.Errorf("config paths: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath resolves the config file path:
// 1. XPTRACK_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/xptrack/config.yaml
// 3. ~/.config/xptrack/config.yaml
func DefaultConfigPath() (string, error) {
	if p := os.Getenv("XPTRACK_CONFIG"); p != "" {
		return p, nil
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "xptrack", "config.yaml"), nil
}

// DefaultDataDir resolves $XDG_DATA_HOME/xptrack, falling back to
// ~/.local/share/xptrack.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "xptrack"), nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config; a value that
// does not parse is an error.
func loadEnv(cfg *Config) error {
	setString(&cfg.DataDir, "XPTRACK_DATA_DIR")
	setString(&cfg.Backend, "XPTRACK_BACKEND")
	setString(&cfg.DB, "XPTRACK_DB")
	setString(&cfg.Logging.Level, "XPTRACK_LOG_LEVEL")
	setList(&cfg.Rules.StreakCategories, "XPTRACK_STREAK_CATEGORIES")
	return errors.Join(
		setInt(&cfg.Rules.LevelDivisor, "XPTRACK_LEVEL_DIVISOR"),
		setBool(&cfg.Rules.BreakOnInterleave, "XPTRACK_BREAK_ON_INTERLEAVE"),
	)
}

func resolvePaths(cfg *Config) error {
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		cfg.DataDir = dir
	}
	if cfg.DB == "" {
		cfg.DB = filepath.Join(cfg.DataDir, "xptrack.db")
	}
	return nil
}

func validate(cfg *Config) error {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendJSON, BackendSQLite, cfg.Backend)
	}
	if cfg.Rules.LevelDivisor <= 0 {
		return fmt.Errorf("rules.level_divisor must be positive, got %d", cfg.Rules.LevelDivisor)
	}
	for _, c := range cfg.Rules.StreakCategories {
		if strings.TrimSpace(c) == "" {
			return errors.New("rules.streak_categories must not contain empty names")
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %q is not an integer", key, v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	*dst = b
	return nil
}

// setList parses a comma-separated list, dropping blank items.
func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
