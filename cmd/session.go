package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/abhisek/xptrack/internal/config"
	"github.com/abhisek/xptrack/internal/logger"
	"github.com/abhisek/xptrack/internal/store"
	"github.com/abhisek/xptrack/internal/tracker"
	"github.com/spf13/cobra"
)

// defaultProfile is used when no --profile is given and none was used before.
const defaultProfile = "default"

// session bundles what a command needs to work on one profile.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	repo    store.ProfileRepo
	rules   tracker.Rules
	profile string
}

// openSession loads config, builds the logger and repo, and resolves the
// profile key. Callers must Close it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Logging)

	profile, err := resolveProfile(cmd, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	repo, err := openRepo(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &session{
		cfg:     cfg,
		logger:  log.With("profile", profile),
		repo:    repo,
		rules:   cfg.Rules.Tracker(),
		profile: profile,
	}, nil
}

func openRepo(cfg *config.Config, log *slog.Logger) (store.ProfileRepo, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := store.EnsureDir(cfg.DB); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		return store.OpenSQLite(cfg.DB, log)
	default:
		return store.NewFileRepo(filepath.Join(cfg.DataDir, "profiles"), log)
	}
}

// resolveProfile returns --profile (highest priority), then the last used
// profile, then the default.
func resolveProfile(cmd *cobra.Command, dataDir string) (string, error) {
	if p, _ := cmd.Flags().GetString("profile"); p != "" {
		return p, store.ValidateKey(p)
	}
	last, err := store.ReadLastProfile(dataDir)
	if err != nil {
		return "", err
	}
	if last != "" {
		return last, nil
	}
	return defaultProfile, nil
}

func (s *session) Close() error {
	return s.repo.Close()
}

// load returns the profile's user, or an empty one for a new profile.
func (s *session) load(ctx context.Context) (*tracker.User, error) {
	u, found, err := store.LoadOrNew(ctx, s.repo, s.profile, s.rules)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", s.profile, err)
	}
	if !found {
		s.logger.Debug("starting new profile")
	}
	return u, nil
}

func (s *session) save(ctx context.Context, u *tracker.User) error {
	if err := s.repo.Save(ctx, s.profile, u); err != nil {
		return fmt.Errorf("save profile %q: %w", s.profile, err)
	}
	s.remember()
	return nil
}

// remember records the profile as last used. Failure only costs the
// convenience, so it is logged rather than returned.
func (s *session) remember() {
	if err := store.WriteLastProfile(s.cfg.DataDir, s.profile); err != nil {
		s.logger.Warn("could not record last profile", "error", err)
	}
}
