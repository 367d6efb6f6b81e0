package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/xptrack/internal/tracker"
)

const profileExt = ".json"

// FileRepo stores each profile as <dir>/<key>.json.
type FileRepo struct {
	dir    string
	logger *slog.Logger
}

// NewFileRepo creates dir if needed and returns a repo rooted there.
func NewFileRepo(dir string, logger *slog.Logger) (*FileRepo, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("profile directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	return &FileRepo{dir: dir, logger: loggerOrDefault(logger)}, nil
}

// Dir returns the directory holding profile documents.
func (r *FileRepo) Dir() string {
	return r.dir
}

// Path returns the document path for key.
func (r *FileRepo) Path(key string) string {
	return filepath.Join(r.dir, key+profileExt)
}

func (r *FileRepo) Save(ctx context.Context, key string, u *tracker.User) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.Path(key), data, 0o644); err != nil {
		return fmt.Errorf("save profile %q: %w", key, err)
	}
	r.logger.Debug("profile saved", "profile", key, "tasks", u.Len(), "xp", u.XP())
	return nil
}

func (r *FileRepo) Load(ctx context.Context, key string, rules tracker.Rules) (*tracker.User, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(r.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, fmt.Errorf("read profile %q: %w", key, err)
	}
	return decodeUser(key, raw, rules, r.logger)
}

func (r *FileRepo) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(r.Path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotFoundError{Key: key}
		}
		return fmt.Errorf("delete profile %q: %w", key, err)
	}
	return nil
}

func (r *FileRepo) List(ctx context.Context) ([]ProfileInfo, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var out []ProfileInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, profileExt) {
			continue
		}
		key := strings.TrimSuffix(name, profileExt)
		if ValidateKey(key) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // removed between ReadDir and Info
		}
		out = append(out, ProfileInfo{Key: key, UpdatedAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *FileRepo) Close() error { return nil }
