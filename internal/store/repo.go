package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/xptrack/internal/tracker"
)

// ProfileInfo describes one stored profile.
type ProfileInfo struct {
	Key       string
	UpdatedAt time.Time
}

// ProfileRepo persists users as whole documents keyed by profile name.
type ProfileRepo interface {
	// Save overwrites the document for key. A concurrent Load sees either
	// the old or the new document, never a partial one.
	Save(ctx context.Context, key string, u *tracker.User) error

	// Load rebuilds the user for key from its task log.
	// Returns *NotFoundError or *CorruptStateError.
	Load(ctx context.Context, key string, rules tracker.Rules) (*tracker.User, error)

	// Delete removes the document for key. Returns *NotFoundError if absent.
	Delete(ctx context.Context, key string) error

	// List returns all stored profiles sorted by key.
	List(ctx context.Context) ([]ProfileInfo, error)

	Close() error
}

// LoadOrNew loads key, falling back to an empty user when no document
// exists. The bool reports whether a stored profile was found.
func LoadOrNew(ctx context.Context, repo ProfileRepo, key string, rules tracker.Rules) (*tracker.User, bool, error) {
	u, err := repo.Load(ctx, key, rules)
	if err == nil {
		return u, true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return tracker.NewUser(rules), false, nil
	}
	return nil, false, err
}

const maxKeyLen = 128

// ValidateKey checks that key can name a profile in every backend.
func ValidateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return &tracker.ValidationError{Field: "profile", Reason: "must not be empty"}
	case key != strings.TrimSpace(key):
		return &tracker.ValidationError{Field: "profile", Reason: "must not start or end with whitespace"}
	case len(key) > maxKeyLen:
		return &tracker.ValidationError{Field: "profile", Reason: fmt.Sprintf("longer than %d bytes", maxKeyLen)}
	case strings.HasPrefix(key, "."):
		return &tracker.ValidationError{Field: "profile", Reason: "must not start with a dot"}
	case strings.ContainsAny(key, "/\\\x00"):
		return &tracker.ValidationError{Field: "profile", Reason: "must not contain path separators"}
	}
	return nil
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
