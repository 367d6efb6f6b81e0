package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LastProfileFile records the most recently used profile key in the data dir.
const LastProfileFile = "last_user.txt"

// ReadLastProfile returns the recorded key, or "" when none is recorded or
// the recorded value is not a usable key.
func ReadLastProfile(dir string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, LastProfileFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read last profile: %w", err)
	}
	key := strings.TrimSpace(string(b))
	if ValidateKey(key) != nil {
		return "", nil
	}
	return key, nil
}

// WriteLastProfile records key as the most recently used profile.
func WriteLastProfile(dir, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := writeFileAtomic(filepath.Join(dir, LastProfileFile), []byte(key+"\n"), 0o644); err != nil {
		return fmt.Errorf("write last profile: %w", err)
	}
	return nil
}
