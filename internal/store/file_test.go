package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/xptrack/internal/tracker"
)

func newTestFileRepo(t *testing.T) *FileRepo {
	t.Helper()
	r, err := NewFileRepo(t.TempDir(), nil)
	require.NoError(t, err)
	return r
}

func TestFileRepoRoundTrip(t *testing.T) {
	r := newTestFileRepo(t)
	ctx := context.Background()
	u := sampleUser(t)

	require.NoError(t, r.Save(ctx, "alice", u))
	got, err := r.Load(ctx, "alice", tracker.DefaultRules())
	require.NoError(t, err)
	assertSameUser(t, u, got)
}

func TestFileRepoSaveOverwrites(t *testing.T) {
	r := newTestFileRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "alice", sampleUser(t)))

	small := tracker.NewUser(tracker.DefaultRules())
	_, err := small.AddTask(tracker.Task{Name: "Read", Category: "Reading", Stat: tracker.StatMind, Duration: 5, Date: testDay})
	require.NoError(t, err)
	require.NoError(t, r.Save(ctx, "alice", small))

	got, err := r.Load(ctx, "alice", tracker.DefaultRules())
	require.NoError(t, err)
	assertSameUser(t, small, got)
}

func TestFileRepoLeavesNoTempFiles(t *testing.T) {
	r := newTestFileRepo(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Save(ctx, "alice", sampleUser(t)))
	}

	entries, err := os.ReadDir(r.Dir())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"alice.json"}, names)
}

func TestFileRepoLoadMissing(t *testing.T) {
	r := newTestFileRepo(t)
	_, err := r.Load(context.Background(), "nobody", tracker.DefaultRules())

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, "nobody", nf.Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadOrNew(t *testing.T) {
	r := newTestFileRepo(t)
	ctx := context.Background()

	u, found, err := LoadOrNew(ctx, r, "fresh", tracker.DefaultRules())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, u.Len())

	require.NoError(t, r.Save(ctx, "fresh", sampleUser(t)))
	u, found, err = LoadOrNew(ctx, r, "fresh", tracker.DefaultRules())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, u.Len())
}

func TestLoadOrNewSurfacesCorruption(t *testing.T) {
	r := newTestFileRepo(t)
	require.NoError(t, os.WriteFile(r.Path("broken"), []byte(`{"xp": 0, "stats": {}}`), 0o644))

	u, _, err := LoadOrNew(context.Background(), r, "broken", tracker.DefaultRules())
	assert.Nil(t, u)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileRepoDeleteAndList(t *testing.T) {
	r := newTestFileRepo(t)
	ctx := context.Background()

	for _, k := range []string{"zed", "amy", "mo"} {
		require.NoError(t, r.Save(ctx, k, sampleUser(t)))
	}
	require.NoError(t, WriteLastProfile(r.Dir(), "amy"))
	require.NoError(t, os.Mkdir(filepath.Join(r.Dir(), "dir.json"), 0o755))

	list, err := r.List(ctx)
	require.NoError(t, err)
	var keys []string
	for _, p := range list {
		keys = append(keys, p.Key)
		assert.False(t, p.UpdatedAt.IsZero())
	}
	assert.Equal(t, []string{"amy", "mo", "zed"}, keys)

	require.NoError(t, r.Delete(ctx, "mo"))
	assert.ErrorIs(t, r.Delete(ctx, "mo"), ErrNotFound)

	list, err = r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"alice", false},
		{"Alice Smith", false},
		{"", true},
		{"   ", true},
		{" alice", true},
		{"../etc/passwd", true},
		{"a/b", true},
		{`a\b`, true},
		{".hidden", true},
		{strings.Repeat("x", 129), true},
	}
	for _, tt := range tests {
		err := ValidateKey(tt.key)
		if tt.wantErr {
			var ve *tracker.ValidationError
			assert.True(t, errors.As(err, &ve), "key %q: got %v", tt.key, err)
		} else {
			assert.NoError(t, err, "key %q", tt.key)
		}
	}
}

func TestFileRepoRejectsBadKey(t *testing.T) {
	r := newTestFileRepo(t)
	ctx := context.Background()

	err := r.Save(ctx, "../escape", sampleUser(t))
	var ve *tracker.ValidationError
	require.True(t, errors.As(err, &ve))

	_, err = r.Load(ctx, "../escape", tracker.DefaultRules())
	require.True(t, errors.As(err, &ve))
}

func TestLastProfile(t *testing.T) {
	dir := t.TempDir()

	key, err := ReadLastProfile(dir)
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, WriteLastProfile(dir, "alice"))
	key, err = ReadLastProfile(dir)
	require.NoError(t, err)
	assert.Equal(t, "alice", key)

	require.NoError(t, os.WriteFile(filepath.Join(dir, LastProfileFile), []byte("../x\n"), 0o644))
	key, err = ReadLastProfile(dir)
	require.NoError(t, err)
	assert.Empty(t, key)

	assert.Error(t, WriteLastProfile(dir, ""))
}
