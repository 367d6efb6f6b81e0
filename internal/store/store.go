package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/xptrack/internal/tracker"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const profilesTable = "profiles"

const createProfilesTable = `CREATE TABLE IF NOT EXISTS profiles (
	name TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteRepo stores each profile document as one row of a SQLite table.
type SQLiteRepo struct {
	db     *sql.DB
	drv    *entsql.Driver
	logger *slog.Logger
}

// OpenSQLite connects to the SQLite database at dsn, applies pragmas and
// creates the profiles table if needed.
func OpenSQLite(dsn string, logger *slog.Logger) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := drv.Exec(context.Background(), createProfilesTable, []any{}, nil); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &SQLiteRepo{db: db, drv: drv, logger: loggerOrDefault(logger)}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (r *SQLiteRepo) DB() *sql.DB {
	return r.db
}

// Close closes the database connection.
func (r *SQLiteRepo) Close() error {
	return r.drv.Close()
}

func (r *SQLiteRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *SQLiteRepo) Save(ctx context.Context, key string, u *tracker.User) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}

	query, args := r.builder().
		Insert(profilesTable).
		Columns("name", "document", "updated_at").
		Values(key, string(data), time.Now().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save profile %q: %w", key, err)
	}
	r.logger.Debug("profile saved", "profile", key, "tasks", u.Len(), "xp", u.XP())
	return nil
}

func (r *SQLiteRepo) Load(ctx context.Context, key string, rules tracker.Rules) (*tracker.User, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	query, args := r.builder().
		Select("document").
		From(entsql.Table(profilesTable)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query profile %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query profile %q: %w", key, err)
		}
		return nil, &NotFoundError{Key: key}
	}
	var doc string
	if err := rows.Scan(&doc); err != nil {
		return nil, fmt.Errorf("scan profile %q: %w", key, err)
	}
	return decodeUser(key, []byte(doc), rules, r.logger)
}

func (r *SQLiteRepo) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	query, args := r.builder().
		Delete(profilesTable).
		Where(entsql.EQ("name", key)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete profile %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile %q: %w", key, err)
	}
	if n == 0 {
		return &NotFoundError{Key: key}
	}
	return nil
}

func (r *SQLiteRepo) List(ctx context.Context) ([]ProfileInfo, error) {
	query, args := r.builder().
		Select("name", "updated_at").
		From(entsql.Table(profilesTable)).
		OrderBy("name").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []ProfileInfo
	for rows.Next() {
		var (
			key string
			ns  int64
		)
		if err := rows.Scan(&key, &ns); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, ProfileInfo{Key: key, UpdatedAt: time.Unix(0, ns)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}

// applyPragmas configures SQLite for single-user access shared by a few
// processes.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
