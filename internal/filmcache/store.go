package filmcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cinewrapped/internal/logging"
)

// ErrLocked indicates another process holds the cache.
var ErrLocked = errors.New("film cache is locked by another process")

// Entry is one cached film lookup.
type Entry struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Year     int       `json:"year"`
	TMDBID   int64     `json:"tmdb_id"`
	Payload  []byte    `json:"-"`
	CachedAt time.Time `json:"cached_at"`
}

// Store is a SQLite-backed film cache.
type Store struct {
	db     *sql.DB
	path   string
	lock   *flock.Flock
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the maximum entry age. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for CachedAt and expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open acquires the cache lock and opens (or creates) the database at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("film cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	store := &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	store.logger = logging.NewComponentLogger(store.logger, "filmcache")

	ok, err := store.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = store.lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	store.db = db

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if err := store.initSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.lock != nil {
		errs = append(errs, s.lock.Unlock())
	}
	return errors.Join(errs...)
}

func (s *Store) expired(cachedAt time.Time) bool {
	return s.ttl > 0 && s.now().Sub(cachedAt) > s.ttl
}

// Get returns the entry for key. Expired entries are reported as misses.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	var (
		entry    Entry
		cachedAt int64
	)
	err := retryOnBusy(ctx, func() error {
		return s.db.QueryRowContext(ctx,
			"SELECT key, title, year, tmdb_id, payload, cached_at FROM films WHERE key = ?", key,
		).Scan(&entry.Key, &entry.Title, &entry.Year, &entry.TMDBID, &entry.Payload, &cachedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read cache entry: %w", err)
	}
	entry.CachedAt = time.UnixMilli(cachedAt).UTC()
	if s.expired(entry.CachedAt) {
		s.logger.Debug("cache entry expired", logging.String("key", key))
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Put inserts or replaces an entry. A zero CachedAt is set to now.
func (s *Store) Put(ctx context.Context, entry Entry) error {
	entry.Key = strings.TrimSpace(entry.Key)
	if entry.Key == "" {
		return errors.New("cache key cannot be empty")
	}
	if entry.CachedAt.IsZero() {
		entry.CachedAt = s.now()
	}
	if entry.Payload == nil {
		entry.Payload = []byte{}
	}
	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, `
			INSERT INTO films (key, title, year, tmdb_id, payload, cached_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				title = excluded.title,
				year = excluded.year,
				tmdb_id = excluded.tmdb_id,
				payload = excluded.payload,
				cached_at = excluded.cached_at`,
			entry.Key, entry.Title, entry.Year, entry.TMDBID, entry.Payload, entry.CachedAt.UnixMilli())
		return execErr
	})
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	s.logger.Debug("cached film lookup",
		logging.String("key", entry.Key),
		logging.Int64("tmdb_id", entry.TMDBID))
	return nil
}

// List returns all entries, newest first. Payloads are not loaded.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, title, year, tmdb_id, cached_at FROM films ORDER BY cached_at DESC, key ASC")
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			cachedAt int64
		)
		if err := rows.Scan(&entry.Key, &entry.Title, &entry.Year, &entry.TMDBID, &cachedAt); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		entry.CachedAt = time.UnixMilli(cachedAt).UTC()
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries, expired ones included.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM films").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	return s.deleteWhere(ctx, "DELETE FROM films")
}

// Prune removes expired entries. It is a no-op when no TTL is set.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UnixMilli()
	return s.deleteWhere(ctx, "DELETE FROM films WHERE cached_at < ?", cutoff)
}

func (s *Store) deleteWhere(ctx context.Context, query string, args ...any) (int64, error) {
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("delete cache entries: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted entries: %w", err)
	}
	return removed, nil
}
