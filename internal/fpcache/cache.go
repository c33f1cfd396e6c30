package fpcache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"submatch/internal/fingerprint"
)

const schema = `
CREATE TABLE IF NOT EXISTS fingerprints (
    path          TEXT PRIMARY KEY,
    size          INTEGER NOT NULL,
    mtime_unix_ns INTEGER NOT NULL,
    digests       TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);`

// ErrLocked indicates another process holds the cache lock.
var ErrLocked = errors.New("fingerprint cache is locked by another run")

// Cache persists fingerprint sets keyed by subtitle path, size, and mtime so
// repeated runs skip re-segmentation of unchanged files. Entries for files
// that changed on disk are treated as misses and overwritten on Put.
type Cache struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the cache database under dir and takes an
// exclusive file lock so concurrent runs cannot interleave writes.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, "fingerprints.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(dir, "fingerprints.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply cache schema: %w", err)
	}

	return &Cache{db: db, lock: lock, path: dbPath}, nil
}

// Close releases the database and the file lock.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.db != nil {
		firstErr = c.db.Close()
	}
	if c.lock != nil {
		if err := c.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Get returns the cached set for subtitlePath when the file's current size
// and mtime still match the stored entry.
func (c *Cache) Get(subtitlePath string) (fingerprint.Set, bool) {
	info, err := os.Stat(subtitlePath)
	if err != nil {
		return nil, false
	}

	var (
		size    int64
		mtime   int64
		digests string
	)
	row := c.db.QueryRow(
		`SELECT size, mtime_unix_ns, digests FROM fingerprints WHERE path = ?`,
		subtitlePath,
	)
	if err := row.Scan(&size, &mtime, &digests); err != nil {
		return nil, false
	}
	if size != info.Size() || mtime != info.ModTime().UnixNano() {
		return nil, false
	}

	set := fingerprint.NewSet()
	for _, digest := range strings.Split(digests, "\n") {
		if digest != "" {
			set.Add(digest)
		}
	}
	return set, true
}

// Put stores or replaces the entry for subtitlePath, stamped with the file's
// current size and mtime.
func (c *Cache) Put(subtitlePath string, set fingerprint.Set) error {
	info, err := os.Stat(subtitlePath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", subtitlePath, err)
	}

	digests := make([]string, 0, set.Len())
	for digest := range set {
		digests = append(digests, digest)
	}

	_, err = c.db.Exec(
		`INSERT INTO fingerprints (path, size, mtime_unix_ns, digests, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET
             size = excluded.size,
             mtime_unix_ns = excluded.mtime_unix_ns,
             digests = excluded.digests,
             updated_at = excluded.updated_at`,
		subtitlePath,
		info.Size(),
		info.ModTime().UnixNano(),
		strings.Join(digests, "\n"),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store fingerprints for %s: %w", subtitlePath, err)
	}
	return nil
}
