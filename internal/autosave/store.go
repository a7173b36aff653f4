// Package autosave persists project snapshots in the background and restores
// the last one on startup. The desktop host writes a locked JSON file; the
// restricted host keeps the document in a local SQLite key/value table, its
// stand-in for browser storage.
package autosave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"packsmith/internal/fileutil"
)

// ErrNoSave indicates the store holds no document yet.
var ErrNoSave = errors.New("no saved project")

const lockRetryDelay = 100 * time.Millisecond

// Store is the environment-appropriate persistence target for save documents.
type Store interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

// FileStore keeps the save document in a single JSON file guarded by an
// advisory file lock, so a second editor instance cannot clobber it.
type FileStore struct {
	path string
	lock *flock.Flock
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lock: flock.New(path + ".lock")}
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire save lock: %w", err)
	}
	if !locked {
		return errors.New("save file is locked by another instance")
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	return fileutil.WriteFileAtomic(s.path, data, 0o644)
}

func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return data, nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FileStore) Close() error { return nil }

// KVStore keeps the save document in a SQLite key/value table.
type KVStore struct {
	db   *sql.DB
	path string
}

const saveKey = "project"

// OpenKVStore initializes or connects to the key/value database at dbPath.
func OpenKVStore(dbPath string) (*KVStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE TABLE IF NOT EXISTS saves (
        key        TEXT PRIMARY KEY,
        value      BLOB NOT NULL,
        updated_at TEXT NOT NULL
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}

	return &KVStore{db: db, path: dbPath}, nil
}

func (s *KVStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (key, value, updated_at) VALUES (?, ?, datetime('now'))
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		saveKey, data)
	if err != nil {
		return fmt.Errorf("write save row: %w", err)
	}
	return nil
}

func (s *KVStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM saves WHERE key = ?`, saveKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save row: %w", err)
	}
	return data, nil
}

func (s *KVStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE key = ?`, saveKey)
	return err
}

func (s *KVStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
