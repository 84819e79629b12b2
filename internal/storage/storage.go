// Package storage is the persistent store: a small key-value table in
// a SQLite database. The UI persists two independent entries — the
// serialized task collection and the theme flag. Reads of missing or
// corrupt values degrade to defaults; they are never user-visible
// errors.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskdeck/internal/task"
)

const (
	keyTasks = "tasks"
	keyTheme = "theme"

	themeDark  = "dark"
	themeLight = "light"
)

type Store struct {
	db *sql.DB
}

// Open creates or opens the database at dbPath and ensures the schema.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, err
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Get returns the value for key. ok is false when the key was never
// written; that is not an error.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM settings WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts the value for key.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, value)
	return err
}

// LoadTasks reads the persisted collection. A missing or unparseable
// entry loads as the empty collection; only real database failures are
// reported.
func (s *Store) LoadTasks() ([]task.Task, error) {
	raw, ok, err := s.Get(keyTasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		// Corrupt value, same as never written.
		return nil, nil
	}
	return tasks, nil
}

// SaveTasks writes the whole collection as one serialized entry.
func (s *Store) SaveTasks(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.Set(keyTasks, string(raw))
}

// LoadTheme reads the persisted theme flag. Missing or unrecognized
// values mean the light theme.
func (s *Store) LoadTheme() (dark bool, err error) {
	raw, ok, err := s.Get(keyTheme)
	if err != nil {
		return false, err
	}
	return ok && strings.TrimSpace(raw) == themeDark, nil
}

// SaveTheme persists the theme flag.
func (s *Store) SaveTheme(dark bool) error {
	v := themeLight
	if dark {
		v = themeDark
	}
	return s.Set(keyTheme, v)
}

// sqliteDSN builds a file: DSN for modernc.org/sqlite. mode=rwc
// creates the database file when it does not exist.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
