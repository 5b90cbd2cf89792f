package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Store owns the SQLite handle and provides every catalog operation. It is a
// single shared resource: open once at startup, close once at shutdown. The
// underlying connection state is not safe for concurrent mutation without
// external serialization.
type Store struct {
	db   *sqlx.DB
	path string

	strictLending bool
}

// Option configures a Store at open time.
type Option func(*Store)

// WithStrictLending makes LendBook reject a book that already has an open
// lending record. The default contract is permissive: the store records
// whatever the caller asks and single-borrow is the caller's job.
func WithStrictLending() Option {
	return func(s *Store) { s.strictLending = true }
}

// Open opens (creating if absent) the catalog database at path, ensures the
// schema exists, and seeds the default categories. Failures to create or open
// the file wrap ErrStorageUnavailable.
func Open(path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %v", ErrStorageUnavailable, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", path)
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, path, err)
	}

	s := &Store{db: db, path: path}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seedCategories(); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("catalog store opened")
	return s, nil
}

// Close closes the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the location of the database file. Backup tooling copies it
// as an opaque blob.
func (s *Store) Path() string { return s.path }

// timestamp is the store-assigned ISO-8601 time stamp used for all
// date_added, last_modified, lend and return dates. Microsecond precision
// keeps consecutive stamps distinct; the fixed width keeps the column
// lexicographically comparable against date('now') expressions.
func timestamp() string { return time.Now().Format("2006-01-02T15:04:05.000000Z07:00") }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT UNIQUE NOT NULL,
            description TEXT,
            color TEXT DEFAULT '#3498db'
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            isbn TEXT UNIQUE,
            year INTEGER,
            publisher TEXT,
            pages INTEGER,
            language TEXT DEFAULT 'English',
            description TEXT,
            rating REAL DEFAULT 0,
            category_id INTEGER REFERENCES categories(id),
            purchase_date TEXT,
            purchase_price REAL,
            purchase_store TEXT,
            cover_image_path TEXT,
            date_added TEXT DEFAULT CURRENT_TIMESTAMP,
            last_modified TEXT DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS lending (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
            borrower_name TEXT NOT NULL,
            borrower_contact TEXT,
            lend_date TEXT NOT NULL,
            expected_return_date TEXT,
            actual_return_date TEXT,
            notes TEXT,
            status TEXT DEFAULT 'borrowed'
        );`,
		`CREATE TABLE IF NOT EXISTS notes (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
            note_text TEXT NOT NULL,
            date_created TEXT DEFAULT CURRENT_TIMESTAMP
        );`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// seedCategory is one of the categories created at first initialization.
type seedCategory struct {
	name, description, color string
}

var defaultCategories = []seedCategory{
	{"Fiction", "Fictional literature", "#e74c3c"},
	{"Non-Fiction", "Non-fictional works", "#3498db"},
	{"Science", "Scientific literature", "#2ecc71"},
	{"Technology", "Technology and computing", "#9b59b6"},
	{"Biography", "Biographies and memoirs", "#f39c12"},
	{"History", "Historical works", "#1abc9c"},
	{"Self-Help", "Self-improvement books", "#e67e22"},
	{"Children", "Children literature", "#f1c40f"},
	{"Reference", "Reference materials", "#34495e"},
	{"Other", "Miscellaneous", "#95a5a6"},
}

// seedCategories inserts the default categories. OR IGNORE keeps the seeding
// idempotent: rows whose name already exists are left untouched, so repeated
// initialization never duplicates or overwrites a category.
func (s *Store) seedCategories() error {
	ins := squirrel.Insert("categories").
		Options("OR IGNORE").
		Columns("name", "description", "color")
	for _, c := range defaultCategories {
		ins = ins.Values(c.name, c.description, c.color)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build seed insert: %w", err)
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
