package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sadopc/dailyfloor/internal/dates"
	_ "modernc.org/sqlite"
)

const currentVersion = 1

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// querier is the part of *sql.DB and *sql.Tx the store needs.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	tx  *sql.Tx
	now dates.Clock
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Retention windows are measured against the local system clock.
func New(dbPath string) (*Store, error) {
	return NewWithClock(dbPath, nil)
}

// NewWithClock is New with the clock used for "today" in retention and
// recent-window queries. A nil clock means the local system clock.
func NewWithClock(dbPath string, clock dates.Clock) (*Store, error) {
	if clock == nil {
		clock = dates.SystemClock(nil)
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: clock}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// NewMemoryWithClock creates an in-memory store with a fixed notion of today.
func NewMemoryWithClock(clock dates.Clock) (*Store, error) {
	return NewWithClock(":memory:", clock)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) q() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

func (s *Store) today() string {
	return dates.Today(s.now)
}

// WithTx runs fn against a store bound to one transaction, committing when
// fn returns nil. Nested calls join the outer transaction.
func (s *Store) WithTx(fn func(tx *Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Store{db: s.db, tx: tx, now: s.now}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Reset deletes every profile, floor, feedback and streak row and restores
// default settings.
func (s *Store) Reset() error {
	return s.WithTx(func(tx *Store) error {
		for _, table := range []string{"floor_exercises", "floors", "feedback", "completion_calendar", "streak", "profile", "settings"} {
			if _, err := tx.q().Exec(`DELETE FROM ` + table); err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		if _, err := tx.q().Exec(seedSettings); err != nil {
			return fmt.Errorf("reset settings: %w", err)
		}
		return nil
	})
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

const seedSettings = `
	INSERT OR IGNORE INTO settings (key, value) VALUES
		('calendar_days', '7'),
		('chart_weeks',   '8');
`

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS profile (
		slot            INTEGER PRIMARY KEY CHECK (slot = 1),
		id              TEXT NOT NULL,
		level           INTEGER NOT NULL DEFAULT 5,
		time_preference INTEGER NOT NULL DEFAULT 5,
		equipment       TEXT NOT NULL DEFAULT 'none',
		constraints     TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS floors (
		id                 TEXT PRIMARY KEY,
		date               TEXT NOT NULL UNIQUE,
		completed          INTEGER NOT NULL DEFAULT 0,
		completed_at       TEXT,
		estimated_duration INTEGER NOT NULL DEFAULT 0,
		generated_at       TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS floor_exercises (
		floor_id      TEXT NOT NULL REFERENCES floors(id) ON DELETE CASCADE,
		position      INTEGER NOT NULL,
		exercise_id   TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		target_reps   INTEGER,
		target_time   INTEGER,
		is_bonus      INTEGER NOT NULL DEFAULT 0,
		completed     INTEGER NOT NULL DEFAULT 0,
		actual_reps   INTEGER,
		actual_time   INTEGER,
		PRIMARY KEY (floor_id, position)
	);

	CREATE TABLE IF NOT EXISTS feedback (
		id             TEXT PRIMARY KEY,
		date           TEXT NOT NULL UNIQUE,
		difficulty     TEXT NOT NULL,
		soreness       TEXT NOT NULL DEFAULT '',
		energy         TEXT NOT NULL DEFAULT '',
		time_available INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS streak (
		slot                INTEGER PRIMARY KEY CHECK (slot = 1),
		current             INTEGER NOT NULL DEFAULT 0,
		longest             INTEGER NOT NULL DEFAULT 0,
		grace_days_used     INTEGER NOT NULL DEFAULT 0,
		last_completed_date TEXT
	);

	CREATE TABLE IF NOT EXISTS completion_calendar (
		date TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	` + seedSettings
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/dailyfloor/dailyfloor.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dailyfloor", "dailyfloor.db"), nil
}
