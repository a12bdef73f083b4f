package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps sql.DB for the availability service.
type DB struct {
	*sql.DB
}

// NewDB opens the database at path and runs migrations. Use ":memory:" for
// tests.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows one writer, and a pooled ":memory:" database would give
	// every connection its own empty copy.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := createTables(db); err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS photographers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			specialties TEXT NOT NULL DEFAULT '[]',
			booking_lead_time_hours INTEGER NOT NULL DEFAULT 24,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS photographer_schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			photographer_id INTEGER NOT NULL,
			day_of_week TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT 0,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (photographer_id, day_of_week),
			FOREIGN KEY (photographer_id) REFERENCES photographers(id)
		)`,

		`CREATE TABLE IF NOT EXISTS date_overrides (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			photographer_id INTEGER NOT NULL,
			date DATETIME NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT 0,
			custom_start TEXT,
			custom_end TEXT,
			reason TEXT,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (photographer_id, date),
			FOREIGN KEY (photographer_id) REFERENCES photographers(id)
		)`,

		`CREATE TABLE IF NOT EXISTS services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			category TEXT NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 120,
			price REAL NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			photographer_id INTEGER NOT NULL,
			service_id INTEGER,
			client_name TEXT,
			client_phone TEXT,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (photographer_id) REFERENCES photographers(id),
			FOREIGN KEY (service_id) REFERENCES services(id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_photographers_active ON photographers(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_photographer ON photographer_schedules(photographer_id, day_of_week)`,
		`CREATE INDEX IF NOT EXISTS idx_overrides_photographer_date ON date_overrides(photographer_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_times ON bookings(photographer_id, start_time, end_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("exec migration %s: %w", trimSQL(q), err)
		}
	}
	return nil
}

func trimSQL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
