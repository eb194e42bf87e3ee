package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps sql.DB for the salon CRM.
type DB struct {
	*sql.DB
}

// NewDB opens the database at path and runs migrations.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
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
		// Staff directory
		`CREATE TABLE IF NOT EXISTS staff (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			phone TEXT,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			is_bookable BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Weekly shift templates, one row per (staff, weekday)
		`CREATE TABLE IF NOT EXISTS staff_schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			staff_id INTEGER NOT NULL,
			day_of_week INTEGER NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (staff_id, day_of_week),
			FOREIGN KEY (staff_id) REFERENCES staff(id)
		)`,

		// Salon-wide holiday calendar with per-staff exceptions
		`CREATE TABLE IF NOT EXISTS holidays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATETIME UNIQUE NOT NULL,
			is_closed BOOLEAN NOT NULL DEFAULT 1,
			exception_staff_ids TEXT,
			reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Time-off intervals (vacation, sick leave, ad-hoc absence)
		`CREATE TABLE IF NOT EXISTS time_off (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			staff_id INTEGER NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (staff_id) REFERENCES staff(id)
		)`,

		// Bookings; the write path lives outside this service but the
		// schema enforces slot uniqueness so two clients can never
		// commit the same staff+time.
		`CREATE TABLE IF NOT EXISTS bookings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			staff_name TEXT NOT NULL,
			client_name TEXT NOT NULL,
			client_phone TEXT,
			service_id INTEGER,
			service_name TEXT,
			start_time DATETIME NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			comment TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Soft checkout holds; expired rows are filtered by predicate,
		// never deleted by a sweeper.
		`CREATE TABLE IF NOT EXISTS holds (
			id TEXT PRIMARY KEY,
			staff_id INTEGER NOT NULL,
			start_time DATETIME NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (staff_id) REFERENCES staff(id)
		)`,

		// Service catalog
		`CREATE TABLE IF NOT EXISTS services (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT,
			duration_minutes INTEGER NOT NULL DEFAULT 60,
			price REAL,
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_staff_bookable ON staff(is_active, is_bookable)`,
		`CREATE INDEX IF NOT EXISTS idx_schedules_staff ON staff_schedules(staff_id, day_of_week)`,
		`CREATE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date)`,
		`CREATE INDEX IF NOT EXISTS idx_time_off_staff ON time_off(staff_id, start_time, end_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_times ON bookings(staff_name, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_staff_slot
			ON bookings(lower(staff_name), start_time) WHERE status != 'cancelled'`,
		`CREATE INDEX IF NOT EXISTS idx_holds_staff ON holds(staff_id, start_time, expires_at)`,
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

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
