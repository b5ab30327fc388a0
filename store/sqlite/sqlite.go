/*
Package sqlite provides a SQLite-backed named holiday-calendar store.

PURPOSE:
  Persists holiday calendars (name -> set of dates) so schedules and
  adjustments can reference calendars by name across restarts. In
  production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  calendars: Calendar registry (name, description)
  holidays:  One row per (calendar, date), date stored as ISO text

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/busdate.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  cal, err := store.LoadCalendar(ctx, "london")
  adjusted, err := date.Adjust("follow", cal)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - calendars/: in-memory calendar implementations
  - factory/: CalendarResolver consuming this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/busdate/calendars"
	"github.com/warp/busdate/datemath"
)

// Sentinel errors callers can match with errors.Is.
var (
	ErrCalendarNotFound  = errors.New("calendar not found")
	ErrDuplicateCalendar = errors.New("calendar already exists")
)

// Store persists named holiday calendars in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Calendar registry
	CREATE TABLE IF NOT EXISTS calendars (
		name TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	-- Holidays, one row per (calendar, date)
	CREATE TABLE IF NOT EXISTS holidays (
		calendar_name TEXT NOT NULL REFERENCES calendars(name) ON DELETE CASCADE,
		date TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		PRIMARY KEY (calendar_name, date)
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_calendar
		ON holidays(calendar_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALENDAR REGISTRY
// =============================================================================

// CalendarInfo describes a stored calendar.
type CalendarInfo struct {
	Name        string
	Description string
	Holidays    int
}

// CreateCalendar registers an empty calendar.
func (s *Store) CreateCalendar(ctx context.Context, name, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO calendars (name, description, created_at) VALUES (?, ?, ?)",
		name, description, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateCalendar, name)
		}
		return fmt.Errorf("failed to create calendar: %w", err)
	}
	return nil
}

// DeleteCalendar removes a calendar and its holidays.
func (s *Store) DeleteCalendar(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calendars WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete calendar: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, name)
	}
	return nil
}

// ListCalendars returns every stored calendar with its holiday count.
func (s *Store) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT c.name, c.description, COUNT(h.date)
		FROM calendars c
		LEFT JOIN holidays h ON h.calendar_name = c.name
		GROUP BY c.name, c.description
		ORDER BY c.name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}
	defer rows.Close()

	var infos []CalendarInfo
	for rows.Next() {
		var info CalendarInfo
		if err := rows.Scan(&info.Name, &info.Description, &info.Holidays); err != nil {
			return nil, fmt.Errorf("failed to scan calendar: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// AddHolidays inserts dates into a calendar atomically. Dates already
// present are left alone.
func (s *Store) AddHolidays(ctx context.Context, calendar string, dates ...datemath.CalendarDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, err := s.calendarExists(ctx, calendar); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("%w: %s", ErrCalendarNotFound, calendar)
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range dates {
		_, err := sqlTx.ExecContext(ctx,
			"INSERT OR IGNORE INTO holidays (calendar_name, date, created_at) VALUES (?, ?, ?)",
			calendar, d.String(), now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert holiday %s: %w", d, err)
		}
	}
	return sqlTx.Commit()
}

// RemoveHoliday deletes one date from a calendar.
func (s *Store) RemoveHoliday(ctx context.Context, calendar string, d datemath.CalendarDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM holidays WHERE calendar_name = ? AND date = ?",
		calendar, d.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to remove holiday: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s has no holiday on %s", ErrCalendarNotFound, calendar, d)
	}
	return nil
}

// Holidays returns a calendar's dates in ascending order.
func (s *Store) Holidays(ctx context.Context, calendar string) ([]datemath.CalendarDate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ok, err := s.calendarExists(ctx, calendar); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, calendar)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT date FROM holidays WHERE calendar_name = ? ORDER BY date ASC",
		calendar,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var dates []datemath.CalendarDate
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		d, err := datemath.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt holiday row %q: %w", raw, err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// LoadCalendar materializes a stored calendar as an in-memory set.
func (s *Store) LoadCalendar(ctx context.Context, calendar string) (*calendars.Static, error) {
	dates, err := s.Holidays(ctx, calendar)
	if err != nil {
		return nil, err
	}
	return calendars.NewStatic(dates...), nil
}

// Resolver adapts the store to factory.CalendarResolver semantics:
// the empty name resolves to nil (weekend-only), "target" resolves to
// a shared TARGET2 calendar, anything else loads from the store.
func (s *Store) Resolver(ctx context.Context) func(name string) (datemath.HolidayCalendar, error) {
	target := calendars.NewTarget()
	return func(name string) (datemath.HolidayCalendar, error) {
		switch name {
		case "":
			return nil, nil
		case "target":
			return target, nil
		}
		return s.LoadCalendar(ctx, name)
	}
}

func (s *Store) calendarExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM calendars WHERE name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check calendar: %w", err)
	}
	return count > 0, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
