/*
Package sqlite provides the SQLite-backed implementation of every
persistence interface the engine consumes.

INTERFACES IMPLEMENTED:
  ledger.Store              Append-only entry persistence
  attendance.Store          One-record-per-day attendance rows
  leave.Store               Leave requests with one-shot transitions
  engine.EmployeeDirectory  Read surface for employee identities
  engine.SiteDirectory      Read surface for scan-token validation
  engine.HolidayCalendar    Company holiday set

APPEND-ONLY ENFORCEMENT:
  No UPDATE or DELETE statements touch ledger_entries. Corrections are
  posted as new, opposite-typed entries.

DEDUP BACKSTOP:
  ledger_entries.dedup_key carries a UNIQUE index. Even if two writers
  race past the Exists() check, the database rejects the second insert
  and the engine treats that as the idempotent no-op it is.

ONE-SHOT TRANSITIONS:
  Leave status changes are a single conditional
  UPDATE ... WHERE status = 'pending'; zero rows affected means the
  request was already decided. The same pattern closes attendance
  records (WHERE checkout_at IS NULL).

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/leave"
	"github.com/warp/attendance-engine/ledger"
)

// Store implements all storage interfaces using SQLite.
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

func (s *Store) migrate() error {
	schema := `
	-- Employees (read-mostly directory; owned by HR administration)
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		daily_wage TEXT NOT NULL,
		site_id TEXT,
		created_at TEXT NOT NULL
	);

	-- Sites (source of valid scan tokens)
	CREATE TABLE IF NOT EXISTS sites (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Company-wide holidays
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		holiday_date TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Attendance: at most one record per (employee, day)
	CREATE TABLE IF NOT EXISTS attendance_records (
		employee_id TEXT NOT NULL,
		day TEXT NOT NULL,
		site_id TEXT NOT NULL,
		checkin_at TEXT NOT NULL,
		checkout_at TEXT,
		kind TEXT,
		remarks TEXT,
		created_at TEXT NOT NULL,
		PRIMARY KEY (employee_id, day)
	);

	-- Leave requests
	CREATE TABLE IF NOT EXISTS leave_requests (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		reason TEXT,
		decided_by TEXT,
		decided_at TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leaves_employee_status_start
		ON leave_requests(employee_id, status, start_date);
	CREATE INDEX IF NOT EXISTS idx_leaves_status
		ON leave_requests(status);

	-- Ledger (append-only); dedup_key UNIQUE is the idempotency backstop
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		entry_type TEXT NOT NULL,
		reason TEXT NOT NULL,
		month_year TEXT NOT NULL,
		day TEXT,
		dedup_key TEXT UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_employee_month
		ON ledger_entries(employee_id, month_year);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEDGER STORE (ledger.Store interface)
// =============================================================================

// AppendEntry adds an entry to the ledger. The ONLY write on this table.
func (s *Store) AppendEntry(ctx context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var day sql.NullString
	if e.Day != nil {
		day = sql.NullString{String: e.Day.String(), Valid: true}
	}

	query := `
		INSERT INTO ledger_entries
		(id, employee_id, amount, entry_type, reason, month_year, day, dedup_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.EmployeeID,
		e.Amount.String(),
		e.Type,
		e.Reason,
		e.Month.String(),
		day,
		nullString(e.DedupKey),
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return engine.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// EntryExists checks whether a dedup key is already present.
func (s *Store) EntryExists(ctx context.Context, dedupKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM ledger_entries WHERE dedup_key = ?",
		dedupKey,
	).Scan(&count)
	return count > 0, err
}

// Entries returns the employee's entries for a month in posting order.
func (s *Store) Entries(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, employee_id, amount, entry_type, reason, month_year, day, dedup_key, created_at
		FROM ledger_entries
		WHERE employee_id = ? AND month_year = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, emp, month.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (ledger.Entry, error) {
	var (
		e         ledger.Entry
		amount    string
		monthYear string
		day       sql.NullString
		dedupKey  sql.NullString
		createdAt string
	)
	err := rows.Scan(&e.ID, &e.EmployeeID, &amount, &e.Type, &e.Reason, &monthYear, &day, &dedupKey, &createdAt)
	if err != nil {
		return e, fmt.Errorf("failed to scan ledger entry: %w", err)
	}

	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return e, fmt.Errorf("bad amount %q: %w", amount, err)
	}
	e.Month, err = engine.ParseMonth(monthYear)
	if err != nil {
		return e, fmt.Errorf("bad month %q: %w", monthYear, err)
	}
	if day.Valid {
		d, err := engine.ParseDay(day.String)
		if err != nil {
			return e, fmt.Errorf("bad day %q: %w", day.String, err)
		}
		e.Day = &d
	}
	e.DedupKey = dedupKey.String
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return e, nil
}

// =============================================================================
// ATTENDANCE STORE (attendance.Store interface)
// =============================================================================

func (s *Store) Record(ctx context.Context, emp engine.EmployeeID, day engine.Day) (*attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, day, site_id, checkin_at, checkout_at, kind, remarks
		FROM attendance_records
		WHERE employee_id = ? AND day = ?
	`
	row := s.db.QueryRowContext(ctx, query, emp, day.String())
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) CreateRecord(ctx context.Context, r attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO attendance_records
		(employee_id, day, site_id, checkin_at, checkout_at, kind, remarks, created_at)
		VALUES (?, ?, ?, ?, NULL, NULL, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.EmployeeID,
		r.Day.String(),
		r.SiteID,
		r.CheckinAt.UTC().Format(time.RFC3339Nano),
		r.Remarks,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return engine.ErrRecordExists
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// CompleteRecord closes the day's open record. Conditional on the record
// still being open, so a raced second checkout affects zero rows.
func (s *Store) CompleteRecord(ctx context.Context, emp engine.EmployeeID, day engine.Day, checkoutAt time.Time, kind attendance.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE attendance_records
		SET checkout_at = ?, kind = ?
		WHERE employee_id = ? AND day = ? AND checkout_at IS NULL
	`
	res, err := s.db.ExecContext(ctx, query,
		checkoutAt.UTC().Format(time.RFC3339Nano), kind, emp, day.String())
	if err != nil {
		return fmt.Errorf("failed to complete attendance record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return engine.ErrAlreadyCompleted
	}
	return nil
}

func (s *Store) RecordsInMonth(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, day, site_id, checkin_at, checkout_at, kind, remarks
		FROM attendance_records
		WHERE employee_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC
	`
	rows, err := s.db.QueryContext(ctx, query, emp, month.Start().String(), month.End().String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*attendance.Record, error) {
	var (
		rec        attendance.Record
		day        string
		checkinAt  string
		checkoutAt sql.NullString
		kind       sql.NullString
		remarks    sql.NullString
	)
	err := row.Scan(&rec.EmployeeID, &day, &rec.SiteID, &checkinAt, &checkoutAt, &kind, &remarks)
	if err != nil {
		return nil, err
	}

	rec.Day, err = engine.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("bad day %q: %w", day, err)
	}
	rec.CheckinAt, _ = time.Parse(time.RFC3339Nano, checkinAt)
	if checkoutAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, checkoutAt.String)
		rec.CheckoutAt = &t
	}
	rec.Kind = attendance.Kind(kind.String)
	rec.Remarks = remarks.String
	return &rec, nil
}

// =============================================================================
// LEAVE STORE (leave.Store interface)
// =============================================================================

const leaveColumns = `id, employee_id, start_date, end_date, days, status, reason, decided_by, decided_at, created_at`

func (s *Store) CreateLeave(ctx context.Context, r *leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leave_requests
		(id, employee_id, start_date, end_date, days, status, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID, r.EmployeeID,
		r.StartDate.String(), r.EndDate.String(),
		r.Days, r.Status, r.Reason,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

func (s *Store) Leave(ctx context.Context, id leave.RequestID) (*leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+leaveColumns+" FROM leave_requests WHERE id = ?", id)
	req, err := scanLeave(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// TransitionLeave is the one-shot status change: a single conditional
// update keyed on the current status.
func (s *Store) TransitionLeave(ctx context.Context, id leave.RequestID, from, to leave.Status, decidedBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE leave_requests
		SET status = ?, decided_by = ?, decided_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := s.db.ExecContext(ctx, query,
		to, decidedBy, at.UTC().Format(time.RFC3339Nano), id, from)
	if err != nil {
		return fmt.Errorf("failed to transition leave request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var count int
		if err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM leave_requests WHERE id = ?", id).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return engine.ErrLeaveNotFound
		}
		return engine.ErrAlreadyDecided
	}
	return nil
}

func (s *Store) ApprovedInMonth(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + leaveColumns + ` FROM leave_requests
		WHERE employee_id = ? AND status = 'approved'
		  AND start_date >= ? AND start_date <= ?
		ORDER BY start_date ASC
	`
	return s.queryLeaves(ctx, query, emp, month.Start().String(), month.End().String())
}

func (s *Store) PendingLeaves(ctx context.Context) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + leaveColumns + " FROM leave_requests WHERE status = 'pending' ORDER BY created_at ASC"
	return s.queryLeaves(ctx, query)
}

func (s *Store) LeavesByEmployee(ctx context.Context, emp engine.EmployeeID) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + leaveColumns + " FROM leave_requests WHERE employee_id = ? ORDER BY created_at ASC"
	return s.queryLeaves(ctx, query, emp)
}

func (s *Store) queryLeaves(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func scanLeave(row rowScanner) (*leave.Request, error) {
	var (
		r         leave.Request
		start     string
		end       string
		reason    sql.NullString
		decidedBy sql.NullString
		decidedAt sql.NullString
		createdAt string
	)
	err := row.Scan(&r.ID, &r.EmployeeID, &start, &end, &r.Days, &r.Status, &reason, &decidedBy, &decidedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	r.StartDate, err = engine.ParseDay(start)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", start, err)
	}
	r.EndDate, err = engine.ParseDay(end)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", end, err)
	}
	r.Reason = reason.String
	r.DecidedBy = decidedBy.String
	if decidedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, decidedAt.String)
		r.DecidedAt = &t
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &r, nil
}

// =============================================================================
// EMPLOYEE DIRECTORY (engine.EmployeeDirectory + admin surface)
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, e engine.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var siteID sql.NullString
	if e.SiteID != nil {
		siteID = sql.NullString{String: string(*e.SiteID), Valid: true}
	}

	query := `
		INSERT INTO employees (id, name, daily_wage, site_id, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			daily_wage = excluded.daily_wage,
			site_id = excluded.site_id
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.DailyWage.String(), siteID,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *Store) Employee(ctx context.Context, id engine.EmployeeID) (*engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		e      engine.Employee
		wage   string
		siteID sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, daily_wage, site_id FROM employees WHERE id = ?", id,
	).Scan(&e.ID, &e.Name, &wage, &siteID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.DailyWage, err = decimal.NewFromString(wage)
	if err != nil {
		return nil, fmt.Errorf("bad daily wage %q: %w", wage, err)
	}
	if siteID.Valid {
		sid := engine.SiteID(siteID.String)
		e.SiteID = &sid
	}
	return &e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, daily_wage, site_id FROM employees ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []engine.Employee
	for rows.Next() {
		var (
			e      engine.Employee
			wage   string
			siteID sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &wage, &siteID); err != nil {
			return nil, err
		}
		e.DailyWage, err = decimal.NewFromString(wage)
		if err != nil {
			return nil, fmt.Errorf("bad daily wage %q: %w", wage, err)
		}
		if siteID.Valid {
			sid := engine.SiteID(siteID.String)
			e.SiteID = &sid
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// =============================================================================
// SITE DIRECTORY (engine.SiteDirectory + admin surface)
// =============================================================================

func (s *Store) SaveSite(ctx context.Context, site engine.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO sites (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`
	_, err := s.db.ExecContext(ctx, query,
		site.ID, site.Name, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) Site(ctx context.Context, id engine.SiteID) (*engine.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var site engine.Site
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM sites WHERE id = ?", id,
	).Scan(&site.ID, &site.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Store) ListSites(ctx context.Context) ([]engine.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM sites ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []engine.Site
	for rows.Next() {
		var site engine.Site
		if err := rows.Scan(&site.ID, &site.Name); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// =============================================================================
// HOLIDAY CALENDAR (engine.HolidayCalendar + admin surface)
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h engine.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, holiday_date, description, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(holiday_date) DO UPDATE SET description = excluded.description
	`
	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.Date.String(), h.Description,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

func (s *Store) IsHoliday(ctx context.Context, day engine.Day) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM holidays WHERE holiday_date = ?", day.String(),
	).Scan(&count)
	return count > 0, err
}

func (s *Store) HolidaysInRange(ctx context.Context, from, to engine.Day) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, holiday_date, description
		FROM holidays
		WHERE holiday_date >= ? AND holiday_date <= ?
		ORDER BY holiday_date ASC
	`
	rows, err := s.db.QueryContext(ctx, query, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []engine.Holiday
	for rows.Next() {
		var (
			h    engine.Holiday
			date string
		)
		if err := rows.Scan(&h.ID, &date, &h.Description); err != nil {
			return nil, err
		}
		h.Date, err = engine.ParseDay(date)
		if err != nil {
			return nil, fmt.Errorf("bad holiday date %q: %w", date, err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
