/*
Package attendance implements the attendance half of the reconciliation
engine: the pure day-status classifier and the check-in/check-out
controller that feeds the payroll ledger.

INVARIANT:
  At most one attendance record per (employee, day). Created on the first
  accepted scan of the day, mutated exactly once (checkout), never deleted.

SEE ALSO:
  - status.go: Pure DayStatus classifier and monthly summary fold
  - checkin.go: NoRecord -> CheckedIn -> CheckedOut state machine
  - token.go: Scanned site token validation
*/
package attendance

import (
	"context"
	"time"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// KIND - How a completed day classifies for payroll
// =============================================================================

type Kind string

const (
	KindFull Kind = "full"
	KindHalf Kind = "half"
	// KindAbsent only appears in manually-remarked records; days without a
	// record are classified absent by the state machine, not stored.
	KindAbsent Kind = "absent"
)

// =============================================================================
// RECORD - One row per (employee, day)
// =============================================================================

type Record struct {
	EmployeeID engine.EmployeeID
	Day        engine.Day
	SiteID     engine.SiteID
	CheckinAt  time.Time
	CheckoutAt *time.Time // nil until checkout; must be >= CheckinAt once set
	Kind       Kind       // empty until checkout
	Remarks    string
}

// Completed reports whether the day's session is closed.
func (r *Record) Completed() bool { return r != nil && r.CheckoutAt != nil }

// =============================================================================
// STORE
// =============================================================================

type Store interface {
	// Record returns the record for (employee, day), or (nil, nil) if none.
	Record(ctx context.Context, emp engine.EmployeeID, day engine.Day) (*Record, error)

	// CreateRecord inserts a new open record. Returns engine.ErrRecordExists
	// if a record for (employee, day) is already present.
	CreateRecord(ctx context.Context, r Record) error

	// CompleteRecord writes checkout and kind onto the open record. The
	// update is conditional on the record still being open; a record that
	// is already completed returns engine.ErrAlreadyCompleted. Terminal.
	CompleteRecord(ctx context.Context, emp engine.EmployeeID, day engine.Day, checkoutAt time.Time, kind Kind) error

	// RecordsInMonth returns the employee's records for the month.
	RecordsInMonth(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]Record, error)
}
