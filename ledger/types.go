/*
Package ledger implements the append-only per-employee, per-month
financial ledger.

PURPOSE:
  Every payroll consequence of an attendance or leave transition lands
  here as an immutable Entry. Balance is always computed by summing
  entries - there is no stored balance that can drift from the log.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: No Update, No Delete. EVER.
  2. IMMUTABLE: Once written, entries cannot be modified
  3. TRACEABLE: Every engine-posted entry carries a natural dedup key
     tying it to exactly one triggering event
  4. IDEMPOTENT: Same dedup key = same entry (retries are no-ops)

CORRECTIONS:
  A mistake is never edited. Administrators post a new entry with the
  opposite sign via PostManualEntry; both remain in the log.

DEDUP KEYS:
  Wage credits key on (employee, day, kind) - never on the bare reason
  string, which would collide across days within the same month.
  Leave deductions key on the leave request id.
  Manual entries carry no key: repeated admin postings are intentional.

SEE ALSO:
  - ledger.go: Posting operations and balance computation
  - store/sqlite: Persistence with a unique-index backstop on dedup keys
*/
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// ENTRY - Atomic, immutable ledger line
// =============================================================================

type EntryID string

type EntryType string

const (
	EntryCredit EntryType = "credit"
	EntryDebit  EntryType = "debit"
)

// Entry is one append-only ledger line. Amount is always positive; the
// sign comes from Type. Month is the first-of-month bucket the entry
// settles under; Day is set for day-scoped postings (wage credits).
type Entry struct {
	ID         EntryID
	EmployeeID engine.EmployeeID
	Amount     decimal.Decimal
	Type       EntryType
	Reason     string
	Month      engine.Month
	Day        *engine.Day
	DedupKey   string // empty = no idempotency constraint
	CreatedAt  time.Time
}

// Signed returns the entry's contribution to the balance.
func (e Entry) Signed() decimal.Decimal {
	if e.Type == EntryDebit {
		return e.Amount.Neg()
	}
	return e.Amount
}

// =============================================================================
// WAGE KIND - How a completed attendance day is credited
// =============================================================================

type WageKind string

const (
	WageFull WageKind = "FULL"
	WageHalf WageKind = "HALF"
)

// Amount converts a daily wage into the credit amount for this kind.
func (k WageKind) Amount(dailyWage decimal.Decimal) decimal.Decimal {
	if k == WageHalf {
		return dailyWage.Div(decimal.NewFromInt(2))
	}
	return dailyWage
}

// Reason is the user-visible reason string, e.g. "Daily Wage (FULL)".
func (k WageKind) Reason() string {
	return fmt.Sprintf("Daily Wage (%s)", k)
}

// =============================================================================
// STORE - Persistence interface (append-only)
// =============================================================================

// Store persists ledger entries. No Update, No Delete.
type Store interface {
	// AppendEntry persists an entry. Returns engine.ErrDuplicateEntry if
	// the entry's dedup key already exists. This is the ONLY write.
	AppendEntry(ctx context.Context, e Entry) error

	// EntryExists checks whether a dedup key is already present.
	EntryExists(ctx context.Context, dedupKey string) (bool, error)

	// Entries returns all entries for employee+month in posting order,
	// as a consistent snapshot - never a partial read that observes an
	// in-progress posting.
	Entries(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]Entry, error)
}
