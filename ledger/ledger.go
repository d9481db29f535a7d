package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// ENGINE - Posting operations and balance computation
// =============================================================================

// Engine posts entries and derives balances. All posting operations that
// represent an automated payroll consequence are idempotent against
// retries and duplicate delivery; only PostManualEntry is unconstrained.
type Engine struct {
	store    Store
	notifier engine.Notifier
	log      logrus.FieldLogger

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time

	// settleMu serializes the balance-read + debit-post pair per
	// employee+month. The read and the write are one critical section.
	mu       sync.Mutex
	settleMu map[string]*sync.Mutex
}

func New(store Store, notifier engine.Notifier, log logrus.FieldLogger) *Engine {
	return &Engine{
		store:    store,
		notifier: notifier,
		log:      log,
		Clock:    time.Now,
		settleMu: make(map[string]*sync.Mutex),
	}
}

func (e *Engine) now() time.Time { return e.Clock().UTC() }

// =============================================================================
// POSTING OPERATIONS
// =============================================================================

// CreditDailyWage credits one day's wage after checkout. Idempotent by the
// natural key (employee, day, kind): a retried checkout or a duplicate
// realtime delivery produces exactly one entry.
func (e *Engine) CreditDailyWage(ctx context.Context, emp engine.EmployeeID, day engine.Day, kind WageKind, dailyWage decimal.Decimal) error {
	if dailyWage.IsNegative() {
		return engine.ErrInvalidAmount
	}
	amount := kind.Amount(dailyWage)
	if amount.IsZero() {
		// Zero wage: nothing to post, the checkout itself still stands.
		return nil
	}

	key := wageDedupKey(emp, day, kind)
	exists, err := e.store.EntryExists(ctx, key)
	if err != nil {
		return fmt.Errorf("wage credit dedup check: %w", err)
	}
	if exists {
		return nil
	}

	d := day
	err = e.store.AppendEntry(ctx, Entry{
		ID:         newEntryID(),
		EmployeeID: emp,
		Amount:     amount,
		Type:       EntryCredit,
		Reason:     kind.Reason(),
		Month:      engine.MonthOf(day),
		Day:        &d,
		DedupKey:   key,
		CreatedAt:  e.now(),
	})
	if errors.Is(err, engine.ErrDuplicateEntry) {
		// Lost the race to a concurrent retry; net effect is identical.
		return nil
	}
	return err
}

// PostLeaveDeduction posts the unpaid-leave debit for an approved leave.
// One deduction per approved-leave transition: the one-shot status
// transition is the primary guard, the leave-id dedup key the backstop.
func (e *Engine) PostLeaveDeduction(ctx context.Context, emp engine.EmployeeID, month engine.Month, amount decimal.Decimal, leaveID string) error {
	if !amount.IsPositive() {
		return engine.ErrInvalidAmount
	}
	err := e.store.AppendEntry(ctx, Entry{
		ID:         newEntryID(),
		EmployeeID: emp,
		Amount:     amount,
		Type:       EntryDebit,
		Reason:     "Unpaid Leave",
		Month:      month,
		DedupKey:   "leave:" + leaveID,
		CreatedAt:  e.now(),
	})
	if errors.Is(err, engine.ErrDuplicateEntry) {
		return nil
	}
	return err
}

// PostManualEntry posts an unconstrained administrative entry. No dedup:
// administrators may intentionally post repeated entries.
func (e *Engine) PostManualEntry(ctx context.Context, emp engine.EmployeeID, amount decimal.Decimal, typ EntryType, reason string) (*Entry, error) {
	if !amount.IsPositive() {
		return nil, engine.ErrInvalidAmount
	}
	if typ != EntryCredit && typ != EntryDebit {
		return nil, fmt.Errorf("%w: unknown entry type %q", engine.ErrInvalidAmount, typ)
	}
	entry := Entry{
		ID:         newEntryID(),
		EmployeeID: emp,
		Amount:     amount,
		Type:       typ,
		Reason:     reason,
		Month:      engine.MonthOf(engine.DayOf(e.now())),
		CreatedAt:  e.now(),
	}
	if err := e.store.AppendEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// =============================================================================
// SETTLEMENT
// =============================================================================

// SettleBalance reads the month's balance and, if positive, debits exactly
// that amount with reason "Salary Settlement". The read and the debit are
// one critical section per employee+month, so two rapid settlement calls
// cannot both observe the same positive balance.
func (e *Engine) SettleBalance(ctx context.Context, emp engine.EmployeeID, month engine.Month) (decimal.Decimal, error) {
	mu := e.settleLock(emp, month)
	mu.Lock()
	defer mu.Unlock()

	balance, err := e.Balance(ctx, emp, month)
	if err != nil {
		return decimal.Zero, err
	}
	if !balance.IsPositive() {
		return decimal.Zero, engine.ErrNothingToSettle
	}

	err = e.store.AppendEntry(ctx, Entry{
		ID:         newEntryID(),
		EmployeeID: emp,
		Amount:     balance,
		Type:       EntryDebit,
		Reason:     "Salary Settlement",
		Month:      month,
		CreatedAt:  e.now(),
	})
	if err != nil {
		return decimal.Zero, err
	}

	engine.BestEffortNotify(ctx, e.notifier, e.log, engine.Notification{
		Recipient: emp,
		Title:     "Salary Settled",
		Body:      fmt.Sprintf("Your balance of %s for %s has been settled.", balance.StringFixed(2), month),
	})
	return balance, nil
}

func (e *Engine) settleLock(emp engine.EmployeeID, month engine.Month) *sync.Mutex {
	key := string(emp) + "|" + month.String()
	e.mu.Lock()
	defer e.mu.Unlock()
	mu, ok := e.settleMu[key]
	if !ok {
		mu = &sync.Mutex{}
		e.settleMu[key] = mu
	}
	return mu
}

// =============================================================================
// READ SURFACE
// =============================================================================

// Balance derives the month's balance: sum of credits minus sum of debits.
// Always recomputed from the entry log, never stored.
func (e *Engine) Balance(ctx context.Context, emp engine.EmployeeID, month engine.Month) (decimal.Decimal, error) {
	entries, err := e.store.Entries(ctx, emp, month)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, entry := range entries {
		balance = balance.Add(entry.Signed())
	}
	return balance, nil
}

// Entries returns the month's entries for dashboards and report export.
func (e *Engine) Entries(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]Entry, error) {
	return e.store.Entries(ctx, emp, month)
}

// =============================================================================
// HELPERS
// =============================================================================

func newEntryID() EntryID {
	return EntryID(uuid.New().String())
}

// wageDedupKey is the natural key for a day's wage credit. It is
// day-qualified on purpose: keying by reason alone would conflate credits
// across different days of the same month.
func wageDedupKey(emp engine.EmployeeID, day engine.Day, kind WageKind) string {
	return fmt.Sprintf("wage:%s:%s:%s", emp, day, kind)
}
