package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/leave"
	"github.com/warp/attendance-engine/ledger"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var march = engine.Month{Year: 2025, Month: time.March}

func entry(id, dedupKey string, typ ledger.EntryType, amount int64) ledger.Entry {
	return ledger.Entry{
		ID:         ledger.EntryID(id),
		EmployeeID: "emp-1",
		Amount:     decimal.NewFromInt(amount),
		Type:       typ,
		Reason:     "Daily Wage (FULL)",
		Month:      march,
		DedupKey:   dedupKey,
		CreatedAt:  time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// LEDGER
// =============================================================================

func TestLedger_DedupKeyUniqueIndexBackstop(t *testing.T) {
	// The UNIQUE index rejects a second insert with the same dedup key
	// even when the caller skipped the Exists() check.

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, entry("e1", "wage:emp-1:2025-03-10:FULL", ledger.EntryCredit, 500)))
	err := store.AppendEntry(ctx, entry("e2", "wage:emp-1:2025-03-10:FULL", ledger.EntryCredit, 500))
	assert.ErrorIs(t, err, engine.ErrDuplicateEntry)

	entries, err := store.Entries(ctx, "emp-1", march)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLedger_EmptyDedupKeysDoNotCollide(t *testing.T) {
	// Manual entries carry no key; several NULL keys must coexist.

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendEntry(ctx, entry("e1", "", ledger.EntryCredit, 100)))
	require.NoError(t, store.AppendEntry(ctx, entry("e2", "", ledger.EntryCredit, 100)))

	entries, err := store.Entries(ctx, "emp-1", march)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLedger_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := engine.NewDay(2025, time.March, 10)
	e := entry("e1", "wage:emp-1:2025-03-10:FULL", ledger.EntryCredit, 500)
	e.Amount = decimal.RequireFromString("250.50")
	e.Day = &day
	require.NoError(t, store.AppendEntry(ctx, e))

	exists, err := store.EntryExists(ctx, e.DedupKey)
	require.NoError(t, err)
	assert.True(t, exists)

	entries, err := store.Entries(ctx, "emp-1", march)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.True(t, got.Amount.Equal(e.Amount), "amount = %s", got.Amount)
	assert.Equal(t, march, got.Month)
	require.NotNil(t, got.Day)
	assert.True(t, got.Day.Equal(day))
	assert.Equal(t, e.DedupKey, got.DedupKey)
}

// =============================================================================
// ATTENDANCE
// =============================================================================

func TestAttendance_OneRecordPerDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := attendance.Record{
		EmployeeID: "emp-1",
		Day:        engine.NewDay(2025, time.March, 10),
		SiteID:     engine.NewSiteID(),
		CheckinAt:  time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.CreateRecord(ctx, rec))

	err := store.CreateRecord(ctx, rec)
	assert.ErrorIs(t, err, engine.ErrRecordExists)
}

func TestAttendance_CompleteRecordIsOneShot(t *testing.T) {
	// The checkout update is conditional on the record being open; the
	// second completion affects zero rows.

	store := newTestStore(t)
	ctx := context.Background()
	day := engine.NewDay(2025, time.March, 10)

	require.NoError(t, store.CreateRecord(ctx, attendance.Record{
		EmployeeID: "emp-1",
		Day:        day,
		SiteID:     engine.NewSiteID(),
		CheckinAt:  time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}))

	checkout := time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, store.CompleteRecord(ctx, "emp-1", day, checkout, attendance.KindFull))

	err := store.CompleteRecord(ctx, "emp-1", day, checkout.Add(time.Hour), attendance.KindFull)
	assert.ErrorIs(t, err, engine.ErrAlreadyCompleted)

	rec, err := store.Record(ctx, "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.KindFull, rec.Kind)
	require.NotNil(t, rec.CheckoutAt)
	assert.True(t, rec.CheckoutAt.Equal(checkout))
}

func TestAttendance_CompleteMissingRecord(t *testing.T) {
	store := newTestStore(t)

	err := store.CompleteRecord(context.Background(), "emp-1",
		engine.NewDay(2025, time.March, 10), time.Now(), attendance.KindFull)
	assert.ErrorIs(t, err, engine.ErrAlreadyCompleted)
}

func TestAttendance_RecordsInMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	site := engine.NewSiteID()
	for _, d := range []int{12, 10, 11} {
		require.NoError(t, store.CreateRecord(ctx, attendance.Record{
			EmployeeID: "emp-1",
			Day:        engine.NewDay(2025, time.March, d),
			SiteID:     site,
			CheckinAt:  time.Date(2025, time.March, d, 9, 0, 0, 0, time.UTC),
		}))
	}
	require.NoError(t, store.CreateRecord(ctx, attendance.Record{
		EmployeeID: "emp-1",
		Day:        engine.NewDay(2025, time.April, 1),
		SiteID:     site,
		CheckinAt:  time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC),
	}))

	records, err := store.RecordsInMonth(ctx, "emp-1", march)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-03-10", records[0].Day.String())
	assert.Equal(t, "2025-03-12", records[2].Day.String())
}

// =============================================================================
// LEAVE
// =============================================================================

func TestLeave_TransitionIsOneShot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	req, err := leave.NewRequest("emp-1",
		engine.NewDay(2025, time.March, 10), engine.NewDay(2025, time.March, 12),
		"personal", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, store.CreateLeave(ctx, req))

	at := time.Now().UTC()
	require.NoError(t, store.TransitionLeave(ctx, req.ID, leave.StatusPending, leave.StatusApproved, "admin", at))

	err = store.TransitionLeave(ctx, req.ID, leave.StatusPending, leave.StatusRejected, "admin", at)
	assert.ErrorIs(t, err, engine.ErrAlreadyDecided)

	err = store.TransitionLeave(ctx, "ghost", leave.StatusPending, leave.StatusApproved, "admin", at)
	assert.ErrorIs(t, err, engine.ErrLeaveNotFound)

	got, err := store.Leave(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	assert.Equal(t, "admin", got.DecidedBy)
	require.NotNil(t, got.DecidedAt)
}

func TestLeave_ApprovedInMonthFiltersByStartDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	at := time.Now().UTC()

	inMarch, err := leave.NewRequest("emp-1",
		engine.NewDay(2025, time.March, 10), engine.NewDay(2025, time.March, 11), "", at)
	require.NoError(t, err)
	require.NoError(t, store.CreateLeave(ctx, inMarch))
	require.NoError(t, store.TransitionLeave(ctx, inMarch.ID, leave.StatusPending, leave.StatusApproved, "admin", at))

	inApril, err := leave.NewRequest("emp-1",
		engine.NewDay(2025, time.April, 1), engine.NewDay(2025, time.April, 2), "", at)
	require.NoError(t, err)
	require.NoError(t, store.CreateLeave(ctx, inApril))
	require.NoError(t, store.TransitionLeave(ctx, inApril.ID, leave.StatusPending, leave.StatusApproved, "admin", at))

	stillPending, err := leave.NewRequest("emp-1",
		engine.NewDay(2025, time.March, 20), engine.NewDay(2025, time.March, 21), "", at)
	require.NoError(t, err)
	require.NoError(t, store.CreateLeave(ctx, stillPending))

	approved, err := store.ApprovedInMonth(ctx, "emp-1", march)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, inMarch.ID, approved[0].ID)

	pending, err := store.PendingLeaves(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, stillPending.ID, pending[0].ID)
}

// =============================================================================
// DIRECTORIES AND HOLIDAYS
// =============================================================================

func TestEmployees_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	site := engine.NewSiteID()
	emp := engine.Employee{
		ID:        "emp-1",
		Name:      "Aye Chan",
		DailyWage: decimal.RequireFromString("512.25"),
		SiteID:    &site,
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err := store.Employee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.DailyWage.Equal(emp.DailyWage), "wage = %s", got.DailyWage)
	require.NotNil(t, got.SiteID)
	assert.Equal(t, site, *got.SiteID)

	missing, err := store.Employee(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestHolidays_UpsertByDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	date := engine.NewDay(2025, time.April, 13)

	require.NoError(t, store.SaveHoliday(ctx, engine.Holiday{ID: "h1", Date: date, Description: "Thingyan"}))
	require.NoError(t, store.SaveHoliday(ctx, engine.Holiday{ID: "h2", Date: date, Description: "Thingyan Festival"}))

	isHoliday, err := store.IsHoliday(ctx, date)
	require.NoError(t, err)
	assert.True(t, isHoliday)

	holidays, err := store.HolidaysInRange(ctx,
		engine.NewDay(2025, time.April, 1), engine.NewDay(2025, time.April, 30))
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "Thingyan Festival", holidays[0].Description)

	require.NoError(t, store.DeleteHoliday(ctx, "h1"))
	isHoliday, err = store.IsHoliday(ctx, date)
	require.NoError(t, err)
	assert.False(t, isHoliday)
}
