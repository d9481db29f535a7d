package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/leave"
	"github.com/warp/attendance-engine/ledger"
	"github.com/warp/attendance-engine/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type leaveFixture struct {
	store     *memory.Store
	ledger    *ledger.Engine
	allocator *leave.Allocator
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	store := memory.New()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	clock := func() time.Time {
		return time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	}

	led := ledger.New(store, nil, log)
	led.Clock = clock

	alloc := leave.NewAllocator(engine.DefaultPolicy(), store, store, store, led, nil, log)
	alloc.Clock = clock

	store.PutEmployee(engine.Employee{
		ID:        "emp-1",
		Name:      "Aye Chan",
		DailyWage: decimal.NewFromInt(500),
	})
	return &leaveFixture{store: store, ledger: led, allocator: alloc}
}

func day(d int) engine.Day { return engine.NewDay(2025, time.March, d) }

var march = engine.Month{Year: 2025, Month: time.March}

func (f *leaveFixture) submit(t *testing.T, start, end engine.Day) *leave.Request {
	t.Helper()
	req, err := f.allocator.Submit(context.Background(), "emp-1", start, end, "personal")
	require.NoError(t, err)
	return req
}

func (f *leaveFixture) review(t *testing.T, id leave.RequestID) *leave.Decision {
	t.Helper()
	d, err := f.allocator.Review(context.Background(), id)
	require.NoError(t, err)
	return d
}

func (f *leaveFixture) marchEntries(t *testing.T) []ledger.Entry {
	t.Helper()
	entries, err := f.ledger.Entries(context.Background(), "emp-1", march)
	require.NoError(t, err)
	return entries
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmit_InvalidPeriod(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.allocator.Submit(context.Background(), "emp-1", day(12), day(10), "")
	assert.ErrorIs(t, err, engine.ErrInvalidPeriod)
}

func TestSubmit_UnknownEmployee(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.allocator.Submit(context.Background(), "ghost", day(10), day(12), "")
	assert.ErrorIs(t, err, engine.ErrEmployeeNotFound)
}

func TestSubmit_SingleDay(t *testing.T) {
	f := newLeaveFixture(t)

	req := f.submit(t, day(10), day(10))
	assert.Equal(t, 1, req.Days)
	assert.Equal(t, leave.StatusPending, req.Status)
}

// =============================================================================
// REVIEW - QUOTA SPLIT
// =============================================================================

func TestReview_WithinQuota_NoDeduction(t *testing.T) {
	// GIVEN: Quota 2, no prior approvals this month
	// WHEN: A 2-day request is reviewed
	// THEN: All days paid, no confirmation needed

	f := newLeaveFixture(t)
	req := f.submit(t, day(10), day(11))

	d := f.review(t, req.ID)
	assert.Equal(t, 2, d.PaidDays)
	assert.Equal(t, 0, d.UnpaidDays)
	assert.True(t, d.Deduction.IsZero())
	assert.False(t, d.RequiresConfirmation())
}

func TestReview_ExceedsQuota_DeductionComputed(t *testing.T) {
	// GIVEN: Quota 2, no prior approvals
	// WHEN: A 3-day request is reviewed
	// THEN: 2 paid, 1 unpaid, deduction = 1 x daily wage, confirm required

	f := newLeaveFixture(t)
	req := f.submit(t, day(10), day(12))

	d := f.review(t, req.ID)
	assert.Equal(t, 3, d.Days)
	assert.Equal(t, 2, d.PaidDays)
	assert.Equal(t, 1, d.UnpaidDays)
	assert.True(t, d.Deduction.Equal(decimal.NewFromInt(500)), "deduction = %s", d.Deduction)
	assert.Equal(t, 0, d.ApprovedSoFar)
	assert.True(t, d.RequiresConfirmation())
}

func TestReview_QuotaAlreadyConsumed(t *testing.T) {
	// Prior approvals count against the start month's quota.

	f := newLeaveFixture(t)
	first := f.submit(t, day(5), day(6))
	require.NoError(t, f.allocator.Approve(context.Background(), f.review(t, first.ID), "admin"))

	second := f.submit(t, day(20), day(20))
	d := f.review(t, second.ID)
	assert.Equal(t, 2, d.ApprovedSoFar)
	assert.Equal(t, 0, d.PaidDays)
	assert.Equal(t, 1, d.UnpaidDays)
	assert.True(t, d.Deduction.Equal(decimal.NewFromInt(500)))
}

func TestReview_ConflictDaysFlagged(t *testing.T) {
	// Days in the range that already hold attendance are surfaced as a
	// warning, not an error.

	f := newLeaveFixture(t)
	require.NoError(t, f.store.CreateRecord(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Day:        day(11),
		SiteID:     engine.NewSiteID(),
		CheckinAt:  day(11).Time().Add(9 * time.Hour),
	}))

	req := f.submit(t, day(10), day(12))
	d := f.review(t, req.ID)
	require.Len(t, d.ConflictDays, 1)
	assert.True(t, d.ConflictDays[0].Equal(day(11)))
}

func TestReview_DecidedRequest_Rejected(t *testing.T) {
	f := newLeaveFixture(t)
	req := f.submit(t, day(10), day(10))
	require.NoError(t, f.allocator.Approve(context.Background(), f.review(t, req.ID), "admin"))

	_, err := f.allocator.Review(context.Background(), req.ID)
	assert.ErrorIs(t, err, engine.ErrAlreadyDecided)
}

// =============================================================================
// APPROVE - COMMIT
// =============================================================================

func TestApprove_PostsDeductionAndTransitions(t *testing.T) {
	// GIVEN: A reviewed 3-day request with 1 unpaid day
	// WHEN: The decision is approved
	// THEN: Status flips once and exactly one 500 debit lands

	f := newLeaveFixture(t)
	ctx := context.Background()
	req := f.submit(t, day(10), day(12))
	d := f.review(t, req.ID)

	require.NoError(t, f.allocator.Approve(ctx, d, "admin"))

	updated, err := f.store.Leave(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, updated.Status)
	assert.Equal(t, "admin", updated.DecidedBy)

	entries := f.marchEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.EntryDebit, entries[0].Type)
	assert.Equal(t, "Unpaid Leave", entries[0].Reason)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(500)))
}

func TestApprove_WithinQuota_NoLedgerEffect(t *testing.T) {
	f := newLeaveFixture(t)
	req := f.submit(t, day(10), day(11))

	require.NoError(t, f.allocator.Approve(context.Background(), f.review(t, req.ID), "admin"))
	assert.Empty(t, f.marchEntries(t))
}

func TestApprove_StaleDecision(t *testing.T) {
	// GIVEN: Two requests reviewed against the same quota snapshot
	// WHEN: The first is approved, consuming the quota
	// THEN: Committing the second stale decision fails; a fresh review
	//       reflects the consumed quota

	f := newLeaveFixture(t)
	ctx := context.Background()
	first := f.submit(t, day(5), day(6))
	second := f.submit(t, day(20), day(21))

	dFirst := f.review(t, first.ID)
	dSecond := f.review(t, second.ID)
	require.Equal(t, 0, dSecond.ApprovedSoFar)

	require.NoError(t, f.allocator.Approve(ctx, dFirst, "admin"))

	err := f.allocator.Approve(ctx, dSecond, "admin")
	assert.ErrorIs(t, err, engine.ErrStaleDecision)

	// The request is still pending; a re-review computes the real split.
	fresh := f.review(t, second.ID)
	assert.Equal(t, 2, fresh.ApprovedSoFar)
	assert.Equal(t, 2, fresh.UnpaidDays)

	require.NoError(t, f.allocator.Approve(ctx, fresh, "admin"))
	entries := f.marchEntries(t)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestApprove_Twice_AlreadyDecided(t *testing.T) {
	f := newLeaveFixture(t)
	req := f.submit(t, day(10), day(10))
	d := f.review(t, req.ID)

	require.NoError(t, f.allocator.Approve(context.Background(), d, "admin"))
	err := f.allocator.Approve(context.Background(), d, "admin")
	assert.ErrorIs(t, err, engine.ErrAlreadyDecided)
}

func TestApprove_RetriedAfterDeduction_NoDoublePost(t *testing.T) {
	// If the status write failed after the deduction posted, the retry
	// must not post a second debit. The leave-id dedup key absorbs it.

	f := newLeaveFixture(t)
	ctx := context.Background()
	req := f.submit(t, day(10), day(12))
	d := f.review(t, req.ID)

	// Simulate the half-committed state: deduction posted, still pending.
	require.NoError(t, f.ledger.PostLeaveDeduction(ctx, "emp-1", march, d.Deduction, string(req.ID)))

	require.NoError(t, f.allocator.Approve(ctx, d, "admin"))
	assert.Len(t, f.marchEntries(t), 1)
}

// =============================================================================
// REJECT
// =============================================================================

func TestReject_NoLedgerEffect(t *testing.T) {
	f := newLeaveFixture(t)
	ctx := context.Background()
	req := f.submit(t, day(10), day(12))

	require.NoError(t, f.allocator.Reject(ctx, req.ID, "admin", "short staffed"))

	updated, err := f.store.Leave(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, updated.Status)
	assert.Empty(t, f.marchEntries(t))

	// A rejected request cannot be approved afterwards.
	err = f.allocator.Approve(ctx, &leave.Decision{
		RequestID:  req.ID,
		EmployeeID: "emp-1",
		Month:      march,
	}, "admin")
	assert.ErrorIs(t, err, engine.ErrAlreadyDecided)
}

// =============================================================================
// MONTH BUCKETING AND RANGES
// =============================================================================

func TestQuota_BucketsByStartMonth(t *testing.T) {
	// A request spanning a month boundary charges the month it starts in.

	f := newLeaveFixture(t)
	req := f.submit(t, engine.NewDay(2025, time.March, 31), engine.NewDay(2025, time.April, 1))

	d := f.review(t, req.ID)
	assert.Equal(t, march, d.Month)
	assert.Equal(t, 2, d.Days)
	assert.Equal(t, 0, d.UnpaidDays)
}

func TestApprovedRanges_OverlappingWindow(t *testing.T) {
	// GIVEN: An approved leave spanning February into March
	// WHEN: March's ranges are requested
	// THEN: The cross-month range is found via the previous month's bucket

	f := newLeaveFixture(t)
	ctx := context.Background()
	req := f.submit(t, engine.NewDay(2025, time.February, 27), engine.NewDay(2025, time.March, 2))
	require.NoError(t, f.allocator.Approve(ctx, f.review(t, req.ID), "admin"))

	ranges, err := f.allocator.ApprovedRanges(ctx, "emp-1", march.Start(), march.End())
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].Start.Equal(engine.NewDay(2025, time.February, 27)))
	assert.True(t, ranges[0].End.Equal(engine.NewDay(2025, time.March, 2)))
}
