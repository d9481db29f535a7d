/*
allocator.go - Leave quota allocation and the two-phase approval

APPROVAL IS TWO-PHASE:
  1. Review: compute how many of the request's days are paid vs. unpaid
     and the resulting deduction. If unpaidDays > 0 the approver must see
     the amount and explicitly confirm.
  2. Approve: commit the transition USING THE VALUES CAPTURED AT REVIEW.
     Nothing is recomputed on confirm; instead the commit verifies the
     quota snapshot the review observed still holds and fails with
     ErrStaleDecision if it does not.

CONCURRENCY:
  Approvals and rejections for one employee are serialized by a keyed
  lock (single logical owner per employee record), so two concurrent
  approvals cannot both win the quota check. The conditional
  pending -> approved update in the store is the cross-process backstop.

LEDGER ORDERING:
  The deduction is posted before the status transition, inside the lock.
  A ledger failure aborts the approval with the request still pending;
  the deduction's leave-id dedup key keeps a retried approval from
  double-posting.
*/
package leave

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/ledger"
)

// =============================================================================
// DECISION - The pending-decision value object
// =============================================================================

// Decision carries the values computed at review time. The commit uses
// these captured values; it never re-evaluates against a racily-changed
// approvedDaysSoFar.
type Decision struct {
	RequestID  RequestID
	EmployeeID engine.EmployeeID
	Month      engine.Month
	Days       int
	PaidDays   int
	UnpaidDays int
	Deduction  decimal.Decimal

	// ApprovedSoFar is the quota snapshot the review observed; the commit
	// verifies it is unchanged.
	ApprovedSoFar int

	// ConflictDays are days in the range that already hold an attendance
	// record. Surfaced as a warning; the approver decides.
	ConflictDays []engine.Day

	ComputedAt time.Time
}

// RequiresConfirmation reports whether the approver must be shown the
// deduction before the transition can commit.
func (d *Decision) RequiresConfirmation() bool { return d.UnpaidDays > 0 }

// =============================================================================
// ALLOCATOR
// =============================================================================

type Allocator struct {
	policy    engine.Policy
	leaves    Store
	records   attendance.Store
	employees engine.EmployeeDirectory
	ledger    *ledger.Engine
	notifier  engine.Notifier
	log       logrus.FieldLogger

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time

	mu    sync.Mutex
	locks map[engine.EmployeeID]*sync.Mutex
}

func NewAllocator(policy engine.Policy, leaves Store, records attendance.Store, employees engine.EmployeeDirectory, led *ledger.Engine, notifier engine.Notifier, log logrus.FieldLogger) *Allocator {
	return &Allocator{
		policy:    policy,
		leaves:    leaves,
		records:   records,
		employees: employees,
		ledger:    led,
		notifier:  notifier,
		log:       log,
		Clock:     time.Now,
		locks:     make(map[engine.EmployeeID]*sync.Mutex),
	}
}

// Submit validates and stores a new pending request.
func (a *Allocator) Submit(ctx context.Context, emp engine.EmployeeID, start, end engine.Day, reason string) (*Request, error) {
	if e, err := a.employees.Employee(ctx, emp); err != nil {
		return nil, err
	} else if e == nil {
		return nil, engine.ErrEmployeeNotFound
	}
	req, err := NewRequest(emp, start, end, reason, a.Clock().UTC())
	if err != nil {
		return nil, err
	}
	if err := a.leaves.CreateLeave(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ApprovedDaysSoFar sums the day counts of already-approved requests
// starting in the month.
func (a *Allocator) ApprovedDaysSoFar(ctx context.Context, emp engine.EmployeeID, month engine.Month) (int, error) {
	approved, err := a.leaves.ApprovedInMonth(ctx, emp, month)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range approved {
		total += r.Days
	}
	return total, nil
}

// =============================================================================
// PHASE 1 - REVIEW (compute-and-warn)
// =============================================================================

// Review computes the paid/unpaid split for a pending request. The
// returned Decision is what Approve later commits.
func (a *Allocator) Review(ctx context.Context, id RequestID) (*Decision, error) {
	req, err := a.leaves.Leave(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, engine.ErrLeaveNotFound
	}
	if req.Status != StatusPending {
		return nil, engine.ErrAlreadyDecided
	}

	emp, err := a.employees.Employee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, engine.ErrEmployeeNotFound
	}

	month := engine.MonthOf(req.StartDate)
	soFar, err := a.ApprovedDaysSoFar(ctx, req.EmployeeID, month)
	if err != nil {
		return nil, err
	}

	paidLeft := a.policy.PaidLeaveQuota - soFar
	if paidLeft < 0 {
		paidLeft = 0
	}
	unpaid := req.Days - paidLeft
	if unpaid < 0 {
		unpaid = 0
	}

	conflicts, err := a.conflictDays(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Decision{
		RequestID:     req.ID,
		EmployeeID:    req.EmployeeID,
		Month:         month,
		Days:          req.Days,
		PaidDays:      req.Days - unpaid,
		UnpaidDays:    unpaid,
		Deduction:     a.policy.Deduction(unpaid, emp.DailyWage),
		ApprovedSoFar: soFar,
		ConflictDays:  conflicts,
		ComputedAt:    a.Clock().UTC(),
	}, nil
}

// conflictDays walks the range and flags days already holding attendance.
func (a *Allocator) conflictDays(ctx context.Context, req *Request) ([]engine.Day, error) {
	var conflicts []engine.Day
	for day := req.StartDate; !day.After(req.EndDate); day = day.AddDays(1) {
		rec, err := a.records.Record(ctx, req.EmployeeID, day)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			conflicts = append(conflicts, day)
		}
	}
	return conflicts, nil
}

// =============================================================================
// PHASE 2 - COMMIT (approve / reject)
// =============================================================================

// Approve commits a reviewed decision. The transition is one-shot: a
// request already decided rejects further attempts and never double-posts
// the deduction.
func (a *Allocator) Approve(ctx context.Context, d *Decision, approverID string) error {
	mu := a.employeeLock(d.EmployeeID)
	mu.Lock()
	defer mu.Unlock()

	req, err := a.leaves.Leave(ctx, d.RequestID)
	if err != nil {
		return err
	}
	if req == nil {
		return engine.ErrLeaveNotFound
	}
	if req.Status != StatusPending {
		return engine.ErrAlreadyDecided
	}

	// The captured values are committed as-is, but only if the quota
	// snapshot they were computed against still holds.
	soFar, err := a.ApprovedDaysSoFar(ctx, d.EmployeeID, d.Month)
	if err != nil {
		return err
	}
	if soFar != d.ApprovedSoFar {
		return engine.ErrStaleDecision
	}

	if d.UnpaidDays > 0 {
		if err := a.ledger.PostLeaveDeduction(ctx, d.EmployeeID, d.Month, d.Deduction, string(d.RequestID)); err != nil {
			return fmt.Errorf("leave deduction: %w", err)
		}
	}

	now := a.Clock().UTC()
	if err := a.leaves.TransitionLeave(ctx, d.RequestID, StatusPending, StatusApproved, approverID, now); err != nil {
		return err
	}

	body := fmt.Sprintf("Your leave from %s to %s has been approved.", req.StartDate, req.EndDate)
	if d.UnpaidDays > 0 {
		body += fmt.Sprintf(" %d day(s) exceed the monthly quota; %s will be deducted.",
			d.UnpaidDays, d.Deduction.StringFixed(2))
	}
	engine.BestEffortNotify(ctx, a.notifier, a.log, engine.Notification{
		Recipient: d.EmployeeID,
		Title:     "Leave Approved",
		Body:      body,
	})
	return nil
}

// Reject commits the rejection. No ledger effect.
func (a *Allocator) Reject(ctx context.Context, id RequestID, approverID, reason string) error {
	req, err := a.leaves.Leave(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return engine.ErrLeaveNotFound
	}

	mu := a.employeeLock(req.EmployeeID)
	mu.Lock()
	defer mu.Unlock()

	now := a.Clock().UTC()
	if err := a.leaves.TransitionLeave(ctx, id, StatusPending, StatusRejected, approverID, now); err != nil {
		return err
	}

	body := fmt.Sprintf("Your leave from %s to %s has been rejected.", req.StartDate, req.EndDate)
	if reason != "" {
		body += " Reason: " + reason
	}
	engine.BestEffortNotify(ctx, a.notifier, a.log, engine.Notification{
		Recipient: req.EmployeeID,
		Title:     "Leave Rejected",
		Body:      body,
	})
	return nil
}

func (a *Allocator) employeeLock(emp engine.EmployeeID) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	mu, ok := a.locks[emp]
	if !ok {
		mu = &sync.Mutex{}
		a.locks[emp] = mu
	}
	return mu
}

// ApprovedRanges returns the employee's approved leave ranges overlapping
// [from, to], the shape the day classifier consumes.
func (a *Allocator) ApprovedRanges(ctx context.Context, emp engine.EmployeeID, from, to engine.Day) ([]attendance.LeaveRange, error) {
	// Start-month bucketing means a range overlapping [from, to] starts in
	// the previous month at the earliest reasonable horizon; scan the
	// bucket months touching the window plus one month back.
	seen := make(map[RequestID]bool)
	var ranges []attendance.LeaveRange

	first := engine.MonthOf(from.AddDays(-31))
	last := engine.MonthOf(to)
	for m := first; ; {
		approved, err := a.leaves.ApprovedInMonth(ctx, emp, m)
		if err != nil {
			return nil, err
		}
		for _, r := range approved {
			if seen[r.ID] || r.EndDate.Before(from) || r.StartDate.After(to) {
				continue
			}
			seen[r.ID] = true
			ranges = append(ranges, attendance.LeaveRange{Start: r.StartDate, End: r.EndDate})
		}
		if m == last {
			break
		}
		m = engine.MonthOf(m.End().AddDays(1))
	}
	return ranges, nil
}
