/*
Package leave implements leave-request administration: the monthly
paid-quota allocation and the one-shot pending -> {approved, rejected}
transition that may post an unpaid-leave deduction to the ledger.

QUOTA POLICY:
  A leave is bucketed into the month its start date falls in - an explicit,
  simple policy that avoids proportional splitting across month boundaries.
  approvedDaysSoFar(emp, month) sums the day counts of already-approved
  requests starting in that month.

SEE ALSO:
  - allocator.go: Two-phase review/approve and the quota math
*/
package leave

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// REQUEST
// =============================================================================

type RequestID string

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is immutable once decided except for the status fields, which
// are set exactly once by the allocator.
type Request struct {
	ID         RequestID
	EmployeeID engine.EmployeeID
	StartDate  engine.Day
	EndDate    engine.Day // inclusive, >= StartDate
	Days       int        // inclusive day count of the range
	Status     Status
	Reason     string
	DecidedBy  string
	DecidedAt  *time.Time
	CreatedAt  time.Time
}

// NewRequest validates the range and builds a pending request.
func NewRequest(emp engine.EmployeeID, start, end engine.Day, reason string, now time.Time) (*Request, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil, engine.ErrInvalidPeriod
	}
	return &Request{
		ID:         RequestID(uuid.New().String()),
		EmployeeID: emp,
		StartDate:  start,
		EndDate:    end,
		Days:       start.DaysUntil(end),
		Status:     StatusPending,
		Reason:     reason,
		CreatedAt:  now,
	}, nil
}

// Range is the request's inclusive leave range.
func (r *Request) Range() (engine.Day, engine.Day) { return r.StartDate, r.EndDate }

// =============================================================================
// STORE
// =============================================================================

type Store interface {
	CreateLeave(ctx context.Context, r *Request) error

	// Leave returns the request, or (nil, nil) if unknown.
	Leave(ctx context.Context, id RequestID) (*Request, error)

	// TransitionLeave performs the one-shot status change as a single
	// conditional update keyed on the current status. Returns
	// engine.ErrAlreadyDecided if the request is no longer in `from`,
	// engine.ErrLeaveNotFound if it does not exist.
	TransitionLeave(ctx context.Context, id RequestID, from, to Status, decidedBy string, at time.Time) error

	// ApprovedInMonth returns approved requests whose start date falls in
	// the month.
	ApprovedInMonth(ctx context.Context, emp engine.EmployeeID, month engine.Month) ([]Request, error)

	// PendingLeaves returns the approver queue, oldest first.
	PendingLeaves(ctx context.Context) ([]Request, error)

	// LeavesByEmployee returns the employee's request history.
	LeavesByEmployee(ctx context.Context, emp engine.EmployeeID) ([]Request, error)
}
