/*
checkin.go - Check-in/check-out controller

PURPOSE:
  Turns a scanned site token into a state transition of the per-(employee,
  day) machine:

      NoRecord -> CheckedIn -> CheckedOut (terminal)

TRANSITIONS:
  Scan, NoRecord, before cutoff:  create record with checkin_at = now
  Scan, NoRecord, after cutoff:   silent no-record outcome - late arrivals
                                  do not get a partial record; downstream
                                  classification turns the day into absent
  Scan, CheckedIn:                classify half/full, write checkout,
                                  credit the day's wage, notify
  Scan, CheckedOut:               ErrAlreadyCompleted, no mutation
  Malformed token, any state:     ErrInvalidToken, no mutation, no lock

CONCURRENCY:
  The per-session cooldown absorbs duplicate camera detections of the same
  physical QR code. It is process-local and deliberately NOT the
  correctness mechanism: the ledger's natural-key dedup is what makes
  concurrent or retried checkouts post exactly one credit.

ORDERING:
  The wage credit is posted before the checkout write. A ledger failure
  aborts the transition with the record untouched; a record-write failure
  after the credit is retried safely because the credit is idempotent.
*/
package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/ledger"
)

// =============================================================================
// SCAN RESULT
// =============================================================================

type ScanOutcome string

const (
	OutcomeCheckedIn  ScanOutcome = "checked_in"
	OutcomeCheckedOut ScanOutcome = "checked_out"
	// OutcomeCutoffMissed is the silent policy outcome for a first scan
	// past the cutoff: no record, no error, the day classifies absent.
	OutcomeCutoffMissed ScanOutcome = "cutoff_missed"
)

type ScanResult struct {
	Outcome ScanOutcome
	Record  *Record
	Kind    Kind // set on checkout
}

// =============================================================================
// CONTROLLER
// =============================================================================

type Controller struct {
	policy    engine.Policy
	records   Store
	sites     engine.SiteDirectory
	employees engine.EmployeeDirectory
	ledger    *ledger.Engine
	notifier  engine.Notifier
	log       logrus.FieldLogger

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time

	mu       sync.Mutex
	lastScan map[string]time.Time // session id -> completion time
}

func NewController(policy engine.Policy, records Store, sites engine.SiteDirectory, employees engine.EmployeeDirectory, led *ledger.Engine, notifier engine.Notifier, log logrus.FieldLogger) *Controller {
	return &Controller{
		policy:    policy,
		records:   records,
		sites:     sites,
		employees: employees,
		ledger:    led,
		notifier:  notifier,
		log:       log,
		Clock:     time.Now,
		lastScan:  make(map[string]time.Time),
	}
}

// Scan processes one scanned token for the employee's current day.
func (c *Controller) Scan(ctx context.Context, empID engine.EmployeeID, sessionID, token string) (*ScanResult, error) {
	// Token validation happens before the cooldown guard: a malformed
	// token must leave no lock held.
	siteID, err := ParseToken(token)
	if err != nil {
		return nil, err
	}

	if !c.admitScan(sessionID) {
		return nil, engine.ErrScanThrottled
	}

	site, err := c.sites.Site(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("site lookup: %w", err)
	}
	if site == nil {
		return nil, engine.ErrUnknownSite
	}

	emp, err := c.employees.Employee(ctx, empID)
	if err != nil {
		return nil, fmt.Errorf("employee lookup: %w", err)
	}
	if emp == nil {
		return nil, engine.ErrEmployeeNotFound
	}

	now := c.Clock()
	day := engine.DayOf(now)

	rec, err := c.records.Record(ctx, empID, day)
	if err != nil {
		return nil, fmt.Errorf("attendance lookup: %w", err)
	}

	var result *ScanResult
	switch {
	case rec == nil:
		result, err = c.checkIn(ctx, emp, site.ID, day, now)
	case !rec.Completed():
		result, err = c.checkOut(ctx, emp, rec, now)
	default:
		return nil, engine.ErrAlreadyCompleted
	}
	if err != nil {
		return nil, err
	}

	c.completeScan(sessionID, now)
	return result, nil
}

// =============================================================================
// TRANSITIONS
// =============================================================================

func (c *Controller) checkIn(ctx context.Context, emp *engine.Employee, siteID engine.SiteID, day engine.Day, now time.Time) (*ScanResult, error) {
	if engine.MinuteOf(now) > c.policy.CheckInCutoff {
		// Policy, not error: the day is left without a record.
		return &ScanResult{Outcome: OutcomeCutoffMissed}, nil
	}

	rec := Record{
		EmployeeID: emp.ID,
		Day:        day,
		SiteID:     siteID,
		CheckinAt:  now,
	}
	if err := c.records.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return &ScanResult{Outcome: OutcomeCheckedIn, Record: &rec}, nil
}

func (c *Controller) checkOut(ctx context.Context, emp *engine.Employee, rec *Record, now time.Time) (*ScanResult, error) {
	kind := c.classify(rec.CheckinAt, now)

	// Credit first. If the ledger write fails the whole transition aborts
	// with the record still open; if the record write below fails, the
	// caller's retry re-hits the idempotent credit and only the record
	// write repeats.
	wageKind := ledger.WageFull
	if kind == KindHalf {
		wageKind = ledger.WageHalf
	}
	if err := c.ledger.CreditDailyWage(ctx, emp.ID, rec.Day, wageKind, emp.DailyWage); err != nil {
		return nil, fmt.Errorf("wage credit: %w", err)
	}

	if err := c.records.CompleteRecord(ctx, emp.ID, rec.Day, now, kind); err != nil {
		return nil, err
	}

	completed := *rec
	checkoutAt := now
	completed.CheckoutAt = &checkoutAt
	completed.Kind = kind

	engine.BestEffortNotify(ctx, c.notifier, c.log, engine.Notification{
		Recipient: emp.ID,
		Title:     "Checked Out",
		Body: fmt.Sprintf("Checked out at %s; day recorded as %s, wage %s credited.",
			now.Format("15:04"), kind, wageKind.Amount(emp.DailyWage).StringFixed(2)),
	})

	return &ScanResult{Outcome: OutcomeCheckedOut, Record: &completed, Kind: kind}, nil
}

// classify derives the attendance type from the session interval: a late
// check-in OR an early check-out makes the day a half day.
func (c *Controller) classify(checkinAt, checkoutAt time.Time) Kind {
	if engine.MinuteOf(checkinAt) >= c.policy.LateMorning || engine.MinuteOf(checkoutAt) < c.policy.EarlyAfternoon {
		return KindHalf
	}
	return KindFull
}

// =============================================================================
// SCAN COOLDOWN GUARD
// =============================================================================

// admitScan reports whether the session is outside its cooldown window.
func (c *Controller) admitScan(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if last, ok := c.lastScan[sessionID]; ok {
		if c.Clock().Sub(last) < c.policy.ScanCooldown {
			return false
		}
	}
	return true
}

// completeScan opens the cooldown window for the session.
func (c *Controller) completeScan(sessionID string, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lastScan) > 4096 {
		// Drop expired windows so the map stays bounded.
		for id, t := range c.lastScan {
			if at.Sub(t) >= c.policy.ScanCooldown {
				delete(c.lastScan, id)
			}
		}
	}
	c.lastScan[sessionID] = at
}
