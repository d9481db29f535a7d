/*
errors.go - Centralized error taxonomy

PURPOSE:
  All sentinel errors in one place for consistency and discoverability.
  The taxonomy follows the operational split the handlers care about:

  1. Validation errors  - malformed input, nothing mutated, 400 to caller
  2. State conflicts    - expected recoverable no-ops (double checkout,
                          approving a decided leave), 409 to caller
  3. Not-found          - unknown employee/site/leave, 404 to caller
  4. Everything else    - dependency failures; fatal to the operation and
                          retried by the caller (retries are safe because
                          ledger posting is idempotent by natural key)

USAGE:
  Domain packages return these directly or wrap them:

    if engine.IsConflict(err) {
        // expected condition, not a fault
    }
*/
package engine

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidToken is returned when a scanned token is malformed or does
	// not decode to a site identifier. No state is mutated.
	ErrInvalidToken = errors.New("invalid site token")

	// ErrUnknownSite is returned when a well-formed token names a site that
	// does not exist.
	ErrUnknownSite = errors.New("unknown site")

	// ErrAlreadyCompleted is returned when a scan arrives for a day whose
	// attendance record already has a checkout. Expected, recoverable.
	ErrAlreadyCompleted = errors.New("attendance already completed for today")

	// ErrRecordExists is returned by stores when an attendance record for
	// (employee, day) already exists.
	ErrRecordExists = errors.New("attendance record already exists")

	// ErrScanThrottled is returned while the per-session cooldown window is
	// open, absorbing duplicate camera detections of the same QR code.
	ErrScanThrottled = errors.New("scan ignored: cooldown window open")

	// ErrAlreadyDecided is returned when approving or rejecting a leave
	// request that is no longer pending. The transition is one-shot.
	ErrAlreadyDecided = errors.New("leave request already decided")

	// ErrStaleDecision is returned when the quota snapshot captured at
	// review time no longer holds at commit time. The approver must review
	// again; the captured values are never silently recomputed.
	ErrStaleDecision = errors.New("leave decision is stale: quota changed since review")

	// ErrInvalidPeriod is returned when a leave range ends before it starts.
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidAmount is returned for non-positive ledger amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrDuplicateEntry is returned by ledger stores when an entry with the
	// same dedup key already exists. Expected behavior for retries.
	ErrDuplicateEntry = errors.New("duplicate ledger entry")

	// ErrNothingToSettle is returned when settlement finds a non-positive
	// balance. Expected, recoverable.
	ErrNothingToSettle = errors.New("nothing to settle: balance is not positive")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrLeaveNotFound is returned when a referenced leave request doesn't exist.
	ErrLeaveNotFound = errors.New("leave request not found")
)

// =============================================================================
// CLASSIFICATION HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidAmount)
}

// IsConflict reports whether the error is an expected state conflict,
// a recoverable no-op rather than a fault.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyCompleted) ||
		errors.Is(err, ErrRecordExists) ||
		errors.Is(err, ErrScanThrottled) ||
		errors.Is(err, ErrAlreadyDecided) ||
		errors.Is(err, ErrStaleDecision) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrNothingToSettle)
}

// IsNotFound reports whether the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrLeaveNotFound) ||
		errors.Is(err, ErrUnknownSite)
}
