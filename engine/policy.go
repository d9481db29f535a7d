/*
policy.go - Payroll policy parameters

PURPOSE:
  One value object holding every tunable the reconciliation rules depend
  on. The policy is read as plain data from configuration; nothing in the
  engine hard-codes a quota or a clock threshold.

PARAMETERS:
  PaidLeaveQuota   Leave days per month treated as paid by default (2)
  CheckInCutoff    Latest local time a first check-in is accepted (14:00)
  LateMorning      Check-in at/after this classifies the day half (10:00)
  EarlyAfternoon   Check-out before this classifies the day half (17:00)
  ScanCooldown     Reentrancy window absorbing duplicate QR detections
  PenaltyMode      How unpaid leave days convert into a deduction

PENALTY MODES:
  The source policies for unpaid-leave penalties varied; the formula is a
  parameter, not a law. Proportional (unpaidDays x dailyWage) is the
  default. FlatDay charges a single daily wage once any unpaid day exists.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PENALTY MODE
// =============================================================================

type PenaltyMode string

const (
	// PenaltyProportional deducts unpaidDays x dailyWage.
	PenaltyProportional PenaltyMode = "proportional"

	// PenaltyFlatDay deducts one dailyWage whenever unpaidDays > 0,
	// regardless of how many unpaid days there are.
	PenaltyFlatDay PenaltyMode = "flat-day"
)

// =============================================================================
// POLICY
// =============================================================================

type Policy struct {
	PaidLeaveQuota int
	CheckInCutoff  MinuteOfDay
	LateMorning    MinuteOfDay
	EarlyAfternoon MinuteOfDay
	ScanCooldown   time.Duration
	PenaltyMode    PenaltyMode
}

// DefaultPolicy returns the company defaults.
func DefaultPolicy() Policy {
	return Policy{
		PaidLeaveQuota: 2,
		CheckInCutoff:  14 * 60,
		LateMorning:    10 * 60,
		EarlyAfternoon: 17 * 60,
		ScanCooldown:   3 * time.Second,
		PenaltyMode:    PenaltyProportional,
	}
}

// Deduction converts a count of unpaid leave days into a ledger amount.
func (p Policy) Deduction(unpaidDays int, dailyWage decimal.Decimal) decimal.Decimal {
	if unpaidDays <= 0 {
		return decimal.Zero
	}
	switch p.PenaltyMode {
	case PenaltyFlatDay:
		return dailyWage
	default:
		return dailyWage.Mul(decimal.NewFromInt(int64(unpaidDays)))
	}
}
