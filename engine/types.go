/*
Package engine provides the shared core of the attendance-to-payroll
reconciliation engine.

PURPOSE:
  This package contains the domain vocabulary every other package speaks:
  employee and site identities, civil-day and month-bucket calendar math,
  the payroll policy parameters, the error taxonomy, and the notification
  contract. It has no persistence and no transport concerns.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmployeeID/SiteID: Type-safe identifiers
  - Employee: Read-only payroll identity (daily wage, assigned site)
  - Site: A physical location whose token is scanned at check-in

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for wages, never floats
  2. Type Safety: Strong typing for IDs prevents mixing employee/site IDs
  3. Read-only boundary: Employee records are owned by HR administration;
     the engine consumes them and never mutates them

SEE ALSO:
  - day.go: Day/Month calendar types and the holiday calendar
  - policy.go: Quota, cutoff, and half-day threshold parameters
  - errors.go: Sentinel errors and classification helpers
*/
package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// SiteID is a UUID string. Scanned tokens must decode to one of these
// before any state transition is attempted.
type SiteID string

// NewSiteID mints a fresh site identifier.
func NewSiteID() SiteID {
	return SiteID(uuid.New().String())
}

// ParseSiteID validates that s is a well-formed site identifier.
func ParseSiteID(s string) (SiteID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", ErrInvalidToken
	}
	return SiteID(id.String()), nil
}

// =============================================================================
// EMPLOYEE - Read-only payroll identity
// =============================================================================

// Employee is the engine's view of an employee. Owned by HR administration;
// the engine reads DailyWage and SiteID and never writes back.
type Employee struct {
	ID        EmployeeID
	Name      string
	DailyWage decimal.Decimal // non-negative
	SiteID    *SiteID         // nil = unassigned
}

// EmployeeDirectory resolves opaque employee identifiers. Authentication
// of those identifiers happens upstream and is not this engine's concern.
type EmployeeDirectory interface {
	// Employee returns the employee, or (nil, nil) if unknown.
	Employee(ctx context.Context, id EmployeeID) (*Employee, error)
}

// =============================================================================
// SITE - Source of valid scan tokens
// =============================================================================

type Site struct {
	ID   SiteID
	Name string
}

// SiteDirectory resolves site identifiers decoded from scan tokens.
type SiteDirectory interface {
	// Site returns the site, or (nil, nil) if unknown.
	Site(ctx context.Context, id SiteID) (*Site, error)
}
