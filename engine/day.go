package engine

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// DAY - Civil calendar day (the unit attendance is recorded in)
// =============================================================================

// Day is a calendar day normalized to UTC midnight. All "which day is it"
// comparisons in the engine go through this type so they are deterministic
// and never depend on the wall clock's timezone.
type Day struct {
	t time.Time
}

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a timestamp to its calendar day.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Comparison
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool  { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool  { return d.t.Equal(other.t) }
func (d Day) IsZero() bool          { return d.t.IsZero() }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysUntil returns the inclusive day count from d to other.
// Returns 0 if other is before d.
func (d Day) DaysUntil(other Day) int {
	if other.Before(d) {
		return 0
	}
	return int(other.t.Sub(d.t).Hours()/24) + 1
}

// Properties
func (d Day) Time() time.Time { return d.t }
func (d Day) String() string  { return d.t.Format("2006-01-02") }

// Min returns the earlier of two days.
func (d Day) Min(other Day) Day {
	if other.Before(d) {
		return other
	}
	return d
}

// =============================================================================
// MONTH - First-of-month bucket for ledger entries and leave quotas
// =============================================================================

type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(d Day) Month {
	return Month{Year: d.t.Year(), Month: d.t.Month()}
}

// ParseMonth parses a YYYY-MM month bucket.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Start() Day { return NewDay(m.Year, m.Month, 1) }

func (m Month) End() Day {
	return Day{t: time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

func (m Month) Contains(d Day) bool {
	return d.t.Year() == m.Year && d.t.Month() == m.Month
}

func (m Month) String() string { return m.Start().t.Format("2006-01") }

// =============================================================================
// MINUTE OF DAY - Local-clock thresholds (cutoff, half-day boundaries)
// =============================================================================

// MinuteOfDay is minutes since local midnight. Policy thresholds (the
// 14:00 cutoff, the half-day boundaries) compare against this, not against
// absolute timestamps, so the rules read the way the policy is written.
type MinuteOfDay int

// MinuteOf extracts the clock-of-day component of a timestamp.
func MinuteOf(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// ParseClock parses an HH:MM clock value.
func ParseClock(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return MinuteOf(t), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// =============================================================================
// HOLIDAY CALENDAR - Company-wide, overrides day classification
// =============================================================================

// Holiday is a company-wide holiday. It overrides attendance and leave day
// classification unconditionally and is never chargeable.
type Holiday struct {
	ID          string
	Date        Day
	Description string
}

// HolidayCalendar is the read-only calendar provider. Its CRUD lifecycle
// is managed elsewhere; the engine only consumes the set.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, day Day) (bool, error)
	// HolidaysInRange returns holidays with Date in [from, to].
	HolidaysInRange(ctx context.Context, from, to Day) ([]Holiday, error)
}

// DaySet is a materialized holiday (or any day) set, used to feed the pure
// day classifier without I/O.
type DaySet map[Day]bool

// HolidaySet materializes the calendar over a range into a DaySet.
func HolidaySet(ctx context.Context, cal HolidayCalendar, from, to Day) (DaySet, error) {
	holidays, err := cal.HolidaysInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	set := make(DaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date] = true
	}
	return set, nil
}
