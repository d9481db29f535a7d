/*
status.go - Pure day-status classifier

PURPOSE:
  DayStatus is the single source of truth for what a calendar day means
  for an employee: both calendar rendering and payroll decisions downstream
  read this classification.

EVALUATION ORDER (load-bearing, first match wins - do not reorder):
  1. day after today                      -> future
  2. day is a company holiday             -> holiday
  3. day inside an approved leave range   -> leave
  4. no record and day == today           -> pending (may still check in)
  5. no record and day before today       -> absent
  6. record exists: full -> present, half -> half, anything else -> absent

PURITY:
  "today" is an explicit parameter, never read from the ambient clock, so
  classification is testable and timezone-deterministic. Holidays and
  leave ranges arrive as plain data.
*/
package attendance

import "github.com/warp/attendance-engine/engine"

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusFuture  Status = "future"
	StatusHoliday Status = "holiday"
	StatusLeave   Status = "leave"
	StatusPending Status = "pending"
	StatusPresent Status = "present"
	StatusHalf    Status = "half"
	StatusAbsent  Status = "absent"
)

// LeaveRange is an approved leave's inclusive day range.
type LeaveRange struct {
	Start engine.Day
	End   engine.Day
}

func (lr LeaveRange) Contains(d engine.Day) bool {
	return !d.Before(lr.Start) && !d.After(lr.End)
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// DayStatus classifies one day. Pure: no I/O, no clock, no side effects.
func DayStatus(day, today engine.Day, holidays engine.DaySet, leaves []LeaveRange, rec *Record) Status {
	if day.After(today) {
		return StatusFuture
	}
	if holidays[day] {
		return StatusHoliday
	}
	for _, lr := range leaves {
		if lr.Contains(day) {
			return StatusLeave
		}
	}
	if rec == nil {
		if day.Equal(today) {
			return StatusPending
		}
		return StatusAbsent
	}
	switch rec.Kind {
	case KindFull:
		return StatusPresent
	case KindHalf:
		return StatusHalf
	default:
		return StatusAbsent
	}
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// Summary holds the month's counters. Holidays count with leave; pending
// is reported separately so the per-day statuses partition exactly.
// Future days are excluded from all counts, not zeroed.
type Summary struct {
	Present int
	Half    int
	Leave   int
	Absent  int
	Pending int
}

// Total is the number of classified (non-future) days.
func (s Summary) Total() int {
	return s.Present + s.Half + s.Leave + s.Absent + s.Pending
}

// SummarizeMonth folds DayStatus over every day from month start to
// min(today, month end).
func SummarizeMonth(month engine.Month, today engine.Day, holidays engine.DaySet, leaves []LeaveRange, records map[engine.Day]*Record) Summary {
	var s Summary
	end := month.End().Min(today)
	for day := month.Start(); !day.After(end); day = day.AddDays(1) {
		switch DayStatus(day, today, holidays, leaves, records[day]) {
		case StatusPresent:
			s.Present++
		case StatusHalf:
			s.Half++
		case StatusHoliday, StatusLeave:
			s.Leave++
		case StatusPending:
			s.Pending++
		case StatusAbsent:
			s.Absent++
		}
	}
	return s
}

// RecordsByDay indexes records for the summary fold.
func RecordsByDay(records []Record) map[engine.Day]*Record {
	byDay := make(map[engine.Day]*Record, len(records))
	for i := range records {
		byDay[records[i].Day] = &records[i]
	}
	return byDay
}
