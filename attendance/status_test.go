package attendance_test

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func day(d int) engine.Day {
	return engine.NewDay(2025, time.March, d)
}

func record(d engine.Day, kind attendance.Kind) *attendance.Record {
	checkin := d.Time().Add(9 * time.Hour)
	rec := &attendance.Record{
		EmployeeID: "emp-1",
		Day:        d,
		SiteID:     "site-1",
		CheckinAt:  checkin,
	}
	if kind != "" {
		checkout := d.Time().Add(18 * time.Hour)
		rec.CheckoutAt = &checkout
		rec.Kind = kind
	}
	return rec
}

// =============================================================================
// CLASSIFICATION ORDER
// =============================================================================

func TestDayStatus_EvaluationOrder(t *testing.T) {
	today := day(15)
	holidays := engine.DaySet{day(10): true, day(20): true}
	leaves := []attendance.LeaveRange{{Start: day(10), End: day(12)}}

	cases := []struct {
		name string
		day  engine.Day
		rec  *attendance.Record
		want attendance.Status
	}{
		{"future day", day(16), nil, attendance.StatusFuture},
		{"future day with upcoming holiday still future", day(20), nil, attendance.StatusFuture},
		{"holiday wins over leave", day(10), nil, attendance.StatusHoliday},
		{"holiday wins over record", day(10), record(day(10), attendance.KindFull), attendance.StatusHoliday},
		{"leave wins over record", day(11), record(day(11), attendance.KindFull), attendance.StatusLeave},
		{"today without record is pending", day(15), nil, attendance.StatusPending},
		{"past day without record is absent", day(14), nil, attendance.StatusAbsent},
		{"full record is present", day(13), record(day(13), attendance.KindFull), attendance.StatusPresent},
		{"half record is half", day(13), record(day(13), attendance.KindHalf), attendance.StatusHalf},
		{"open record without kind is absent", day(13), record(day(13), ""), attendance.StatusAbsent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := attendance.DayStatus(tc.day, today, holidays, leaves, tc.rec)
			if got != tc.want {
				t.Errorf("DayStatus(%s) = %s, want %s", tc.day, got, tc.want)
			}
		})
	}
}

func TestDayStatus_TodayWithCompletedRecord(t *testing.T) {
	// A completed record today classifies by its kind, not as pending.
	today := day(15)
	got := attendance.DayStatus(today, today, nil, nil, record(today, attendance.KindFull))
	if got != attendance.StatusPresent {
		t.Errorf("DayStatus(today with record) = %s, want present", got)
	}
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

func TestSummarizeMonth_PartitionsClassifiedDays(t *testing.T) {
	// GIVEN: March 2025 viewed mid-month on the 15th
	//   - 3rd, 4th: full days; 5th: half day
	//   - 10th: holiday; 11th-12th: approved leave
	//   - 15th (today): no record yet
	//   - everything else up to today: absent
	// WHEN: The month is summarized
	// THEN: Counters partition the 15 classified days exactly

	month := engine.Month{Year: 2025, Month: time.March}
	today := day(15)
	holidays := engine.DaySet{day(10): true}
	leaves := []attendance.LeaveRange{{Start: day(11), End: day(12)}}
	records := attendance.RecordsByDay([]attendance.Record{
		*record(day(3), attendance.KindFull),
		*record(day(4), attendance.KindFull),
		*record(day(5), attendance.KindHalf),
	})

	s := attendance.SummarizeMonth(month, today, holidays, leaves, records)

	if s.Present != 2 {
		t.Errorf("Present = %d, want 2", s.Present)
	}
	if s.Half != 1 {
		t.Errorf("Half = %d, want 1", s.Half)
	}
	if s.Leave != 3 {
		t.Errorf("Leave = %d, want 3 (holiday counts with leave)", s.Leave)
	}
	if s.Pending != 1 {
		t.Errorf("Pending = %d, want 1", s.Pending)
	}
	if s.Absent != 8 {
		t.Errorf("Absent = %d, want 8", s.Absent)
	}
	if s.Total() != 15 {
		t.Errorf("Total = %d, want 15 (future days excluded)", s.Total())
	}
}

func TestSummarizeMonth_PastMonthCoversWholeMonth(t *testing.T) {
	// Viewing February from March: the fold runs to the month's end, and
	// every day without a record is absent.
	month := engine.Month{Year: 2025, Month: time.February}
	today := day(15)

	s := attendance.SummarizeMonth(month, today, nil, nil, nil)
	if s.Total() != 28 {
		t.Errorf("Total = %d, want 28", s.Total())
	}
	if s.Absent != 28 {
		t.Errorf("Absent = %d, want 28", s.Absent)
	}
}
