package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDayOf_TruncatesToUTCMidnight(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC)
	d := DayOf(ts)
	if d.String() != "2025-03-10" {
		t.Errorf("DayOf = %s, want 2025-03-10", d)
	}
}

func TestDaysUntil_Inclusive(t *testing.T) {
	start := NewDay(2025, time.March, 10)
	if got := start.DaysUntil(start); got != 1 {
		t.Errorf("same day = %d, want 1", got)
	}
	if got := start.DaysUntil(NewDay(2025, time.March, 12)); got != 3 {
		t.Errorf("10..12 = %d, want 3", got)
	}
	if got := start.DaysUntil(NewDay(2025, time.March, 9)); got != 0 {
		t.Errorf("reversed = %d, want 0", got)
	}
}

func TestMonth_Bounds(t *testing.T) {
	feb := Month{Year: 2024, Month: time.February} // leap year
	if feb.End().String() != "2024-02-29" {
		t.Errorf("feb 2024 end = %s", feb.End())
	}
	if !feb.Contains(NewDay(2024, time.February, 29)) {
		t.Error("feb 2024 should contain the 29th")
	}
	if feb.Contains(NewDay(2024, time.March, 1)) {
		t.Error("feb 2024 should not contain march 1st")
	}
}

func TestParseMonth_RoundTrip(t *testing.T) {
	m, err := ParseMonth("2025-03")
	if err != nil {
		t.Fatalf("ParseMonth: %v", err)
	}
	if m.String() != "2025-03" {
		t.Errorf("round trip = %s", m)
	}
	if _, err := ParseMonth("2025-3"); err == nil {
		t.Error("expected error for non-padded month")
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("14:00")
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	if m != 14*60 {
		t.Errorf("14:00 = %d minutes, want 840", m)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for invalid clock")
	}
}

func TestPolicy_Deduction(t *testing.T) {
	wage := decimal.NewFromInt(500)

	p := DefaultPolicy()
	if got := p.Deduction(0, wage); !got.IsZero() {
		t.Errorf("0 unpaid days = %s, want 0", got)
	}
	if got := p.Deduction(3, wage); !got.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("proportional 3 days = %s, want 1500", got)
	}

	p.PenaltyMode = PenaltyFlatDay
	if got := p.Deduction(3, wage); !got.Equal(wage) {
		t.Errorf("flat-day 3 days = %s, want 500", got)
	}
}

func TestParseSiteID(t *testing.T) {
	id := NewSiteID()
	parsed, err := ParseSiteID(string(id))
	if err != nil {
		t.Fatalf("ParseSiteID: %v", err)
	}
	if parsed != id {
		t.Errorf("round trip mismatch: %s != %s", parsed, id)
	}
	if _, err := ParseSiteID("site-42"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
