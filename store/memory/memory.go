// Package memory provides an in-memory implementation of every persistence
// interface the engine consumes. Used for tests and development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/leave"
	"github.com/warp/attendance-engine/ledger"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Store struct {
	mu sync.RWMutex

	employees map[engine.EmployeeID]engine.Employee
	sites     map[engine.SiteID]engine.Site
	holidays  map[string]engine.Holiday

	records map[recordKey]attendance.Record
	leaves  map[leave.RequestID]leave.Request

	entries map[ledgerKey][]ledger.Entry
	dedup   map[string]bool
}

type recordKey struct {
	Emp engine.EmployeeID
	Day engine.Day
}

type ledgerKey struct {
	Emp   engine.EmployeeID
	Month engine.Month
}

func New() *Store {
	return &Store{
		employees: make(map[engine.EmployeeID]engine.Employee),
		sites:     make(map[engine.SiteID]engine.Site),
		holidays:  make(map[string]engine.Holiday),
		records:   make(map[recordKey]attendance.Record),
		leaves:    make(map[leave.RequestID]leave.Request),
		entries:   make(map[ledgerKey][]ledger.Entry),
		dedup:     make(map[string]bool),
	}
}

// =============================================================================
// DIRECTORIES (engine.EmployeeDirectory, engine.SiteDirectory)
// =============================================================================

func (s *Store) PutEmployee(e engine.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

func (s *Store) Employee(_ context.Context, id engine.EmployeeID) (*engine.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.employees[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (s *Store) PutSite(site engine.Site) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[site.ID] = site
}

func (s *Store) Site(_ context.Context, id engine.SiteID) (*engine.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if site, ok := s.sites[id]; ok {
		return &site, nil
	}
	return nil, nil
}

// =============================================================================
// HOLIDAY CALENDAR (engine.HolidayCalendar)
// =============================================================================

func (s *Store) PutHoliday(h engine.Holiday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[h.ID] = h
}

func (s *Store) IsHoliday(_ context.Context, day engine.Day) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.holidays {
		if h.Date.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) HolidaysInRange(_ context.Context, from, to engine.Day) ([]engine.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []engine.Holiday
	for _, h := range s.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// =============================================================================
// ATTENDANCE (attendance.Store)
// =============================================================================

func (s *Store) Record(_ context.Context, emp engine.EmployeeID, day engine.Day) (*attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[recordKey{emp, day}]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) CreateRecord(_ context.Context, r attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := recordKey{r.EmployeeID, r.Day}
	if _, ok := s.records[k]; ok {
		return engine.ErrRecordExists
	}
	s.records[k] = r
	return nil
}

func (s *Store) CompleteRecord(_ context.Context, emp engine.EmployeeID, day engine.Day, checkoutAt time.Time, kind attendance.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := recordKey{emp, day}
	r, ok := s.records[k]
	if !ok || r.CheckoutAt != nil {
		return engine.ErrAlreadyCompleted
	}
	r.CheckoutAt = &checkoutAt
	r.Kind = kind
	s.records[k] = r
	return nil
}

func (s *Store) RecordsInMonth(_ context.Context, emp engine.EmployeeID, month engine.Month) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []attendance.Record
	for k, r := range s.records {
		if k.Emp == emp && month.Contains(k.Day) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

// =============================================================================
// LEAVE (leave.Store)
// =============================================================================

func (s *Store) CreateLeave(_ context.Context, r *leave.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[r.ID] = *r
	return nil
}

func (s *Store) Leave(_ context.Context, id leave.RequestID) (*leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.leaves[id]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) TransitionLeave(_ context.Context, id leave.RequestID, from, to leave.Status, decidedBy string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.leaves[id]
	if !ok {
		return engine.ErrLeaveNotFound
	}
	if r.Status != from {
		return engine.ErrAlreadyDecided
	}
	r.Status = to
	r.DecidedBy = decidedBy
	r.DecidedAt = &at
	s.leaves[id] = r
	return nil
}

func (s *Store) ApprovedInMonth(_ context.Context, emp engine.EmployeeID, month engine.Month) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leave.Request
	for _, r := range s.leaves {
		if r.EmployeeID == emp && r.Status == leave.StatusApproved && month.Contains(r.StartDate) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *Store) PendingLeaves(_ context.Context) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leave.Request
	for _, r := range s.leaves {
		if r.Status == leave.StatusPending {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) LeavesByEmployee(_ context.Context, emp engine.EmployeeID) ([]leave.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []leave.Request
	for _, r := range s.leaves {
		if r.EmployeeID == emp {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// =============================================================================
// LEDGER (ledger.Store)
// =============================================================================

func (s *Store) AppendEntry(_ context.Context, e ledger.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.DedupKey != "" {
		if s.dedup[e.DedupKey] {
			return engine.ErrDuplicateEntry
		}
		s.dedup[e.DedupKey] = true
	}
	k := ledgerKey{e.EmployeeID, e.Month}
	s.entries[k] = append(s.entries[k], e)
	return nil
}

func (s *Store) EntryExists(_ context.Context, dedupKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dedup[dedupKey], nil
}

func (s *Store) Entries(_ context.Context, emp engine.EmployeeID, month engine.Month) ([]ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k := ledgerKey{emp, month}
	out := make([]ledger.Entry, len(s.entries[k]))
	copy(out, s.entries[k])
	return out, nil
}
