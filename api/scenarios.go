/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates sites, employees,
	and holidays that demonstrate specific flows.

AVAILABLE SCENARIOS:

	construction-crew:  One site, a small daily-wage crew, April holidays
	two-sites:          Two sites with employees split between them

HOW SCENARIOS WORK:
 1. Create sites (each minting a scannable token)
 2. Create employees with daily wages, assigned to sites
 3. Add company holidays

Loading is idempotent: sites and employees are keyed upserts, so a
re-load refreshes the seed data instead of duplicating it. Attendance,
leave, and ledger history are never touched.

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "construction-crew"}

NOTE:

	Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Error helpers and DTO mapping
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "construction-crew",
		Name:        "Construction Crew",
		Description: "One site, three daily-wage workers, April holidays",
	},
	{
		ID:          "two-sites",
		Name:        "Two Sites",
		Description: "Employees split across two sites with separate badges",
	},
}

// =============================================================================
// HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario seeds the database with a named scenario.
// POST /api/scenarios/load
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var err error
	switch req.ScenarioID {
	case "construction-crew":
		err = h.loadConstructionCrew(r.Context())
	case "two-sites":
		err = h.loadTwoSites(r.Context())
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// =============================================================================
// LOADERS
// =============================================================================

// Fixed IDs keep scenario loading idempotent across reloads.
const (
	crewSiteID  = engine.SiteID("6f1c2a84-5d0b-4e52-9c3f-7a8d1b2c3e4f")
	northSiteID = engine.SiteID("1b9d6e20-3a4f-4c8b-8d2e-5f6a7b8c9d0e")
	southSiteID = engine.SiteID("9e8d7c6b-5a4f-4e3d-b2c1-0f1e2d3c4b5a")
)

func (h *Handler) loadConstructionCrew(ctx context.Context) error {
	site := engine.Site{ID: crewSiteID, Name: "Hlaing Tharyar Site"}
	if err := h.Store.SaveSite(ctx, site); err != nil {
		return err
	}

	crew := []struct {
		id   string
		name string
		wage string
	}{
		{"emp-demo-1", "Aye Chan", "500"},
		{"emp-demo-2", "Ko Min Tun", "650"},
		{"emp-demo-3", "Su Su Hlaing", "500"},
	}
	for _, m := range crew {
		wage, err := decimal.NewFromString(m.wage)
		if err != nil {
			return err
		}
		siteID := site.ID
		if err := h.Store.SaveEmployee(ctx, engine.Employee{
			ID:        engine.EmployeeID(m.id),
			Name:      m.name,
			DailyWage: wage,
			SiteID:    &siteID,
		}); err != nil {
			return err
		}
	}

	year := h.Clock().Year()
	holidays := []engine.Holiday{
		{ID: newID(), Date: engine.NewDay(year, time.April, 13), Description: "Thingyan Eve"},
		{ID: newID(), Date: engine.NewDay(year, time.April, 14), Description: "Thingyan"},
		{ID: newID(), Date: engine.NewDay(year, time.April, 15), Description: "Thingyan"},
		{ID: newID(), Date: engine.NewDay(year, time.May, 1), Description: "Labour Day"},
	}
	for _, holiday := range holidays {
		if err := h.Store.SaveHoliday(ctx, holiday); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadTwoSites(ctx context.Context) error {
	north := engine.Site{ID: northSiteID, Name: "North Yard"}
	south := engine.Site{ID: southSiteID, Name: "South Yard"}
	for _, site := range []engine.Site{north, south} {
		if err := h.Store.SaveSite(ctx, site); err != nil {
			return err
		}
	}

	assignments := []struct {
		id   string
		name string
		wage string
		site engine.SiteID
	}{
		{"emp-north-1", "Thiha Zaw", "700", north.ID},
		{"emp-north-2", "Nandar Win", "550", north.ID},
		{"emp-south-1", "Kyaw Swar", "600", south.ID},
	}
	for _, a := range assignments {
		wage, err := decimal.NewFromString(a.wage)
		if err != nil {
			return err
		}
		siteID := a.site
		if err := h.Store.SaveEmployee(ctx, engine.Employee{
			ID:        engine.EmployeeID(a.id),
			Name:      a.name,
			DailyWage: wage,
			SiteID:    &siteID,
		}); err != nil {
			return err
		}
	}
	return nil
}
