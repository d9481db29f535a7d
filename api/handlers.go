/*
handlers.go - HTTP API handlers for the attendance-to-payroll engine

PURPOSE:
  Exposes the reconciliation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Scan:
    POST   /api/scan                            Process a scanned site token

  Employees:
    GET    /api/employees                       List all employees
    POST   /api/employees                       Create employee
    GET    /api/employees/{id}                  Get employee details
    GET    /api/employees/{id}/attendance       Monthly calendar + summary
    GET    /api/employees/{id}/ledger           Monthly entries + balance
    POST   /api/employees/{id}/settle           Settle the month's balance
    GET    /api/employees/{id}/leaves           Leave request history

  Sites:
    GET    /api/sites                           List sites
    POST   /api/sites                           Create site
    GET    /api/sites/{id}/qr                   PNG badge encoding the token

  Holidays:
    GET    /api/holidays                        List (optionally ?year=)
    POST   /api/holidays                        Create holiday
    DELETE /api/holidays/{id}                   Remove holiday

  Leaves:
    POST   /api/leaves                          Submit leave request
    GET    /api/leaves/pending                  Approver queue
    POST   /api/leaves/{id}/review              Compute paid/unpaid split
    POST   /api/leaves/{id}/approve             Commit a reviewed decision
    POST   /api/leaves/{id}/reject              Reject

  Ledger:
    POST   /api/ledger/manual                   Manual adjustment entry

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (go-playground/validator tags on DTOs)
  3. Call domain logic (controller, allocator, ledger engine)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status. The mapping
  follows the engine's error taxonomy:
  - 400: engine.IsClientError (malformed token, bad period, bad amount)
  - 404: engine.IsNotFound
  - 409: engine.IsConflict (double checkout, decided leave, stale decision)
  - 500: everything else

SECURITY NOTE:
  Employee and approver identifiers are taken from the request body;
  authentication happens upstream and is not this service's concern.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/warp/attendance-engine/attendance"
	"github.com/warp/attendance-engine/engine"
	"github.com/warp/attendance-engine/leave"
	"github.com/warp/attendance-engine/ledger"
	"github.com/warp/attendance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      *sqlite.Store
	Controller *attendance.Controller
	Allocator  *leave.Allocator
	Ledger     *ledger.Engine
	Policy     engine.Policy
	Log        logrus.FieldLogger

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time

	validate *validator.Validate
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(store *sqlite.Store, controller *attendance.Controller, allocator *leave.Allocator, led *ledger.Engine, policy engine.Policy, log logrus.FieldLogger) *Handler {
	return &Handler{
		Store:      store,
		Controller: controller,
		Allocator:  allocator,
		Ledger:     led,
		Policy:     policy,
		Log:        log,
		Clock:      time.Now,
		validate:   validator.New(),
	}
}

// decodeAndValidate parses the JSON body and runs the DTO's validate tags.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

// =============================================================================
// SCAN
// =============================================================================

// Scan processes one scanned site token.
// POST /api/scan
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.Controller.Scan(r.Context(), engine.EmployeeID(req.EmployeeID), req.SessionID, req.Token)
	if err != nil {
		writeDomainError(w, "Scan failed", err)
		return
	}

	resp := ScanResponse{Outcome: string(result.Outcome), Kind: string(result.Kind)}
	if result.Record != nil {
		dto := toRecordDTO(*result.Record)
		resp.Record = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	wage, err := decimal.NewFromString(req.DailyWage)
	if err != nil || wage.IsNegative() {
		writeError(w, http.StatusBadRequest, "Invalid daily_wage (use a non-negative decimal string)", err)
		return
	}

	emp := engine.Employee{
		ID:        engine.EmployeeID(req.ID),
		Name:      req.Name,
		DailyWage: wage,
	}
	if req.SiteID != nil {
		siteID, err := engine.ParseSiteID(*req.SiteID)
		if err != nil {
			writeDomainError(w, "Invalid site_id", err)
			return
		}
		emp.SiteID = &siteID
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns a single employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := engine.EmployeeID(chi.URLParam(r, "id"))

	emp, err := h.Store.Employee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// =============================================================================
// ATTENDANCE MONTH VIEW
// =============================================================================

// GetAttendanceMonth returns the per-day statuses and the summary counters
// for one employee and month.
// GET /api/employees/{id}/attendance?month=YYYY-MM
func (h *Handler) GetAttendanceMonth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := engine.EmployeeID(chi.URLParam(r, "id"))

	month, ok := h.monthParam(w, r)
	if !ok {
		return
	}

	emp, err := h.Store.Employee(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	holidays, err := engine.HolidaySet(ctx, h.Store, month.Start(), month.End())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load holidays", err)
		return
	}
	leaves, err := h.Allocator.ApprovedRanges(ctx, id, month.Start(), month.End())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leaves", err)
		return
	}
	records, err := h.Store.RecordsInMonth(ctx, id, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load attendance", err)
		return
	}

	today := engine.DayOf(h.Clock())
	byDay := attendance.RecordsByDay(records)

	// Every day of the month is classified, future days included, so the
	// calendar renders whole.
	var days []DayStatusDTO
	for day := month.Start(); !day.After(month.End()); day = day.AddDays(1) {
		status := attendance.DayStatus(day, today, holidays, leaves, byDay[day])
		days = append(days, DayStatusDTO{Day: day.String(), Status: string(status)})
	}

	summary := attendance.SummarizeMonth(month, today, holidays, leaves, byDay)
	writeJSON(w, http.StatusOK, AttendanceMonthDTO{
		EmployeeID: string(id),
		Month:      month.String(),
		Days:       days,
		Summary: SummaryDTO{
			Present: summary.Present,
			Half:    summary.Half,
			Leave:   summary.Leave,
			Absent:  summary.Absent,
			Pending: summary.Pending,
			Total:   summary.Total(),
		},
	})
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// GetLedger returns the month's entries and the derived balance.
// GET /api/employees/{id}/ledger?month=YYYY-MM
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := engine.EmployeeID(chi.URLParam(r, "id"))

	month, ok := h.monthParam(w, r)
	if !ok {
		return
	}

	entries, err := h.Ledger.Entries(ctx, id, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load ledger", err)
		return
	}
	balance, err := h.Ledger.Balance(ctx, id, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute balance", err)
		return
	}

	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, LedgerDTO{
		EmployeeID: string(id),
		Month:      month.String(),
		Entries:    dtos,
		Balance:    balance.StringFixed(2),
	})
}

// Settle debits the month's positive balance down to zero.
// POST /api/employees/{id}/settle
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	id := engine.EmployeeID(chi.URLParam(r, "id"))

	var req SettleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	month, err := engine.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}

	settled, err := h.Ledger.SettleBalance(r.Context(), id, month)
	if err != nil {
		writeDomainError(w, "Settlement failed", err)
		return
	}
	writeJSON(w, http.StatusOK, SettleResponse{
		EmployeeID: string(id),
		Month:      month.String(),
		Settled:    settled.StringFixed(2),
	})
}

// PostManualEntry posts an administrative credit or debit.
// POST /api/ledger/manual
func (h *Handler) PostManualEntry(w http.ResponseWriter, r *http.Request) {
	var req ManualEntryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount (use a decimal string)", err)
		return
	}

	entry, err := h.Ledger.PostManualEntry(r.Context(),
		engine.EmployeeID(req.EmployeeID), amount, ledger.EntryType(req.Type), req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to post entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(*entry))
}

// =============================================================================
// SITE HANDLERS
// =============================================================================

// ListSites returns all sites.
// GET /api/sites
func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.Store.ListSites(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sites", err)
		return
	}

	dtos := make([]SiteDTO, len(sites))
	for i, s := range sites {
		dtos[i] = SiteDTO{ID: string(s.ID), Name: s.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSite creates a new site with a freshly minted token.
// POST /api/sites
func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req CreateSiteRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	site := engine.Site{ID: engine.NewSiteID(), Name: req.Name}
	if err := h.Store.SaveSite(r.Context(), site); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create site", err)
		return
	}
	writeJSON(w, http.StatusCreated, SiteDTO{ID: string(site.ID), Name: site.Name})
}

// SiteQR renders the site's check-in badge as a PNG. The badge encodes
// exactly the token the scan endpoint parses.
// GET /api/sites/{id}/qr
func (h *Handler) SiteQR(w http.ResponseWriter, r *http.Request) {
	siteID, err := engine.ParseSiteID(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Invalid site id", err)
		return
	}

	site, err := h.Store.Site(r.Context(), siteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get site", err)
		return
	}
	if site == nil {
		writeError(w, http.StatusNotFound, "Site not found", nil)
		return
	}

	png, err := qrcode.Encode(attendance.TokenForSite(site.ID), qrcode.Medium, 256)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render badge", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns holidays, limited to ?year= when given.
// GET /api/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := h.Clock().Year()
	if q := r.URL.Query().Get("year"); q != "" {
		t, err := time.Parse("2006", q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year (use YYYY)", err)
			return
		}
		year = t.Year()
	}

	holidays, err := h.Store.HolidaysInRange(r.Context(),
		engine.NewDay(year, time.January, 1), engine.NewDay(year, time.December, 31))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, len(holidays))
	for i, hd := range holidays {
		dtos[i] = HolidayDTO{ID: hd.ID, Date: hd.Date.String(), Description: hd.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a company holiday.
// POST /api/holidays
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	date, err := engine.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	holiday := engine.Holiday{
		ID:          newID(),
		Date:        date,
		Description: req.Description,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID: holiday.ID, Date: holiday.Date.String(), Description: holiday.Description,
	})
}

// DeleteHoliday removes a holiday.
// DELETE /api/holidays/{id}
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// SubmitLeave files a new pending leave request.
// POST /api/leaves
func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeaveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	start, err := engine.ParseDay(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date (use YYYY-MM-DD)", err)
		return
	}
	end, err := engine.ParseDay(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date (use YYYY-MM-DD)", err)
		return
	}

	request, err := h.Allocator.Submit(r.Context(), engine.EmployeeID(req.EmployeeID), start, end, req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to submit leave request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toLeaveDTO(*request))
}

// ListPendingLeaves returns the approver queue, oldest first.
// GET /api/leaves/pending
func (h *Handler) ListPendingLeaves(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Store.PendingLeaves(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending leaves", err)
		return
	}

	dtos := make([]LeaveDTO, len(pending))
	for i, req := range pending {
		dtos[i] = toLeaveDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListEmployeeLeaves returns the employee's leave history.
// GET /api/employees/{id}/leaves
func (h *Handler) ListEmployeeLeaves(w http.ResponseWriter, r *http.Request) {
	id := engine.EmployeeID(chi.URLParam(r, "id"))

	leaves, err := h.Store.LeavesByEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leaves", err)
		return
	}

	dtos := make([]LeaveDTO, len(leaves))
	for i, req := range leaves {
		dtos[i] = toLeaveDTO(req)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ReviewLeave computes the paid/unpaid split for a pending request.
// POST /api/leaves/{id}/review
func (h *Handler) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	id := leave.RequestID(chi.URLParam(r, "id"))

	decision, err := h.Allocator.Review(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to review leave request", err)
		return
	}
	writeJSON(w, http.StatusOK, toDecisionDTO(decision))
}

// ApproveLeave commits a reviewed decision. The client echoes the decision
// fields from the review response; the allocator verifies the quota
// snapshot is unchanged before committing.
// POST /api/leaves/{id}/approve
func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := leave.RequestID(chi.URLParam(r, "id"))

	var req ApproveLeaveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.Store.Leave(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get leave request", err)
		return
	}
	if request == nil {
		writeError(w, http.StatusNotFound, "Leave request not found", nil)
		return
	}

	month, err := engine.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return
	}
	deduction, err := decimal.NewFromString(req.Deduction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid deduction (use a decimal string)", err)
		return
	}

	decision := &leave.Decision{
		RequestID:     id,
		EmployeeID:    request.EmployeeID,
		Month:         month,
		Days:          req.Days,
		PaidDays:      req.PaidDays,
		UnpaidDays:    req.UnpaidDays,
		Deduction:     deduction,
		ApprovedSoFar: req.ApprovedSoFar,
	}
	if err := h.Allocator.Approve(ctx, decision, req.ApproverID); err != nil {
		writeDomainError(w, "Failed to approve leave request", err)
		return
	}

	updated, err := h.Store.Leave(ctx, id)
	if err != nil || updated == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": string(leave.StatusApproved)})
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(*updated))
}

// RejectLeave rejects a pending request. No ledger effect.
// POST /api/leaves/{id}/reject
func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := leave.RequestID(chi.URLParam(r, "id"))

	var req RejectLeaveRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.Allocator.Reject(ctx, id, req.ApproverID, req.Reason); err != nil {
		writeDomainError(w, "Failed to reject leave request", err)
		return
	}

	updated, err := h.Store.Leave(ctx, id)
	if err != nil || updated == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": string(leave.StatusRejected)})
		return
	}
	writeJSON(w, http.StatusOK, toLeaveDTO(*updated))
}

// =============================================================================
// DTO MAPPING
// =============================================================================

func toEmployeeDTO(e engine.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:        string(e.ID),
		Name:      e.Name,
		DailyWage: e.DailyWage.StringFixed(2),
	}
	if e.SiteID != nil {
		s := string(*e.SiteID)
		dto.SiteID = &s
	}
	return dto
}

func toRecordDTO(r attendance.Record) RecordDTO {
	dto := RecordDTO{
		EmployeeID: string(r.EmployeeID),
		Day:        r.Day.String(),
		SiteID:     string(r.SiteID),
		CheckinAt:  r.CheckinAt.UTC().Format(time.RFC3339),
		Kind:       string(r.Kind),
		Remarks:    r.Remarks,
	}
	if r.CheckoutAt != nil {
		s := r.CheckoutAt.UTC().Format(time.RFC3339)
		dto.CheckoutAt = &s
	}
	return dto
}

func toEntryDTO(e ledger.Entry) EntryDTO {
	dto := EntryDTO{
		ID:        string(e.ID),
		Amount:    e.Amount.StringFixed(2),
		Type:      string(e.Type),
		Reason:    e.Reason,
		Month:     e.Month.String(),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.Day != nil {
		s := e.Day.String()
		dto.Day = &s
	}
	return dto
}

func toLeaveDTO(r leave.Request) LeaveDTO {
	dto := LeaveDTO{
		ID:         string(r.ID),
		EmployeeID: string(r.EmployeeID),
		StartDate:  r.StartDate.String(),
		EndDate:    r.EndDate.String(),
		Days:       r.Days,
		Status:     string(r.Status),
		Reason:     r.Reason,
		DecidedBy:  r.DecidedBy,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		s := r.DecidedAt.UTC().Format(time.RFC3339)
		dto.DecidedAt = &s
	}
	return dto
}

func toDecisionDTO(d *leave.Decision) DecisionDTO {
	conflicts := make([]string, len(d.ConflictDays))
	for i, day := range d.ConflictDays {
		conflicts[i] = day.String()
	}
	return DecisionDTO{
		RequestID:            string(d.RequestID),
		EmployeeID:           string(d.EmployeeID),
		Month:                d.Month.String(),
		Days:                 d.Days,
		PaidDays:             d.PaidDays,
		UnpaidDays:           d.UnpaidDays,
		Deduction:            d.Deduction.StringFixed(2),
		ApprovedSoFar:        d.ApprovedSoFar,
		ConflictDays:         conflicts,
		RequiresConfirmation: d.RequiresConfirmation(),
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func (h *Handler) monthParam(w http.ResponseWriter, r *http.Request) (engine.Month, bool) {
	q := r.URL.Query().Get("month")
	if q == "" {
		return engine.MonthOf(engine.DayOf(h.Clock())), true
	}
	month, err := engine.ParseMonth(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month (use YYYY-MM)", err)
		return engine.Month{}, false
	}
	return month, true
}

func newID() string {
	return uuid.New().String()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the engine's error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
