/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry `validate` struct tags checked by
  go-playground/validator in the handlers. Amounts and wages travel as
  decimal strings, never floats.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// SCAN
// =============================================================================

// ScanRequest is one scanned QR token from a kiosk or phone session.
type ScanRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	SessionID  string `json:"session_id" validate:"required"`
	Token      string `json:"token" validate:"required"`
}

// ScanResponse reports the transition the scan produced.
type ScanResponse struct {
	Outcome string     `json:"outcome"`
	Kind    string     `json:"kind,omitempty"`
	Record  *RecordDTO `json:"record,omitempty"`
}

// RecordDTO represents one attendance record.
type RecordDTO struct {
	EmployeeID string  `json:"employee_id"`
	Day        string  `json:"day"`
	SiteID     string  `json:"site_id"`
	CheckinAt  string  `json:"checkin_at"`
	CheckoutAt *string `json:"checkout_at,omitempty"`
	Kind       string  `json:"kind,omitempty"`
	Remarks    string  `json:"remarks,omitempty"`
}

// =============================================================================
// EMPLOYEES
// =============================================================================

type EmployeeDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DailyWage string  `json:"daily_wage"`
	SiteID    *string `json:"site_id,omitempty"`
}

type CreateEmployeeRequest struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	DailyWage string  `json:"daily_wage" validate:"required"`
	SiteID    *string `json:"site_id,omitempty" validate:"omitempty,uuid4"`
}

// =============================================================================
// SITES
// =============================================================================

type SiteDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateSiteRequest struct {
	Name string `json:"name" validate:"required"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type HolidayDTO struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type CreateHolidayRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"required"`
}

// =============================================================================
// ATTENDANCE MONTH VIEW
// =============================================================================

// DayStatusDTO is one calendar cell.
type DayStatusDTO struct {
	Day    string `json:"day"`
	Status string `json:"status"`
}

type SummaryDTO struct {
	Present int `json:"present"`
	Half    int `json:"half"`
	Leave   int `json:"leave"`
	Absent  int `json:"absent"`
	Pending int `json:"pending"`
	Total   int `json:"total"`
}

type AttendanceMonthDTO struct {
	EmployeeID string         `json:"employee_id"`
	Month      string         `json:"month"`
	Days       []DayStatusDTO `json:"days"`
	Summary    SummaryDTO     `json:"summary"`
}

// =============================================================================
// LEAVE
// =============================================================================

type SubmitLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"`
}

type LeaveDTO struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Days       int     `json:"days"`
	Status     string  `json:"status"`
	Reason     string  `json:"reason,omitempty"`
	DecidedBy  string  `json:"decided_by,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// DecisionDTO is the reviewed paid/unpaid split. The client echoes these
// fields back on approve; the commit verifies the snapshot still holds.
type DecisionDTO struct {
	RequestID            string   `json:"request_id"`
	EmployeeID           string   `json:"employee_id"`
	Month                string   `json:"month"`
	Days                 int      `json:"days"`
	PaidDays             int      `json:"paid_days"`
	UnpaidDays           int      `json:"unpaid_days"`
	Deduction            string   `json:"deduction"`
	ApprovedSoFar        int      `json:"approved_so_far"`
	ConflictDays         []string `json:"conflict_days,omitempty"`
	RequiresConfirmation bool     `json:"requires_confirmation"`
}

type ApproveLeaveRequest struct {
	ApproverID    string `json:"approver_id" validate:"required"`
	Month         string `json:"month" validate:"required"`
	Days          int    `json:"days" validate:"min=1"`
	PaidDays      int    `json:"paid_days" validate:"min=0"`
	UnpaidDays    int    `json:"unpaid_days" validate:"min=0"`
	Deduction     string `json:"deduction" validate:"required"`
	ApprovedSoFar int    `json:"approved_so_far" validate:"min=0"`
}

type RejectLeaveRequest struct {
	ApproverID string `json:"approver_id" validate:"required"`
	Reason     string `json:"reason"`
}

// =============================================================================
// LEDGER
// =============================================================================

type EntryDTO struct {
	ID        string  `json:"id"`
	Amount    string  `json:"amount"`
	Type      string  `json:"type"`
	Reason    string  `json:"reason"`
	Month     string  `json:"month"`
	Day       *string `json:"day,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type LedgerDTO struct {
	EmployeeID string     `json:"employee_id"`
	Month      string     `json:"month"`
	Entries    []EntryDTO `json:"entries"`
	Balance    string     `json:"balance"`
}

type ManualEntryRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Amount     string `json:"amount" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=credit debit"`
	Reason     string `json:"reason" validate:"required"`
}

type SettleRequest struct {
	Month string `json:"month" validate:"required"`
}

type SettleResponse struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"`
	Settled    string `json:"settled"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
