package attendance

import "encoding/json"

type MarkRequest struct {
	QRData json.RawMessage `json:"qrData" binding:"required"`
}

const (
	KindCheckIn  = "check-in"
	KindCheckOut = "check-out"
)

// MarkResponse reports the single ledger mutation one mark call produced.
// CheckOut and HoursWorked are present only on the check-out branch;
// HoursWorked is a two-decimal string ("8.50") to match what badge scanner
// clients display verbatim.
type MarkResponse struct {
	Kind        string  `json:"-"`
	ID          string  `json:"id"`
	CheckIn     string  `json:"checkIn"`
	CheckOut    *string `json:"checkOut,omitempty"`
	HoursWorked *string `json:"hoursWorked,omitempty"`
}

type RecordResponse struct {
	ID          string  `json:"id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    *string `json:"check_out"`
	HoursWorked *string `json:"hours_worked"`
	Status      string  `json:"status"`
}

type ReportEntryResponse struct {
	RecordResponse
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
}

type RangeFilter struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

type ReportFilter struct {
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
	EmployeeID string `form:"employeeId"`
}
