package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecord is one work session. CheckOut IS NULL marks the session as
// open; the partial unique index uq_attendance_open keeps at most one open
// session per employee, which is what makes the mark toggle race-safe.
type AttendanceRecord struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index;uniqueIndex:uq_attendance_open,where:check_out IS NULL"`
	CheckIn     time.Time  `gorm:"column:check_in;type:timestamptz;not null;index"`
	CheckOut    *time.Time `gorm:"column:check_out;type:timestamptz"`
	HoursWorked *float64   `gorm:"column:hours_worked;type:decimal(6,2)"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	Employee    *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

type EmployeeRef struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// ReportRow is an AttendanceRecord joined with the employee identity for the
// administrative report.
type ReportRow struct {
	AttendanceRecord
	EmployeeName  string `gorm:"column:employee_name"`
	EmployeeEmail string `gorm:"column:employee_email"`
}
