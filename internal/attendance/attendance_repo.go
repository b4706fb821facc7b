package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// FindOpenSession returns the employee's open session. Inside a
	// transaction the row is locked FOR UPDATE so concurrent marks for the
	// same employee serialize on it.
	FindOpenSession(ctx context.Context, employeeID string) (*AttendanceRecord, error)
	Create(ctx context.Context, rec *AttendanceRecord) error
	Close(ctx context.Context, id uuid.UUID, checkOut time.Time, hoursWorked float64) error
	FindByEmployee(ctx context.Context, employeeID string, limit int) ([]AttendanceRecord, error)
	FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceRecord, error)
	FindReport(ctx context.Context, start, end time.Time, employeeID string) ([]ReportRow, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

const openSessionQuery = `
SELECT id, employee_id, check_in, check_out, hours_worked
FROM attendance_records
WHERE employee_id = $1 AND check_out IS NULL
`

func (r *repository) FindOpenSession(ctx context.Context, employeeID string) (*AttendanceRecord, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, openSessionQuery+"FOR UPDATE", employeeID)
		var rec AttendanceRecord
		if err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.CheckIn, &rec.CheckOut, &rec.HoursWorked); err != nil {
			return nil, err
		}
		return &rec, nil
	}

	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("check_out IS NULL").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	if r.tx != nil {
		// Inserting through the employees row keeps a soft-deleted employee
		// from opening a session; zero rows means the employee is gone.
		res, err := r.tx.ExecContext(ctx, `
INSERT INTO attendance_records (id, employee_id, check_in, created_at, updated_at)
SELECT $1, e.id, $3, NOW(), NOW()
FROM employees e
WHERE e.id = $2 AND e.deleted_at IS NULL
`, rec.ID, rec.EmployeeID, rec.CheckIn)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}
		return nil
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Close(ctx context.Context, id uuid.UUID, checkOut time.Time, hoursWorked float64) error {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, `
UPDATE attendance_records
SET check_out = $2, hours_worked = $3, updated_at = NOW()
WHERE id = $1
`, id, checkOut, hoursWorked)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{"check_out": checkOut, "hours_worked": hoursWorked})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string, limit int) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("check_in DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("check_in >= ?", start).
		Where("check_in < ?", end).
		Order("check_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindReport(ctx context.Context, start, end time.Time, employeeID string) ([]ReportRow, error) {
	q := r.db.WithContext(ctx).
		Table("attendance_records AS a").
		Select("a.*, e.name AS employee_name, e.email AS employee_email").
		Joins("JOIN employees e ON e.id = a.employee_id").
		Where("a.check_in >= ?", start).
		Where("a.check_in < ?", end).
		Order("a.check_in DESC")

	if employeeID != "" {
		q = q.Where("a.employee_id = ?", employeeID)
	}

	var rows []ReportRow
	err := q.Find(&rows).Error
	return rows, err
}
