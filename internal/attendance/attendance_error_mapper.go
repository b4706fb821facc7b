package attendance

import (
	"errors"
	"strings"

	attendanceerrors "qr-attendance/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// errOpenSessionConflict signals that a concurrent mark won the insert race
// on uq_attendance_open. The service retries once and resolves to check-out.
var errOpenSessionConflict = errors.New("open session already exists")

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_attendance_open" {
				return errOpenSessionConflict
			}
		case "23503":
			return attendanceerrors.ErrEmployeeNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_open") {
		return errOpenSessionConflict
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return attendanceerrors.ErrEmployeeNotFound
	}

	return err
}
