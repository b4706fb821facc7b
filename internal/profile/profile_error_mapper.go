package profile

import (
	"errors"

	employeeerrors "qr-attendance/internal/employee/errors"

	"gorm.io/gorm"
)

func mapLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}
