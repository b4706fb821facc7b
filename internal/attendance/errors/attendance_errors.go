package attendanceerrors

import (
	"net/http"

	"qr-attendance/internal/shared/apperror"
)

var (
	ErrQRDataRequired = apperror.New(
		apperror.CodeInvalidInput,
		"QR code data is required",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
