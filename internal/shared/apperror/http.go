package apperror

import (
	"errors"
	"net/http"
	"os"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP translates any error into a response-ready HTTPError. Unclassified
// errors become a generic 500; the underlying detail is only exposed outside
// production so storage errors never leak to callers.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	httpErr := HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
	if os.Getenv("APP_ENV") != "production" && err != nil {
		httpErr.Details = err.Error()
	}
	return httpErr
}
