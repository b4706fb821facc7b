package response

import (
	"reflect"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// ApiEnvelope is the shape every endpoint answers with. Scanner clients key
// off the success flag, so it is always present, even on errors.
type ApiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    any             `json:"data,omitempty"`
	Records any             `json:"records,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
	Error   any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, message string, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

// Records answers list endpoints whose contract names the collection
// "records" rather than "data".
func Records(c *gin.Context, status int, records interface{}, meta *PaginationMeta) {
	// A nil slice must serialize as [] for clients iterating the result
	if records == nil {
		records = []any{}
	} else if v := reflect.ValueOf(records); v.Kind() == reflect.Slice && v.IsNil() {
		records = []any{}
	}
	c.JSON(status, ApiEnvelope{
		Success: true,
		Records: records,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Success: false,
		Message: message,
		Error: map[string]interface{}{
			"code":    errorCode,
			"details": details,
		},
	})
}
