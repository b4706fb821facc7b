package attendance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"qr-attendance/internal/middleware"
	"qr-attendance/internal/shared/apperror"
	"qr-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, "QR code data is required", httpErr.Details)
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), getActorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	message := "Check-out successful"
	if resp.Kind == KindCheckIn {
		status = http.StatusCreated
		message = "Check-in successful"
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				record := middleware.IdempotentRecord{Status: status, Message: message, Data: payload}
				if cached, marshalErr := json.Marshal(record); marshalErr == nil {
					_ = h.rdb.Set(c.Request.Context(), ck, cached, 24*time.Hour).Err()
				}
			}
		}
	}

	response.Success(c, status, message, resp, nil)
}

func (h *Handler) Personal(c *gin.Context) {
	var filter RangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	records, err := h.service.Personal(c.Request.Context(), getActorID(c), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Records(c, http.StatusOK, records, nil)
}

func (h *Handler) Report(c *gin.Context) {
	var filter ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	records, err := h.service.Report(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "100"))
	if pageSize < 1 {
		pageSize = 100
	}

	total := int64(len(records))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Records(c, http.StatusOK, records[start:end], &meta)
}
