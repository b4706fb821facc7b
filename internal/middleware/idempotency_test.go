package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qr-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client, mock := redismock.NewClientMock()

	r := gin.New()
	r.POST("/attendance/mark", func(c *gin.Context) {
		c.Set("user_id_validated", "emp-1")
		c.Next()
	}, Idempotency(client), func(c *gin.Context) {
		response.Success(c, http.StatusCreated, "Check-in successful", gin.H{"id": "rec-1"}, nil)
	})

	return r, mock
}

func TestIdempotency_FirstRequestPassesThrough(t *testing.T) {
	r, mock := newIdempotencyRouter(t)

	cacheKey := "idemp:/attendance/mark:emp-1:key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/mark", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Check-in successful")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResult(t *testing.T) {
	r, mock := newIdempotencyRouter(t)

	// A replayed check-in answers with the original status and message
	cacheKey := "idemp:/attendance/mark:emp-1:key-1"
	mock.ExpectGet(cacheKey).SetVal(`{"status":201,"message":"Check-in successful","data":{"id":"rec-1"}}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/mark", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotent-Replay"))
	assert.Contains(t, w.Body.String(), "Check-in successful")
	assert.Contains(t, w.Body.String(), "rec-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysLegacyCacheEntry(t *testing.T) {
	r, mock := newIdempotencyRouter(t)

	cacheKey := "idemp:/attendance/mark:emp-1:key-1"
	mock.ExpectGet(cacheKey).SetVal(`{"id":"rec-1"}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/mark", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Replayed previous result")
	assert.Contains(t, w.Body.String(), "rec-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightKeyConflicts(t *testing.T) {
	r, mock := newIdempotencyRouter(t)

	cacheKey := "idemp:/attendance/mark:emp-1:key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/mark", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeySkipsRedis(t *testing.T) {
	r, mock := newIdempotencyRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/attendance/mark", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
