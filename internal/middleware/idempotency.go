package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"qr-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// IdempotentRecord is what handlers cache for a completed request so a
// replay reproduces the original status, message and body.
type IdempotentRecord struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Idempotency replays the cached response for a repeated Idempotency-Key and
// rejects a key whose first request is still in flight. Scanner apps retry
// aggressively on slow networks; without this a retried mark request would
// toggle the attendance state back.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id_validated")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var rec IdempotentRecord
			if json.Unmarshal([]byte(val), &rec) != nil || rec.Status == 0 {
				rec = IdempotentRecord{Status: http.StatusOK, Message: "Replayed previous result", Data: json.RawMessage(val)}
			}
			c.Header("X-Idempotent-Replay", "true")
			response.Success(c, rec.Status, rec.Message, rec.Data, nil)
			c.Abort()
			return
		}

		// SetNX with a short TTL: a crashed handler releases the lock by expiry
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "Your request is still being processed, please wait", nil)
			c.Abort()
			return
		}

		// Handlers delete the lock and fill the cache after completing
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
