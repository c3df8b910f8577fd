package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dayflow/internal/shared/apperror"
	"dayflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second

	// Context keys handlers use to store the final response body.
	IdempotencyCacheKey = "idempotency_cache_key"
	IdempotencyLockKey  = "idempotency_lock_key"
)

// Idempotency replays the cached response for a repeated POST carrying
// the same Idempotency-Key, and rejects a concurrent duplicate while
// the first attempt is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached any
			_ = json.Unmarshal([]byte(val), &cached)
			response.Success(c, http.StatusOK, "Replayed previous result", cached)
			c.Abort()
			return
		}

		// Short-lived lock so a crashed attempt cannot wedge the key.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "A matching request is still being processed", nil)
			c.Abort()
			return
		}

		c.Set(IdempotencyCacheKey, cacheKey)
		c.Set(IdempotencyLockKey, lockKey)

		c.Next()

		// Cache successful outcomes, release the lock either way.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			if body, ok := c.Get("idempotency_response"); ok {
				if encoded, err := json.Marshal(body); err == nil {
					rdb.Set(c.Request.Context(), cacheKey, encoded, idempotencyTTL)
				}
			}
		}
		rdb.Del(c.Request.Context(), lockKey)
	}
}
