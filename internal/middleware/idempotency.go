package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

// Idempotency guards POSTs carrying an Idempotency-Key header with a
// short-lived redis lock, rejecting the duplicate while the first
// request is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		lockKey := fmt.Sprintf("idemp:%s:%d:%s", c.FullPath(), c.GetInt64("user_id"), idempKey)

		isNew, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if err != nil {
			// redis down must not block writes
			c.Next()
			return
		}

		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"A request with this idempotency key is already in progress", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
