package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sige/internal/shared/contextutil"
)

// ContextLogger attaches a request-scoped logger carrying the request,
// user and tenant ids. Services reach it via contextutil.GetLogger
// without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString("request_id")
		uid := c.GetInt64("user_id")
		tid := c.GetInt64("tenant_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.Int64("user_id", uid),
			zap.Int64("tenant_id", tid),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
