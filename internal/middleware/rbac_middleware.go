package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sige/internal/rbac"
	"sige/internal/shared/apperror"
	"sige/internal/shared/response"
)

// Authorize checks the caller's role against a resource/action pair.
// Runs after AuthMiddleware, which put the role in the gin context.
func Authorize(service rbac.Service, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, err.Error(), nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission for "+resource+":"+action, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
