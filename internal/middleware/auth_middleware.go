package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"sige/internal/shared/apperror"
	"sige/internal/shared/contextutil"
	"sige/internal/shared/response"
	"sige/internal/tenant"
)

// AuthMiddleware validates the bearer token (header or access_token
// cookie) and leaves user_id, role and admin_id in the gin context for
// the tenant middleware.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			msg := "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				msg = "Token expired"
			}
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		var adminID int64
		if v, ok := claims["admin_id"].(float64); ok {
			adminID = int64(v)
		}

		c.Set("user_id", int64(userID))
		c.Set("role", role)
		c.Set("admin_id", adminID)

		c.Next()
	}
}

// TenantMiddleware turns the authenticated claims into a tenant id. It
// aborts with 403 when no tenant can be determined.
func TenantMiddleware(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := &tenant.Principal{
			UserID:        c.GetInt64("user_id"),
			Role:          c.GetString("role"),
			AdminID:       c.GetInt64("admin_id"),
			Authenticated: c.GetInt64("user_id") > 0,
		}

		tenantID, err := resolver.Resolve(c.Request.Context(), p)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("tenant_id", tenantID)
		c.Request = c.Request.WithContext(
			contextutil.WithTenantID(c.Request.Context(), tenantID),
		)

		c.Next()
	}
}

// RoleMiddleware rejects callers whose role is not in the allowed set.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("role")

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, nil)
		c.Abort()
	}
}
