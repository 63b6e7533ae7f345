package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
	"github.com/oksasatya/auction-marketplace/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

func bearer(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.TokenCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the token cookie (or bearer header) and, when Redis is
// configured, that the session it names is still the active one.
// It sets userID and userRole in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "user not authenticated", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}

		if rdb != nil {
			ok, err := helpers.SessionActive(c.Request.Context(), rdb, claims.UserID, claims.SessionID)
			if err != nil && logger != nil {
				logger.WithError(err).WithField("user_id", claims.UserID).Error("session lookup failed")
			}
			if err != nil || !ok {
				response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.Abort()
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		have := entity.Role(c.GetString(CtxRoleKey))
		for _, r := range roles {
			if have == r {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, string(have)+" not allowed to access this resource", nil)
		c.Abort()
	}
}
