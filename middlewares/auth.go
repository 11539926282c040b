package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"messaging-system/services"
	"messaging-system/store"
)

// TokenAuthMiddleware 校验 Bearer access 令牌，把当前用户放进上下文。
// 没有有效令牌的请求在进入任何业务逻辑之前就被拒绝。
func TokenAuthMiddleware(tokens *services.TokenService, users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		userID, err := tokens.ParseAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired."})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		user, err := users.FindByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}
