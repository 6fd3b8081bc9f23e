package middleware

import (
	"strings"

	"academy_backend/internal/config"
	"academy_backend/internal/model"
	"academy_backend/internal/util"
	"academy_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	// download links opened directly by the browser carry the token in the query
	return c.Query("token")
}

// AuthMiddleware rejects requests without a valid provider token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret, cfg.JWT.Issuer)
		if err != nil {
			logger.Log.Debug("rejected bearer token",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			util.Unauthorized(c)
			c.Abort()
			return
		}

		util.SetUserInContext(c, claims)
		c.Next()
	}
}

// TryAuthMiddleware attaches the user when a valid token is present and lets
// anonymous requests through. An invalid token is treated as anonymous.
func TryAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret, cfg.JWT.Issuer); err == nil {
				util.SetUserInContext(c, claims)
			}
		}
		c.Next()
	}
}

// RoleMiddleware must run after AuthMiddleware. Admins pass every role check.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := user.IsAdmin()
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
