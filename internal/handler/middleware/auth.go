package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"reimburse-api/internal/pkg/cookie"
	"reimburse-api/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxOperatorIDKey  = "operator_id"
	ctxIsSuperuserKey = "is_superuser"
)

type AuthMiddleware struct {
	jwtService *jwt.Service
}

func NewAuthMiddleware(jwtService *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func bearerToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			return
		}

		c.Set(ctxOperatorIDKey, claims.OperatorID)
		c.Set(ctxIsSuperuserKey, claims.IsSuperuser)
		c.Next()
	}
}

// RequireSuperuser must run after RequireAuth.
func (m *AuthMiddleware) RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsSuperuser(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Superuser access required"},
			})
			return
		}
		c.Next()
	}
}

func GetOperatorID(c *gin.Context) (uuid.UUID, bool) {
	operatorID, exists := c.Get(ctxOperatorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := operatorID.(uuid.UUID)
	return id, ok
}

func IsSuperuser(c *gin.Context) bool {
	v, exists := c.Get(ctxIsSuperuserKey)
	if !exists {
		return false
	}
	super, ok := v.(bool)
	return ok && super
}
