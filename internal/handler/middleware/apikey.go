package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"reimburse-api/internal/pkg/apikey"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	apiKeyHeader     = "X-API-Key"
	ctxAPIKeyIDKey   = "api_key_id"
	ctxAPIKeyNameKey = "api_key_name"
)

type APIKeyRecord struct {
	ID   uuid.UUID
	Name string
}

// APIKeyLookup resolves a key hash to an active key record.
type APIKeyLookup interface {
	FindActiveByHash(ctx context.Context, keyHash string) (*APIKeyRecord, error)
}

type APIKeyMiddleware struct {
	lookup APIKeyLookup
}

func NewAPIKeyMiddleware(lookup APIKeyLookup) *APIKeyMiddleware {
	return &APIKeyMiddleware{lookup: lookup}
}

func (m *APIKeyMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(apiKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "API key required"},
			})
			return
		}

		// Only the hash ever reaches the database.
		record, err := m.lookup.FindActiveByHash(c.Request.Context(), apikey.Hash(key))
		if err != nil {
			slog.Warn("api key rejected", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid API key"},
			})
			return
		}

		c.Set(ctxAPIKeyIDKey, record.ID)
		c.Set(ctxAPIKeyNameKey, record.Name)
		c.Next()
	}
}

func GetAPIKeyID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxAPIKeyIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
