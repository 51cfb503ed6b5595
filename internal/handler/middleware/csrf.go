package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strings"

	"reimburse-api/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
)

// Paths open to non-browser clients: API-key endpoints, the public form
// surface, token exchange, health and docs.
var csrfExemptPrefixes = []string{
	"/api/v1/forms",
	"/api/v1/auth/exchange",
	"/health",
	"/swagger",
}

// NewCSRFMiddleware implements the double-submit cookie scheme: safe methods
// receive the cookie, state-changing browser requests must echo it in the
// header.
func NewCSRFMiddleware(cfg config.CSRFConfig, cookieCfg config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			ensureCSRFCookie(c, cookieCfg)
			c.Next()
			return
		}

		for _, prefix := range csrfExemptPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		cookieVal, err := c.Cookie(csrfCookieName)
		headerVal := c.GetHeader(csrfHeaderName)
		if err != nil || cookieVal == "" || headerVal == "" ||
			subtle.ConstantTimeCompare([]byte(cookieVal), []byte(headerVal)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "CSRF token missing or invalid"},
			})
			return
		}
		c.Next()
	}
}

func ensureCSRFCookie(c *gin.Context, cookieCfg config.CookieConfig) {
	if _, err := c.Cookie(csrfCookieName); err == nil {
		return
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return
	}
	// Not HttpOnly: the browser client reads it to fill the header.
	c.SetCookie(csrfCookieName, hex.EncodeToString(buf), 0, "/", cookieCfg.Domain, cookieCfg.Secure, false)
}
