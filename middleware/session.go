package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Phirakan/go-storefront/utils"
)

const (
	// SessionCookie carries the signed session token
	SessionCookie = "shop_session"
	// SessionHeader echoes the token for clients that don't keep cookies
	SessionHeader = "X-Session-Token"

	sessionIDKey = "sessionID"
)

// SessionMiddleware identifies the anonymous shopper. A valid token from
// the cookie or "Authorization: Bearer <token>" is reused; otherwise a new
// session is minted and returned in both the cookie and SessionHeader.
func SessionMiddleware(signer *utils.SessionSigner, ttl time.Duration, secure bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionToken(c); token != "" {
			claims, err := signer.Validate(token)
			if err == nil {
				c.Set(sessionIDKey, claims.SessionID)
				c.Next()
				return
			}
			logger.Debug("Rejected session token", zap.Error(err))
		}

		sessionID, token, err := signer.NewSession()
		if err != nil {
			logger.Error("Failed to create session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
		c.Header(SessionHeader, token)
		c.Set(sessionIDKey, sessionID)

		c.Next()
	}
}

// GetSessionID returns the session ID set by SessionMiddleware
func GetSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

func sessionToken(c *gin.Context) string {
	// Extract token from "Bearer <token>"
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(SessionCookie); err == nil {
		return token
	}
	return ""
}
