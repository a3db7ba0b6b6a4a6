package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/respond"
	"resumegen-backend/internal/telemetry"
)

const (
	userIDKey         = "userId"
	sessionCookieName = "session_token"
)

// Session resolves the session cookie to a user ID and stores it in context.
// Any miss rejects the request; there is no anonymous fallback. A missing
// token, a never-issued token, a revoked token and an expired token are all
// the same 401 to the caller.
func Session(store auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}

		userID, err := store.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) {
				telemetry.Error("session.lookup_failed", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      err.Error(),
				})
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired session", nil)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the session middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
