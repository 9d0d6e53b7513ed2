package middleware

import (
	"errors"
	"strings"

	"swdb/internal/auth"
	"swdb/internal/httpx"
	"swdb/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "swdb-session"

// AuthRequired validates the session token (cookie or bearer header) and the
// liveness of its server-side session, then injects the username into the
// request context. Mutating routes are mounted behind this gate; reads are
// not.
func AuthRequired(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			httpx.FailErr(c, httpx.ErrUnauthorized("not logged in"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				httpx.FailErr(c, httpx.ErrTokenExpired("session expired"))
			} else {
				httpx.FailErr(c, httpx.ErrInvalidToken("invalid session token"))
			}
			c.Abort()
			return
		}

		alive, err := sessions.Alive(c.Request.Context(), claims.SessionID)
		if err != nil {
			httpx.FailErr(c, httpx.ErrInternalError("failed to check session", err))
			c.Abort()
			return
		}
		if !alive {
			httpx.FailErr(c, httpx.ErrUnauthorized("session revoked"))
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("sessionId", claims.SessionID)

		c.Next()
	}
}

// CurrentUser resolves the session identity without gating the request.
// Returns the empty string for anonymous callers.
func CurrentUser(c *gin.Context, sessions *session.Store) string {
	tokenString := extractToken(c)
	if tokenString == "" {
		return ""
	}
	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		return ""
	}
	alive, err := sessions.Alive(c.Request.Context(), claims.SessionID)
	if err != nil || !alive {
		return ""
	}
	return claims.Username
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
