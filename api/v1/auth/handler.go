package auth

import (
	"errors"
	"net/http"
	"time"

	"swdb/api/v1/middleware"
	"swdb/internal/auth"
	"swdb/internal/cas"
	"swdb/internal/config"
	"swdb/internal/httpx"
	"swdb/internal/model"
	"swdb/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler owns the authentication flow endpoints
type Handler struct {
	db       *gorm.DB
	cas      *cas.Client
	sessions *session.Store
	cfg      *config.Config
}

// NewHandler creates the auth handler
func NewHandler(db *gorm.DB, casClient *cas.Client, sessions *session.Store, cfg *config.Config) *Handler {
	return &Handler{db: db, cas: casClient, sessions: sessions, cfg: cfg}
}

// CASLogin handles GET /caslogin. Without a ticket the caller is redirected
// to the CAS login page; with a ticket the ticket is validated and, on
// success, a session is established and the caller redirected back to the
// application root.
func (h *Handler) CASLogin(c *gin.Context) {
	if h.cfg.CAS.BaseURL == "" {
		httpx.FailErr(c, httpx.ErrExternalError("SSO is not configured", nil))
		return
	}

	ticket := c.Query("ticket")
	if ticket == "" {
		c.Redirect(http.StatusFound, h.cas.LoginURL())
		return
	}

	username, err := h.cas.ValidateTicket(c.Request.Context(), ticket)
	if err != nil {
		httpx.FailErr(c, httpx.ErrUnauthorized("SSO ticket validation failed"))
		return
	}

	if appErr := h.establishSession(c, username); appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// TestLogin handles GET /testlogin: a non-production bypass that accepts
// HTTP Basic credentials against the local users table and establishes the
// same session state as a CAS login.
func (h *Handler) TestLogin(c *gin.Context) {
	if !h.cfg.TestAuth.Enabled {
		httpx.FailErr(c, httpx.ErrForbidden("test login is disabled"))
		return
	}

	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="swdb"`)
		httpx.FailErr(c, httpx.ErrUnauthorized("credentials required"))
		return
	}

	var user model.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.FailErr(c, httpx.ErrUnauthorized("invalid credentials"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("database error", err))
		return
	}

	if user.Status == model.UserStatusInactive {
		httpx.FailErr(c, httpx.ErrForbidden("user is inactive"))
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		httpx.FailErr(c, httpx.ErrUnauthorized("invalid credentials"))
		return
	}

	if appErr := h.establishSession(c, user.Username); appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	httpx.OK(c, gin.H{"username": user.Username})
}

// Logout handles GET /logout: revokes the server-side session and clears the
// cookie. Logging out while anonymous succeeds trivially.
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		if claims, err := auth.ParseToken(cookie); err == nil {
			if err := h.sessions.Revoke(c.Request.Context(), claims.SessionID); err != nil {
				httpx.FailErr(c, httpx.ErrInternalError("failed to revoke session", err))
				return
			}
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	httpx.OK(c, gin.H{"loggedOut": true})
}

// User handles GET /api/v1/swdb/user: returns the current session identity,
// empty for anonymous callers
func (h *Handler) User(c *gin.Context) {
	httpx.OK(c, gin.H{
		"username": middleware.CurrentUser(c, h.sessions),
	})
}

func (h *Handler) establishSession(c *gin.Context, username string) *httpx.AppError {
	sessionID, err := h.sessions.Create(c.Request.Context(), username)
	if err != nil {
		return httpx.ErrInternalError("failed to create session", err)
	}

	expireAt := time.Now().Add(time.Duration(h.cfg.JWT.ExpireMinutes) * time.Minute)
	token, err := auth.GenerateToken(username, sessionID, expireAt, h.cfg.JWT.Issuer)
	if err != nil {
		return httpx.ErrInternalError("failed to generate session token", err)
	}

	maxAge := h.cfg.JWT.ExpireMinutes * 60
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
	return nil
}
