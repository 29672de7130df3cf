package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rs/zerolog"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	services *service.Services
	cfg      config.AuthConfig
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, cfg config.AuthConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login handles POST /api/auth/login
// The token is returned in the body and set as the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	session, err := h.services.Auth.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err, "", "Failed to log in")
		return
	}
	h.setSessionCookie(c, session)
	c.JSON(http.StatusOK, session)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString(ctxAdminKey)})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, session *service.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.CookieName, session.Token, maxAge, "/", "", h.cfg.SecureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.SecureCookie, true)
}
