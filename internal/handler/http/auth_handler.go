package http

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/auth"
	"github.com/wolhaven/atelier/internal/dto"
)

type AuthHandler struct {
	sessions     *auth.SessionStore
	cookieName   string
	cookieMaxAge int
	cookieSecure bool
}

func NewAuthHandler(sessions *auth.SessionStore, cookieName string, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) RegisterRoutes(engine *ginext.Engine) {
	engine.POST("/api/auth/login", h.Login)
	engine.POST("/api/auth/logout", h.Logout)
	engine.GET("/api/auth/me", h.Me)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *ginext.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "password is required"})
		return
	}

	token, err := h.sessions.Login(req.Password)
	if err != nil {
		zlog.Logger.Warn().Str("client_ip", c.ClientIP()).Msg("failed admin login attempt")
		respondError(c, err)
		return
	}

	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, ginext.H{"admin": true})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *ginext.Context) {
	if token, err := c.Cookie(h.cookieName); err == nil {
		h.sessions.Logout(token)
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, ginext.H{"admin": false})
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *ginext.Context) {
	token, err := c.Cookie(h.cookieName)
	admin := err == nil && h.sessions.Valid(token)
	c.JSON(http.StatusOK, ginext.H{"admin": admin})
}
