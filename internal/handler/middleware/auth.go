package middleware

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"

	"github.com/wolhaven/atelier/internal/auth"
	"github.com/wolhaven/atelier/internal/dto"
)

// AdminRequired rejects requests without a valid admin session cookie.
func AdminRequired(sessions *auth.SessionStore, cookieName string) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		cookie, err := c.Cookie(cookieName)
		if err != nil || !sessions.Valid(cookie) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "unauthorized",
			})
			return
		}
		c.Next()
	}
}
