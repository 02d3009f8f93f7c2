package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

func (cfg CookieConfig) set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.Name, token, int(cfg.TTL.Seconds()), "/", cfg.Domain, cfg.Secure, true)
}

func (cfg CookieConfig) clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.Name, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

// sessionToken returns the session cookie value, falling back to a Bearer Authorization header.
// An empty string means no token was presented.
func (cfg CookieConfig) sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(cfg.Name); err == nil && token != "" {
		return token
	}

	const bearerPrefix = "bearer "
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}
