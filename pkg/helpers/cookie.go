package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the name of the auth cookie read by the auth middleware.
const TokenCookie = "token"

// Manager writes the auth cookie. Production deployments serve the SPA from
// another origin, so the cookie must be Secure with SameSite=None there.
type Manager struct {
	Domain     string
	Production bool
	ExpireDays int
}

func NewCookie(domain string, production bool, expireDays int) *Manager {
	return &Manager{Domain: domain, Production: production, ExpireDays: expireDays}
}

func (m *Manager) sameSite() http.SameSite {
	if m.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// Expiry returns when a cookie issued at now expires.
func (m *Manager) Expiry(now time.Time) time.Time {
	return now.Add(time.Duration(m.ExpireDays) * 24 * time.Hour)
}

func (m *Manager) SetToken(c *gin.Context, token string) {
	exp := m.Expiry(time.Now())
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   m.Domain,
		Expires:  exp,
		MaxAge:   maxAgeFrom(exp),
		Secure:   m.Production,
		HttpOnly: true,
		SameSite: m.sameSite(),
	})
}

func (m *Manager) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   m.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.Production,
		HttpOnly: true,
		SameSite: m.sameSite(),
	})
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
