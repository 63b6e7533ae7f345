package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func recordCookie(t *testing.T, m *Manager, set bool) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if set {
		m.SetToken(c, "abc")
	} else {
		m.Clear(c)
	}
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManager_SetToken(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		secure     bool
		sameSite   http.SameSite
	}{
		{name: "production", production: true, secure: true, sameSite: http.SameSiteNoneMode},
		{name: "development", production: false, secure: false, sameSite: http.SameSiteLaxMode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ck := recordCookie(t, NewCookie("", tc.production, 7), true)
			require.Equal(t, TokenCookie, ck.Name)
			require.Equal(t, "abc", ck.Value)
			require.True(t, ck.HttpOnly)
			require.Equal(t, tc.secure, ck.Secure)
			require.Equal(t, tc.sameSite, ck.SameSite)
			require.InDelta(t, 7*24*3600, ck.MaxAge, 5)
			require.WithinDuration(t, time.Now().Add(7*24*time.Hour), ck.Expires, time.Minute)
		})
	}
}

func TestManager_Clear(t *testing.T) {
	ck := recordCookie(t, NewCookie("", false, 7), false)
	require.Equal(t, TokenCookie, ck.Name)
	require.Empty(t, ck.Value)
	require.True(t, ck.MaxAge < 0)
}
