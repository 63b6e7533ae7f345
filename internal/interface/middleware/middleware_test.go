package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
)

func TestAuthAndRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := gin.New()
	r.GET("/me", Auth(nil, jwt, nil), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey)+"|"+c.GetString(CtxRoleKey))
	})
	r.GET("/admin", Auth(nil, jwt, nil), RequireRole(entity.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	bidderTok, _, err := jwt.Generate("u1", string(entity.RoleBidder), "s1")
	require.NoError(t, err)
	adminTok, _, err := jwt.Generate("u2", string(entity.RoleSuperAdmin), "s2")
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		cookie     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"no token", "/me", "", "", http.StatusUnauthorized, ""},
		{"garbage token", "/me", "garbage", "", http.StatusUnauthorized, ""},
		{"cookie", "/me", bidderTok, "", http.StatusOK, "u1|Bidder"},
		{"bearer header", "/me", "", "Bearer " + bidderTok, http.StatusOK, "u1|Bidder"},
		{"wrong role", "/admin", bidderTok, "", http.StatusForbidden, ""},
		{"right role", "/admin", adminTok, "", http.StatusNoContent, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: helpers.TokenCookie, Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				require.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	require.NoError(t, err)
	require.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, incoming, w.Body.String())

	req.Header.Set(RequestIDHeader, "not-a-uuid\n")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NotEqual(t, "not-a-uuid\n", w.Body.String())
}

func TestRateLimitKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var keys []string
	r := gin.New()
	r.Use(RealIP())
	r.GET("/bid/place/:id", func(c *gin.Context) {
		keys = []string{KeyByIP()(c), KeyByIPAndPath()(c), KeyByUserID()(c)}
		c.Set(CtxUserIDKey, "u1")
		keys = append(keys, KeyByUserID()(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/bid/place/a1", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, []string{
		"rl:ip:203.0.113.7",
		"rl:path:/bid/place/:id:ip:203.0.113.7",
		"rl:user:anon:ip:203.0.113.7",
		"rl:user:u1",
	}, keys)
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allow := AllowPrivateIP()
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"192.168.0.9", true},
		{"203.0.113.7", false},
		{"", false},
	}
	for _, tc := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(RealIPKey, tc.ip)
		if tc.ip == "" {
			c.Request.RemoteAddr = "bogus"
		}
		require.Equal(t, tc.want, allow(c), tc.ip)
	}
}

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare wins", map[string]string{"CF-Connecting-IP": "198.51.100.1", "X-Forwarded-For": "203.0.113.7"}, "198.51.100.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"left-most forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"garbage skipped", map[string]string{"CF-Connecting-IP": "nope", "X-Forwarded-For": "203.0.113.9"}, "203.0.113.9"},
		{"remote addr", nil, "192.0.2.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			r := gin.New()
			r.Use(RealIP())
			r.GET("/", func(c *gin.Context) { got = c.GetString(RealIPKey) })
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			require.Equal(t, tc.want, got)
		})
	}
}
