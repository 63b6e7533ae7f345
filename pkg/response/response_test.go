package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("request_id", "req-1") })
	r.GET("/ok", func(c *gin.Context) {
		Success(c, 0, gin.H{"n": 1}, "fine", nil)
	})
	r.GET("/bad", func(c *gin.Context) {
		Error[any](c, http.StatusConflict, "nope", map[string]string{"amount": "too low"})
	})

	tests := []struct {
		path       string
		wantStatus int
		wantOK     bool
		wantMsg    string
	}{
		{"/ok", http.StatusOK, true, "fine"},
		{"/bad", http.StatusConflict, false, "nope"},
	}
	for _, tc := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.Equal(t, tc.wantStatus, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, tc.wantOK, body["success"])
		require.Equal(t, tc.wantMsg, body["message"])
		require.Equal(t, "req-1", body["request_id"])
		require.EqualValues(t, tc.wantStatus, body["status"])
	}
}
