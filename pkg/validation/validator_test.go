package validation

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type statusBody struct {
	Status string `json:"status" binding:"required,proofstatus"`
	Amount int64  `json:"amount" binding:"price"`
}

func bind[T any](t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	var dst T
	return ToDetails(c.ShouldBindJSON(&dst))
}

func TestToDetails(t *testing.T) {
	Init()
	Init() // idempotent

	tests := []struct {
		name string
		got  map[string]string
		want map[string]string
	}{
		{"valid", bind[loginBody](t, `{"email":"a@b.test","password":"password1","role":"Super Admin"}`), nil},
		{"bad json", bind[loginBody](t, `{"email": nope}`), map[string]string{"payload": "invalid json"}},
		{"field errors", bind[loginBody](t, `{"email":"nope","password":"short","role":"Admin"}`), map[string]string{
			"email":    "must be a valid email",
			"password": "min length 8",
			"role":     "must be one of: Bidder, Auctioneer, Super Admin",
		}},
		{"proof status", bind[statusBody](t, `{"status":"Pending","amount":0}`), map[string]string{
			"status": "must be one of: Approved, Rejected, Settled",
			"amount": "must be a positive whole amount",
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.got)
		})
	}
}
