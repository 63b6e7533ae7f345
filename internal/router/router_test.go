package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/auction-marketplace/config"
	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/container"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
	"github.com/oksasatya/auction-marketplace/pkg/validation"
)

type memImages struct{}

func (memImages) Upload(_ context.Context, prefix string, file application.Upload) (string, error) {
	_, _ = io.Copy(io.Discard, file.Reader)
	return "https://storage.test/" + prefix + "/" + file.Filename, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   map[string]any  `json:"error"`
}

type client struct {
	t      *testing.T
	engine *gin.Engine
}

func (c client) do(method, path string, body io.Reader, contentType, token string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	req := httptest.NewRequest(method, APIPrefix+path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: helpers.TokenCookie, Value: token})
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && !strings.HasSuffix(path, "/debug/vars") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (c client) json(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	b, err := json.Marshal(body)
	require.NoError(c.t, err)
	return c.do(method, path, bytes.NewReader(b), "application/json", token)
}

func (c client) multipart(path string, fields map[string]string, fileField, token string) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	if fileField != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="photo.png"`, fileField))
		h.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(h)
		require.NoError(c.t, err)
		_, _ = part.Write([]byte("png-bytes"))
	}
	require.NoError(c.t, mw.Close())
	return c.do(http.MethodPost, path, &buf, mw.FormDataContentType(), token)
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.TokenCookie {
			require.True(t, ck.HttpOnly)
			return ck.Value
		}
	}
	t.Fatal("no token cookie")
	return ""
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestMarketplaceFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	container.Reset()
	t.Cleanup(container.Reset)

	container.SetConfig(&config.Config{
		JWTSecret:           "test-secret",
		JWTExpire:           time.Hour,
		CookieExpireDays:    7,
		DebugMetricsEnabled: true,
	})
	container.SetStore(memory.NewStore())
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	container.SetLogger(logger)

	s := BuildServices(decimal.RequireFromString("0.05"))
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	s.Auctions.Now, s.Bids.Now, s.Leaderboard.Now, s.Settler.Now = now, now, now, now
	s.Commissions.Images = memImages{}

	engine := gin.New()
	reg := NewRegistry(engine)
	reg.Use(middleware.RequestIDMiddleware())
	InitModules(reg, s)
	reg.RegisterAll()
	c := client{t: t, engine: engine}

	// accounts
	w, env := c.multipart("/user/register", map[string]string{
		"userName": "Olivia", "email": "olivia@example.test", "password": "password123",
		"phone": "03001234567", "address": "Karachi", "role": "Auctioneer",
		"bankAccountNumber": "0001", "bankAccountName": "Olivia", "bankName": "HBL",
	}, "profileImage", "")
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	ownerTok := tokenFrom(t, w)

	w, _ = c.multipart("/user/register", map[string]string{
		"userName": "Bilal", "email": "bilal@example.test", "password": "password123",
		"phone": "03007654321", "address": "Lahore", "role": "Bidder",
	}, "profileImage", "")
	require.Equal(t, http.StatusCreated, w.Code)
	bidderTok := tokenFrom(t, w)

	w, env = c.multipart("/user/register", map[string]string{
		"userName": "Mallory", "email": "mallory@example.test", "password": "password123",
		"phone": "03000000000", "address": "Nowhere", "role": "Super Admin",
	}, "profileImage", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, application.ErrInvalidRole.Error(), env.Message)

	w, env = c.multipart("/user/register", map[string]string{"email": "not-an-email"}, "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "must be a valid email", env.Error["email"])

	// auction
	auctionFields := map[string]string{
		"title": "Vintage camera", "description": "Fully working", "category": "Electronics",
		"condition": "Used", "startingBid": "50",
		"startTime": clock.Add(time.Minute).Format(time.RFC3339),
		"endTime":   clock.Add(time.Hour).Format(time.RFC3339),
	}
	w, _ = c.multipart("/auctionitem/create", auctionFields, "image", bidderTok)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, env = c.multipart("/auctionitem/create", auctionFields, "image", ownerTok)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	created := decode[map[string]any](t, env.Data)
	auctionID := created["id"].(string)
	require.Equal(t, "Upcoming", created["status"])

	w, env = c.multipart("/auctionitem/create", auctionFields, "image", ownerTok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, application.ErrActiveAuctionExists.Error(), env.Message)

	// bidding
	bid := func(tok string, amount int64) (*httptest.ResponseRecorder, envelope) {
		return c.json(http.MethodPost, "/bid/place/"+auctionID, map[string]int64{"amount": amount}, tok)
	}
	w, env = bid(bidderTok, 60)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, application.ErrAuctionNotStarted.Error(), env.Message)

	clock = clock.Add(10 * time.Minute)
	w, _ = bid(bidderTok, 40)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w, env = bid(bidderTok, 0)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, application.ErrInvalidAmount.Error(), env.Message)
	w, _ = bid(bidderTok, 60)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = bid(bidderTok, 55)
	require.Equal(t, http.StatusConflict, w.Code)
	w, _ = bid(ownerTok, 70)
	require.Equal(t, http.StatusForbidden, w.Code)
	w, _ = bid("", 70)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = c.do(http.MethodGet, "/auctionitem/auction/"+auctionID, nil, "", bidderTok)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[map[string]any](t, env.Data)
	require.EqualValues(t, 60, detail["current_bid"])
	require.Equal(t, "Active", detail["status"])
	require.Len(t, detail["bids"], 1)

	w, env = c.do(http.MethodGet, "/auctionitem/active", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = c.do(http.MethodGet, "/auctionitem/search?q=camera", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = c.do(http.MethodDelete, "/auctionitem/delete/"+auctionID, nil, "", ownerTok)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, application.ErrAuctionHasBids.Error(), env.Message)

	clock = clock.Add(2 * time.Hour)
	w, env = bid(bidderTok, 100)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, application.ErrAuctionEnded.Error(), env.Message)
	for _, amount := range []int64{0, -5} {
		w, env = bid(bidderTok, amount)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, application.ErrAuctionEnded.Error(), env.Message, amount)
	}
	w, env = c.json(http.MethodPost, "/bid/place/no-such-auction", map[string]int64{"amount": -5}, bidderTok)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, application.ErrAuctionNotFound.Error(), env.Message)

	// settlement and leaderboard
	n, err := s.Settler.SettleEnded(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)

	w, env = c.do(http.MethodGet, "/user/leaderboard", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[[]map[string]any](t, env.Data)
	require.Len(t, board, 1)
	require.Equal(t, "Bilal", board[0]["user_name"])
	require.EqualValues(t, 60, board[0]["money_spent"])
	require.EqualValues(t, 1, board[0]["auctions_won"])

	w, env = c.do(http.MethodGet, "/user/me", nil, "", ownerTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 3, decode[map[string]any](t, env.Data)["unpaid_commission"])

	// commission review
	w, env = c.multipart("/commission/proof", map[string]string{"amount": "5"}, "proof", ownerTok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, application.ErrProofExceedsUnpaid.Error(), env.Message)

	w, env = c.multipart("/commission/proof", map[string]string{"amount": "3", "comment": "bank transfer"}, "proof", ownerTok)
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	proofID := decode[map[string]any](t, env.Data)["id"].(string)

	created2, err := s.Users.EnsureSuperAdmin(context.Background(), "Admin", "admin@example.test", "changeme123")
	require.NoError(t, err)
	require.True(t, created2)
	w, _ = c.json(http.MethodPost, "/user/login", map[string]string{"email": "admin@example.test", "password": "changeme123", "role": "Super Admin"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	adminTok := tokenFrom(t, w)

	w, _ = c.do(http.MethodGet, "/superadmin/paymentproofs", nil, "", ownerTok)
	require.Equal(t, http.StatusForbidden, w.Code)
	w, env = c.do(http.MethodGet, "/superadmin/paymentproofs", nil, "", adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, _ = c.json(http.MethodPut, "/superadmin/paymentproof/status/"+proofID, map[string]any{"status": "Pending", "amount": 3}, adminTok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = c.json(http.MethodPut, "/superadmin/paymentproof/status/"+proofID, map[string]any{"status": "Approved", "amount": 3}, adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = c.json(http.MethodPut, "/superadmin/paymentproof/status/"+proofID, map[string]any{"status": "Rejected", "amount": 0}, adminTok)
	require.Equal(t, http.StatusConflict, w.Code)

	w, env = c.do(http.MethodGet, "/user/me", nil, "", ownerTok)
	require.Equal(t, http.StatusOK, w.Code)
	require.EqualValues(t, 0, decode[map[string]any](t, env.Data)["unpaid_commission"])

	w, _ = c.do(http.MethodDelete, "/superadmin/auctionitem/delete/"+auctionID, nil, "", adminTok)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = c.do(http.MethodGet, "/auctionitem/auction/"+auctionID, nil, "", bidderTok)
	require.Equal(t, http.StatusNotFound, w.Code)

	// session end
	w, _ = c.do(http.MethodGet, "/user/logout", nil, "", bidderTok)
	require.Equal(t, http.StatusOK, w.Code)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.TokenCookie {
			require.Empty(t, ck.Value)
		}
	}
	w, _ = c.do(http.MethodGet, "/user/me", nil, "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = c.do(http.MethodGet, "/health", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = c.do(http.MethodGet, "/debug/vars", nil, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "bids_accepted")
}
