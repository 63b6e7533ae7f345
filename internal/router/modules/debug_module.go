package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
	"github.com/oksasatya/auction-marketplace/pkg/response"
)

// DebugModule serves /health and, when enabled, expvar counters such as
// bids_accepted and auctions_settled.
type DebugModule struct {
	RDB            *redis.Client
	MetricsEnabled bool
}

func NewDebugModule(rdb *redis.Client, metricsEnabled bool) *DebugModule {
	return &DebugModule{RDB: rdb, MetricsEnabled: metricsEnabled}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		response.Success[any](c, http.StatusOK, gin.H{"ok": true}, "healthy", nil)
	})
	if !m.MetricsEnabled {
		return
	}
	// internal scrapers are not limited
	rl := middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
