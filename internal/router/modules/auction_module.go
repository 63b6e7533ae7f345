package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	handlers "github.com/oksasatya/auction-marketplace/internal/interface/http"
	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
)

type AuctionModule struct {
	Handler *handlers.AuctionHandler
	Live    *handlers.LiveHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewAuctionModule(h *handlers.AuctionHandler, live *handlers.LiveHandler, auth gin.HandlerFunc, rdb *redis.Client) *AuctionModule {
	return &AuctionModule{Handler: h, Live: live, Auth: auth, RDB: rdb}
}

func (m *AuctionModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/auctionitem")
	g.GET("/allitems", m.Handler.All)
	g.GET("/active", m.Handler.Active)
	g.GET("/search", searchLimiter, m.Handler.Search)
	g.GET("/auction/:id/live", m.Live.Stream)

	g.GET("/auction/:id", m.Auth, m.Handler.Detail)

	owner := g.Group("/")
	owner.Use(m.Auth, middleware.RequireRole(entity.RoleAuctioneer))
	{
		owner.POST("/create", m.Handler.Create)
		owner.GET("/myitems", m.Handler.Mine)
		owner.DELETE("/delete/:id", m.Handler.Delete)
	}
}
