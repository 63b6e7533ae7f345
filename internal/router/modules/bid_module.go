package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	handlers "github.com/oksasatya/auction-marketplace/internal/interface/http"
	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
)

type BidModule struct {
	Handler *handlers.BidHandler
	Auth    gin.HandlerFunc
	RDB     *redis.Client
}

func NewBidModule(h *handlers.BidHandler, auth gin.HandlerFunc, rdb *redis.Client) *BidModule {
	return &BidModule{Handler: h, Auth: auth, RDB: rdb}
}

func (m *BidModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/bid")
	g.Use(m.Auth)
	g.GET("/auction/:id", m.Handler.List)
	g.POST("/place/:id",
		middleware.RequireRole(entity.RoleBidder),
		middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.Place,
	)
}
