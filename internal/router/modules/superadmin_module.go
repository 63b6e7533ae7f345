package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	handlers "github.com/oksasatya/auction-marketplace/internal/interface/http"
	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
)

// SuperAdminModule holds the review and moderation routes.
type SuperAdminModule struct {
	Commissions *handlers.CommissionHandler
	Auctions    *handlers.AuctionHandler
	Auth        gin.HandlerFunc
}

func NewSuperAdminModule(c *handlers.CommissionHandler, a *handlers.AuctionHandler, auth gin.HandlerFunc) *SuperAdminModule {
	return &SuperAdminModule{Commissions: c, Auctions: a, Auth: auth}
}

func (m *SuperAdminModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/superadmin")
	g.Use(m.Auth, middleware.RequireRole(entity.RoleSuperAdmin))
	g.GET("/paymentproofs", m.Commissions.AllProofs)
	g.PUT("/paymentproof/status/:id", m.Commissions.UpdateStatus)
	g.DELETE("/auctionitem/delete/:id", m.Auctions.Delete)
}
