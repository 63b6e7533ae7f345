package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	handlers "github.com/oksasatya/auction-marketplace/internal/interface/http"
	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
)

type CommissionModule struct {
	Handler *handlers.CommissionHandler
	Auth    gin.HandlerFunc
}

func NewCommissionModule(h *handlers.CommissionHandler, auth gin.HandlerFunc) *CommissionModule {
	return &CommissionModule{Handler: h, Auth: auth}
}

func (m *CommissionModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/commission")
	g.Use(m.Auth, middleware.RequireRole(entity.RoleAuctioneer))
	g.POST("/proof", m.Handler.SubmitProof)
	g.GET("/proofs", m.Handler.MyProofs)
}
