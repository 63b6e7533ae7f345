package router

import (
	"github.com/shopspring/decimal"

	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/container"
	handlers "github.com/oksasatya/auction-marketplace/internal/interface/http"
	"github.com/oksasatya/auction-marketplace/internal/interface/middleware"
	"github.com/oksasatya/auction-marketplace/internal/router/modules"
)

// Services are the application services shared by HTTP modules and the
// background settler.
type Services struct {
	Users       *application.UserService
	Auctions    *application.AuctionService
	Bids        *application.BidService
	Commissions *application.CommissionService
	Leaderboard *application.LeaderboardService
	Settler     *application.Settler
}

// BuildServices constructs services from the container singletons.
func BuildServices(rate decimal.Decimal) *Services {
	cfg := container.GetConfig()
	store := container.GetStore()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	images := container.GetImageStore()
	mail := container.GetMail()

	lb := application.NewLeaderboardService(store, rdb, cfg.LeaderboardTTL, logger)
	return &Services{
		Users:       application.NewUserService(store, container.GetJWT(), images, rdb, logger, mail),
		Auctions:    application.NewAuctionService(store, images, container.GetAuctionIndex(), logger),
		Bids:        application.NewBidService(store, container.GetHub(), logger),
		Commissions: application.NewCommissionService(store, images, logger, mail),
		Leaderboard: lb,
		Settler:     application.NewSettler(store, rate, lb, logger, mail),
	}
}

// InitModules builds handlers for s and registers every module with r.
// Call once during startup.
func InitModules(r *Registry, s *Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	auth := middleware.Auth(rdb, container.GetJWT(), logger)

	users := handlers.NewUserHandler(s.Users, s.Leaderboard, container.GetCookies(), logger)
	auctions := handlers.NewAuctionHandler(s.Auctions, logger)
	bids := handlers.NewBidHandler(s.Bids, logger)
	commissions := handlers.NewCommissionHandler(s.Commissions, logger)
	live := handlers.NewLiveHandler(s.Auctions, container.GetHub(), logger)

	r.Add(modules.NewUserModule(users, auth, rdb))
	r.Add(modules.NewAuctionModule(auctions, live, auth, rdb))
	r.Add(modules.NewBidModule(bids, auth, rdb))
	r.Add(modules.NewCommissionModule(commissions, auth))
	r.Add(modules.NewSuperAdminModule(commissions, auctions, auth))
	r.Add(modules.NewDebugModule(rdb, cfg.DebugMetricsEnabled))
}
