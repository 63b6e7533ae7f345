package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/pkg/response"
)

//go:generate mockgen -source=bid_handler.go -destination=mock_bid_service.go -package=handlers

// BidService is the part of the bid service the HTTP layer needs.
type BidService interface {
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (*entity.Bid, error)
	ListBids(ctx context.Context, auctionID string) ([]*entity.Bid, error)
}

type BidHandler struct {
	Svc    BidService
	Logger *logrus.Logger
}

func NewBidHandler(svc BidService, logger *logrus.Logger) *BidHandler {
	return &BidHandler{Svc: svc, Logger: logger}
}

// Amount is only type-checked here; its value is judged by PlaceBid after
// the auction's existence and lifecycle.
type placeBidRequest struct {
	Amount *int64 `json:"amount" form:"amount" binding:"required"`
}

// Place handles POST /bid/place/:id with a JSON or form body.
func (h *BidHandler) Place(c *gin.Context) {
	var req placeBidRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, h.Logger, "PlaceBid", err)
		return
	}
	b, err := h.Svc.PlaceBid(c.Request.Context(), c.Param("id"), c.GetString("userID"), *req.Amount)
	if err != nil {
		writeError(c, h.Logger, "PlaceBid", err)
		return
	}
	response.Success(c, http.StatusCreated, toBid(b), "bid placed", nil)
}

// List handles GET /bid/auction/:id.
func (h *BidHandler) List(c *gin.Context) {
	bids, err := h.Svc.ListBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, "ListBids", err)
		return
	}
	response.Success(c, http.StatusOK, toBids(bids), "bids", gin.H{"count": len(bids)})
}
