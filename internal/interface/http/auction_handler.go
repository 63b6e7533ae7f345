package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	"github.com/oksasatya/auction-marketplace/pkg/response"
)

type AuctionHandler struct {
	Svc    *application.AuctionService
	Logger *logrus.Logger
}

func NewAuctionHandler(svc *application.AuctionService, logger *logrus.Logger) *AuctionHandler {
	return &AuctionHandler{Svc: svc, Logger: logger}
}

// Presence and ranges are checked by the service so every client gets the
// same messages; binding only parses.
type createAuctionRequest struct {
	Title       string    `form:"title"`
	Description string    `form:"description"`
	Category    string    `form:"category"`
	Condition   string    `form:"condition"`
	StartingBid int64     `form:"startingBid"`
	StartTime   time.Time `form:"startTime" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime     time.Time `form:"endTime" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Create handles POST /auctionitem/create (multipart with image).
func (h *AuctionHandler) Create(c *gin.Context) {
	var req createAuctionRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, h.Logger, "CreateAuction", err)
		return
	}
	img, closer, err := formImage(c, "image")
	if err != nil {
		bindError(c, h.Logger, "CreateAuction", err)
		return
	}
	defer func() { _ = closer.Close() }()

	a, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.CreateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		StartingBid: req.StartingBid,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Image:       img,
	})
	if err != nil {
		writeError(c, h.Logger, "CreateAuction", err)
		return
	}
	view := application.AuctionView{Auction: a, Status: a.StatusAt(h.Svc.Now())}
	response.Success(c, http.StatusCreated, toAuction(view), "auction created", nil)
}

func (h *AuctionHandler) All(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, "AllAuctions", err)
		return
	}
	response.Success(c, http.StatusOK, toAuctions(list), "auctions", gin.H{"count": len(list)})
}

func (h *AuctionHandler) Active(c *gin.Context) {
	list, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, "ActiveAuctions", err)
		return
	}
	response.Success(c, http.StatusOK, toAuctions(list), "active auctions", gin.H{"count": len(list)})
}

func (h *AuctionHandler) Mine(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, "MyAuctions", err)
		return
	}
	response.Success(c, http.StatusOK, toAuctions(list), "my auctions", gin.H{"count": len(list)})
}

// Detail handles GET /auctionitem/auction/:id.
func (h *AuctionHandler) Detail(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, "AuctionDetail", err)
		return
	}
	response.Success(c, http.StatusOK, auctionDetailResponse{
		auctionResponse: toAuction(d.AuctionView),
		Bids:            toBids(d.Bids),
	}, "auction", nil)
}

// Search handles GET /auctionitem/search?q=&size=.
func (h *AuctionHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, "SearchAuctions", err)
		return
	}
	response.Success(c, http.StatusOK, toAuctions(list), "search results", gin.H{"count": len(list)})
}

// Delete serves both the owner route and the Super Admin route; the service
// applies the role rules.
func (h *AuctionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	role := entity.Role(c.GetString("userRole"))
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), role, id); err != nil {
		writeError(c, h.Logger, "DeleteAuction", err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": id}, "auction deleted", nil)
}
