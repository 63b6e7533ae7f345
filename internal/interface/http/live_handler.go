package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/application"
)

// LiveStreamer upgrades a request into a bid feed for one auction.
type LiveStreamer interface {
	Serve(w http.ResponseWriter, r *http.Request, auctionID string) error
}

type LiveHandler struct {
	Auctions *application.AuctionService
	Hub      LiveStreamer
	Logger   *logrus.Logger
}

func NewLiveHandler(auctions *application.AuctionService, hub LiveStreamer, logger *logrus.Logger) *LiveHandler {
	return &LiveHandler{Auctions: auctions, Hub: hub, Logger: logger}
}

// Stream handles GET /auctionitem/auction/:id/live.
func (h *LiveHandler) Stream(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Auctions.Get(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, "LiveStream", err)
		return
	}
	// the upgrader has already written an HTTP error on failure
	if err := h.Hub.Serve(c.Writer, c.Request, id); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("auction_id", id).Debug("live upgrade failed")
	}
}
