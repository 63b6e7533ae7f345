package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/internal/application"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
	"github.com/oksasatya/auction-marketplace/pkg/response"
	"github.com/oksasatya/auction-marketplace/pkg/validation"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{application.ErrAuctionNotFound, http.StatusNotFound},
	{application.ErrUserNotFound, http.StatusNotFound},
	{application.ErrProofNotFound, http.StatusNotFound},

	{application.ErrAuctionNotStarted, http.StatusBadRequest},
	{application.ErrAuctionEnded, http.StatusBadRequest},
	{application.ErrInvalidAmount, http.StatusBadRequest},
	{application.ErrBelowStartingBid, http.StatusBadRequest},
	{application.ErrBidTooLow, http.StatusConflict},
	{application.ErrSelfBidding, http.StatusForbidden},

	{application.ErrInvalidWindow, http.StatusBadRequest},
	{application.ErrStartInPast, http.StatusBadRequest},
	{application.ErrInvalidCondition, http.StatusBadRequest},
	{application.ErrMissingField, http.StatusBadRequest},
	{application.ErrUnpaidCommission, http.StatusForbidden},
	{application.ErrActiveAuctionExists, http.StatusBadRequest},
	{application.ErrAuctionHasBids, http.StatusConflict},

	{application.ErrInvalidCredentials, http.StatusUnauthorized},
	{application.ErrEmailTaken, http.StatusConflict},
	{application.ErrInvalidRole, http.StatusBadRequest},
	{application.ErrPaymentDetails, http.StatusBadRequest},
	{application.ErrForbidden, http.StatusForbidden},

	{application.ErrNoUnpaidCommission, http.StatusBadRequest},
	{application.ErrProofExceedsUnpaid, http.StatusBadRequest},
	{application.ErrProofResolved, http.StatusConflict},
	{application.ErrInvalidStatus, http.StatusBadRequest},

	{application.ErrImageRequired, http.StatusBadRequest},
	{application.ErrUnsupportedImage, http.StatusBadRequest},
	{application.ErrStorageDisabled, http.StatusServiceUnavailable},
}

// MapErrorToHTTP maps service errors to an HTTP status and a client-safe message.
func MapErrorToHTTP(err error) (int, string) {
	for _, m := range statusBySentinel {
		if errors.Is(err, m.err) {
			return m.status, m.err.Error()
		}
	}
	if errors.Is(err, repo.ErrUnavailable) {
		return http.StatusServiceUnavailable, "service temporarily unavailable, please retry"
	}
	return http.StatusInternalServerError, "internal server error, please retry"
}

// writeError responds with the mapped status. Only server-side failures are
// logged at error level; rejected input is routine.
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	status, msg := MapErrorToHTTP(err)
	if logger != nil {
		fields := logrus.Fields{
			"handler":    op,
			"request_id": c.GetString("request_id"),
			"user_id":    c.GetString("userID"),
			"status":     status,
		}
		if status >= http.StatusInternalServerError {
			helpers.LogError(logger, op+" failed", err, fields)
		} else {
			logger.WithFields(fields).WithError(err).Debug(op + " rejected")
		}
	}
	response.Error[any](c, status, msg, nil)
}

func bindError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	if logger != nil {
		logger.WithError(err).WithField("handler", op).Debug("binding error")
	}
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
