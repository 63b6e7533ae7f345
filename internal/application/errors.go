package application

import "errors"

var (
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrAuctionNotStarted = errors.New("auction has not started yet")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrBelowStartingBid  = errors.New("bid amount must be at least the starting bid")
	ErrBidTooLow         = errors.New("bid amount must be greater than the current highest bid")
	ErrSelfBidding       = errors.New("auctioneers cannot bid on their own auction")

	ErrInvalidWindow       = errors.New("auction end time must be after its start time")
	ErrStartInPast         = errors.New("auction start time must not be in the past")
	ErrInvalidCondition    = errors.New("unknown item condition")
	ErrMissingField        = errors.New("required field missing")
	ErrUnpaidCommission    = errors.New("unpaid commission must be settled before creating a new auction")
	ErrActiveAuctionExists = errors.New("you already have an auction that has not ended")
	ErrAuctionHasBids      = errors.New("auction already has bids")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPaymentDetails     = errors.New("bank transfer details are required for auctioneers")
	ErrForbidden          = errors.New("forbidden")

	ErrNoUnpaidCommission = errors.New("no unpaid commission")
	ErrProofExceedsUnpaid = errors.New("amount exceeds unpaid commission")
	ErrProofNotFound      = errors.New("commission proof not found")
	ErrProofResolved      = errors.New("commission proof already resolved")
	ErrInvalidStatus      = errors.New("invalid proof status")

	ErrImageRequired    = errors.New("image is required")
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrStorageDisabled  = errors.New("object storage not configured")
)
