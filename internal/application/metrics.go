package application

import "expvar"

var (
	bidsAccepted       = expvar.NewInt("bids_accepted")
	bidsRejected       = expvar.NewMap("bids_rejected")
	auctionsSettled    = expvar.NewInt("auctions_settled")
	commissionsCharged = expvar.NewInt("commission_charged_total")
)
