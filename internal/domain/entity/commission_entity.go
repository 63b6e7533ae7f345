package entity

import "time"

type ProofStatus string

const (
	ProofPending  ProofStatus = "Pending"
	ProofApproved ProofStatus = "Approved"
	ProofRejected ProofStatus = "Rejected"
	ProofSettled  ProofStatus = "Settled"
)

func (s ProofStatus) Valid() bool {
	switch s {
	case ProofPending, ProofApproved, ProofRejected, ProofSettled:
		return true
	}
	return false
}

// CommissionProof is an auctioneer's evidence of a commission payment.
type CommissionProof struct {
	ID        string
	UserID    string
	Amount    int64
	ProofURL  string
	Comment   string
	Status    ProofStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
