package templates

import (
	"time"

	"github.com/oksasatya/auction-marketplace/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithAuction(id, title, baseURL string) Option {
	return func(d *EmailData) {
		d.AuctionID = id
		d.AuctionTitle = title
		if baseURL != "" {
			d.AuctionURL = baseURL + id
		}
	}
}

func WithAmount(amount int64) Option     { return func(d *EmailData) { d.Amount = amount } }
func WithCommission(amount int64) Option { return func(d *EmailData) { d.Commission = amount } }
func WithRole(role string) Option        { return func(d *EmailData) { d.Role = role } }

// NewBaseEmailData fills the branding fields from config and applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email, role string, opts ...Option) map[string]any {
	opts = append([]Option{WithRole(role)}, opts...)
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

func NewAuctionWonData(cfg *config.Config, name, email, auctionID, title string, amount int64, opts ...Option) map[string]any {
	opts = append([]Option{WithAuction(auctionID, title, cfg.AuctionURL), WithAmount(amount)}, opts...)
	return ToMap(NewBaseEmailData(cfg, AuctionWon, name, email, opts...))
}

func NewAuctionSettledData(cfg *config.Config, name, email, auctionID, title string, amount, commission int64, opts ...Option) map[string]any {
	opts = append([]Option{WithAuction(auctionID, title, cfg.AuctionURL), WithAmount(amount), WithCommission(commission)}, opts...)
	return ToMap(NewBaseEmailData(cfg, AuctionSettled, name, email, opts...))
}

func NewProofStatusData(cfg *config.Config, name, email, proofID, status string, amount, unpaid int64, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, ProofStatus, name, email, append([]Option{WithAmount(amount)}, opts...)...)
	d.ProofID = proofID
	d.ProofStatus = status
	d.Unpaid = unpaid
	return ToMap(d)
}
