package main

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/config"
	"github.com/oksasatya/auction-marketplace/internal/application"
	"github.com/oksasatya/auction-marketplace/internal/container"
	"github.com/oksasatya/auction-marketplace/internal/domain/entity"
	pginfra "github.com/oksasatya/auction-marketplace/internal/infrastructure/postgres"
	"github.com/oksasatya/auction-marketplace/internal/router"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
)

// 1x1 transparent PNG used as a placeholder image.
var placeholderPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func placeholder(name string) *application.Upload {
	return &application.Upload{Reader: bytes.NewReader(placeholderPNG), Filename: name, ContentType: "image/png"}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.MailSendEnabled = false
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetStore(pginfra.NewStore(pool))

	rate, err := application.ParseRate(cfg.CommissionRate)
	if err != nil {
		logger.WithError(err).Fatal("invalid COMMISSION_RATE")
	}
	s := router.BuildServices(rate)

	if _, err := s.Users.EnsureSuperAdmin(ctx, "Super Admin", cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		logger.WithError(err).Fatal("failed to seed super admin")
	}
	logger.WithField("email", cfg.SuperAdminEmail).Info("super admin ensured")

	const password = "password123"
	sess, err := s.Users.Register(ctx, application.RegisterInput{
		UserName: "Demo Auctioneer",
		Email:    "auctioneer@example.com",
		Password: password,
		Phone:    "03001234567",
		Address:  "Demo Street 1",
		Role:     entity.RoleAuctioneer,
		PaymentMethods: entity.PaymentMethods{
			BankAccountNumber: "000123456789",
			BankAccountName:   "Demo Auctioneer",
			BankName:          "Demo Bank",
		},
		ProfileImage: placeholder("auctioneer.png"),
	})
	if errors.Is(err, application.ErrEmailTaken) {
		logger.Info("demo auctioneer already seeded")
		return
	}
	if err != nil {
		logger.WithError(err).Fatal("failed to seed auctioneer")
	}

	if _, err := s.Users.Register(ctx, application.RegisterInput{
		UserName:     "Demo Bidder",
		Email:        "bidder@example.com",
		Password:     password,
		Phone:        "03007654321",
		Address:      "Demo Street 2",
		Role:         entity.RoleBidder,
		ProfileImage: placeholder("bidder.png"),
	}); err != nil && !errors.Is(err, application.ErrEmailTaken) {
		logger.WithError(err).Fatal("failed to seed bidder")
	}

	start := time.Now().Add(time.Minute).Truncate(time.Minute)
	a, err := s.Auctions.Create(ctx, sess.User.ID, application.CreateAuctionInput{
		Title:       "Vintage film camera",
		Description: "35mm rangefinder in working condition",
		Category:    "Electronics",
		Condition:   "Used",
		StartingBid: 100,
		StartTime:   start,
		EndTime:     start.Add(24 * time.Hour),
		Image:       placeholder("camera.png"),
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to seed auction")
	}
	logger.WithFields(logrus.Fields{
		"auctioneer": sess.User.Email,
		"bidder":     "bidder@example.com",
		"password":   password,
		"auction_id": a.ID,
	}).Info("seed complete")
}
