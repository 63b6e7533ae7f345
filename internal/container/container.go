package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/auction-marketplace/config"
	"github.com/oksasatya/auction-marketplace/internal/application"
	repo "github.com/oksasatya/auction-marketplace/internal/domain/repository"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/live"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/objectstore"
	"github.com/oksasatya/auction-marketplace/internal/infrastructure/search"
	"github.com/oksasatya/auction-marketplace/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router wires modules from these singletons. Optional infrastructure
// (Redis, GCS, Elasticsearch, RabbitMQ) may be left unset.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repo.Store
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	rabbitPub   *helpers.RabbitPublisher

	jwtManager *helpers.JWTManager
	cookies    *helpers.Manager
	hub        *live.Hub
)

func SetConfig(c *config.Config)              { cfg = c }
func GetConfig() *config.Config               { return cfg }
func SetLogger(l *logrus.Logger)              { logger = l }
func GetLogger() *logrus.Logger               { return logger }
func SetStore(s repo.Store)                   { store = s }
func GetStore() repo.Store                    { return store }
func SetPGPool(p *pgxpool.Pool)               { pgPool = p }
func GetPGPool() *pgxpool.Pool                { return pgPool }
func SetRedis(r *redis.Client)                { redisClient = r }
func GetRedis() *redis.Client                 { return redisClient }
func SetGCS(s *storage.Client)                { gcsClient = s }
func GetGCS() *storage.Client                 { return gcsClient }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetJWT(m *helpers.JWTManager)            { jwtManager = m }

func GetJWT() *helpers.JWTManager {
	if jwtManager == nil && cfg != nil {
		jwtManager = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTExpire)
	}
	return jwtManager
}

func GetCookies() *helpers.Manager {
	if cookies == nil && cfg != nil {
		cookies = helpers.NewCookie(cfg.CookieDomain, cfg.IsProduction(), cfg.CookieExpireDays)
	}
	return cookies
}

func GetHub() *live.Hub {
	if hub == nil {
		var origins []string
		if cfg != nil {
			origins = cfg.CORSOrigins()
		}
		hub = live.NewHub(logger, origins)
	}
	return hub
}

// The getters below return a nil interface, never a typed nil, when the
// backing client is not configured.

func GetImageStore() application.ImageStore {
	if gcsClient == nil || cfg == nil || cfg.GCSBucket == "" {
		return nil
	}
	return objectstore.NewGCS(gcsClient, cfg.GCSBucket, logger)
}

func GetAuctionIndex() application.AuctionIndex {
	if esClient == nil || cfg == nil || cfg.ESAuctionsIndex == "" {
		return nil
	}
	return search.NewAuctionIndex(esClient, cfg.ESAuctionsIndex, logger)
}

func GetPublisher() application.JobPublisher {
	if rabbitPub == nil {
		return nil
	}
	return rabbitPub
}

func GetMail() *application.Mail {
	return &application.Mail{Pub: GetPublisher(), Cfg: cfg, Logger: logger}
}

// Reset clears every singleton.
func Reset() {
	cfg, logger, store, pgPool = nil, nil, nil, nil
	redisClient, gcsClient, esClient, rabbitPub = nil, nil, nil, nil
	jwtManager, cookies, hub = nil, nil, nil
}
