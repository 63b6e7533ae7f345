package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("COOKIE_EXPIRE", "")

	cfg := Load()

	require.Equal(t, "development", cfg.Env)
	require.False(t, cfg.IsProduction())
	require.Equal(t, 7, cfg.CookieExpireDays)
	require.Equal(t, "0.05", cfg.CommissionRate)
	require.Equal(t, time.Minute, cfg.SettlementInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("COOKIE_EXPIRE", "3")
	t.Setenv("SETTLEMENT_INTERVAL", "15s")
	t.Setenv("MAIL_SEND_ENABLED", "false")

	cfg := Load()

	require.True(t, cfg.IsProduction())
	require.Equal(t, 3, cfg.CookieExpireDays)
	require.Equal(t, 15*time.Second, cfg.SettlementInterval)
	require.False(t, cfg.MailSendEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("COOKIE_EXPIRE", "seven")
	t.Setenv("SETTLEMENT_INTERVAL", "soon")
	t.Setenv("HTTP_LOG_ENABLED", "maybe")

	cfg := Load()

	require.Equal(t, 7, cfg.CookieExpireDays)
	require.Equal(t, time.Minute, cfg.SettlementInterval)
	require.False(t, cfg.HTTPLogEnabled)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "auctions", DBSSLMode: "disable"}
	require.Equal(t, "postgres://u:p@db:5433/auctions?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	require.Empty(t, (&Config{}).ESAddrs())
}
