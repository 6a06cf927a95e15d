package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	// Marketplace policy defaults
	assert.True(t, cfg.Marketplace.PlatformFeeRate.Equal(decimal.NewFromFloat(0.05)))
	assert.Equal(t, "first", cfg.Marketplace.ShippingZonePolicy)
	assert.Equal(t, 12, cfg.Marketplace.DefaultPageSize)
	assert.Equal(t, "SAR", cfg.Marketplace.Currency)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SOUQ_DATABASE_HOST", "db.internal")
	t.Setenv("SOUQ_MARKETPLACE_PLATFORM_FEE_RATE", "0.07")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.Marketplace.PlatformFeeRate.Equal(decimal.NewFromFloat(0.07)))
}

func TestValidation(t *testing.T) {
	t.Run("rejects fee rate of one or more", func(t *testing.T) {
		t.Setenv("SOUQ_MARKETPLACE_PLATFORM_FEE_RATE", "1.0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects unknown shipping zone policy", func(t *testing.T) {
		t.Setenv("SOUQ_MARKETPLACE_SHIPPING_ZONE_POLICY", "nearest")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects malformed fee rate", func(t *testing.T) {
		t.Setenv("SOUQ_MARKETPLACE_PLATFORM_FEE_RATE", "five percent")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", DBName: "souqbun", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=souqbun sslmode=disable",
		db.DSN())
}
