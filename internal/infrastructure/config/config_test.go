package config

import (
	"testing"

	"github.com/erp/pricing/internal/domain/sourcing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should fall back to defaults without a config file", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "pricing-engine", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("should carry the stock scoring weights", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.InDelta(t, 0.40, cfg.Scoring.PriceWeight, 0.001)
		assert.InDelta(t, 0.25, cfg.Scoring.LeadTimeWeight, 0.001)
		assert.InDelta(t, 0.20, cfg.Scoring.ReliabilityWeight, 0.001)
		assert.InDelta(t, 0.15, cfg.Scoring.TrendWeight, 0.001)
		require.NoError(t, cfg.Scoring.Validate())
	})

	t.Run("should honor environment overrides", func(t *testing.T) {
		t.Setenv("PRICING_DATABASE_HOST", "db.internal")
		t.Setenv("PRICING_DATABASE_PORT", "5433")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Name: "pricing-engine", Env: "development"},
			Database: DatabaseConfig{MaxOpenConns: 25, MaxIdleConns: 5},
			Scoring:  sourcing.DefaultScoringConfig(),
		}
	}

	t.Run("should accept a sane configuration", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("should reject idle connections above the open cap", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50

		require.Error(t, cfg.validate())
	})

	t.Run("should reject broken scoring weights", func(t *testing.T) {
		cfg := base()
		cfg.Scoring.PriceWeight = -0.5

		require.Error(t, cfg.validate())
	})

	t.Run("should require a database password in production", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.SSLMode = "require"

		require.Error(t, cfg.validate())
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	t.Run("should escape special characters in credentials", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "app",
			Password: "p@ss:word/1",
			DBName:   "pricing",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()

		assert.Contains(t, dsn, "postgres://")
		assert.Contains(t, dsn, "sslmode=disable")
		assert.NotContains(t, dsn, "p@ss:word/1")
	})
}
