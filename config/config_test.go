package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	var cfg Config
	defaultConfig(&cfg)

	assert.Equal(t, int64(6), cfg.App.SecondsPerBlock)
	assert.Equal(t, uint64(5256000), cfg.App.BlocksPerYear)
	assert.Equal(t, StrategyAverage, cfg.Oracle.Strategy)
	assert.Equal(t, "0.5", cfg.Liquidation.Factor().String())
	assert.Equal(t, 30*time.Second, Duration(cfg.Liquidation.LockTimeout))
	assert.Equal(t, []string{"default"}, cfg.Oracle.DataSources)
	require.Nil(t, validate(&cfg))
}

func TestValidate(t *testing.T) {
	var cfg Config
	defaultConfig(&cfg)

	cfg.Oracle.Strategy = "mode"
	assert.NotNil(t, validate(&cfg))

	cfg.Oracle.Strategy = StrategyMedian
	cfg.Liquidation.LiquidateFactor = "1.1"
	assert.NotNil(t, validate(&cfg))

	cfg.Liquidation.LiquidateFactor = "-0.5"
	assert.NotNil(t, validate(&cfg))

	cfg.Liquidation.LiquidateFactor = "1"
	cfg.Oracle.MaxPriceAge = "ten minutes"
	assert.NotNil(t, validate(&cfg))

	cfg.Oracle.MaxPriceAge = "10m"
	cfg.Oracle.Reporter = "keeper"
	assert.NotNil(t, validate(&cfg))

	cfg.Oracle.TickerEndpoint = "https://prices.example.com"
	assert.Nil(t, validate(&cfg))
}

func TestValidateLiquidation(t *testing.T) {
	var cfg Config
	defaultConfig(&cfg)

	cfg.Liquidation.LiquidateFactor = "0"
	assert.NotNil(t, validate(&cfg))

	cfg.Liquidation.LiquidateFactor = "0.5"
	for _, timeout := range []string{"0s", "-5s", "soon"} {
		cfg.Liquidation.LockTimeout = timeout
		assert.NotNil(t, validate(&cfg), timeout)
	}

	cfg.Liquidation.LockTimeout = "1s"
	assert.Nil(t, validate(&cfg))
}
