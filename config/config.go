package config

import (
	"fmt"
	"time"

	"keeper/internal/interest"
	"keeper/pkg/fixed"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cast"
)

// Config keeper config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	Redis       Redis       `json:"redis"`
	Oracle      Oracle      `json:"oracle"`
	Liquidation Liquidation `json:"liquidation"`
	Submitter   Submitter   `json:"submitter"`
	Schedule    Schedule    `json:"schedule"`
}

// App app config
type App struct {
	// unix seconds of block 0
	Genesis         int64  `json:"genesis"`
	SecondsPerBlock int64  `json:"seconds_per_block"`
	BlocksPerYear   uint64 `json:"blocks_per_year"`
	Location        string `json:"location"`
}

// Redis redis config, the in process lock is used if addr is empty
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
}

// Oracle price oracle config
type Oracle struct {
	// data sources read for every provider
	DataSources []string `json:"data_sources"`
	// average or median
	Strategy string `json:"strategy"`
	// prices older than this are rejected, disabled if empty
	MaxPriceAge string `json:"max_price_age"`
	// report prices as this provider, disabled if empty
	Reporter string `json:"reporter"`
	// ticker endpoint used by the reporter
	TickerEndpoint string `json:"ticker_endpoint"`
	// prices older than this are purged, disabled if empty
	Retention string `json:"retention"`
}

// Liquidation liquidation engine config
type Liquidation struct {
	LiquidateFactor string `json:"liquidate_factor"`
	LockTimeout     string `json:"lock_timeout"`
}

// Factor parsed liquidate factor
func (l Liquidation) Factor() fixed.Number {
	return fixed.MustFromString(l.LiquidateFactor)
}

// Submitter transaction submitter config
type Submitter struct {
	Endpoint string   `json:"endpoint"`
	Signers  []string `json:"signers"`
	DryRun   bool     `json:"dry_run"`
}

// Schedule cron specs of workers
type Schedule struct {
	Liquidator  string `json:"liquidator"`
	PriceOracle string `json:"price_oracle"`
	Interest    string `json:"interest"`
	Reporter    string `json:"reporter"`
}

const (
	// StrategyAverage arithmetic mean
	StrategyAverage = "average"
	// StrategyMedian median
	StrategyMedian = "median"
)

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	configUtil.AutomaticLoadEnv("KEEPER")
	if err := configUtil.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultConfig(cfg)
	if err := validate(cfg); err != nil {
		return err
	}

	interest.BlocksPerYear = cfg.App.BlocksPerYear
	return nil
}

func defaultConfig(cfg *Config) {
	if cfg.App.SecondsPerBlock <= 0 {
		cfg.App.SecondsPerBlock = 6
	}

	if cfg.App.BlocksPerYear == 0 {
		cfg.App.BlocksPerYear = interest.DefaultBlocksPerYear
	}

	if cfg.App.Location == "" {
		cfg.App.Location = "UTC"
	}

	if len(cfg.Oracle.DataSources) == 0 {
		cfg.Oracle.DataSources = []string{"default"}
	}

	if cfg.Oracle.Strategy == "" {
		cfg.Oracle.Strategy = StrategyAverage
	}

	if cfg.Liquidation.LiquidateFactor == "" {
		cfg.Liquidation.LiquidateFactor = "0.5"
	}

	if cfg.Liquidation.LockTimeout == "" {
		cfg.Liquidation.LockTimeout = "30s"
	}

	if cfg.Schedule.Liquidator == "" {
		cfg.Schedule.Liquidator = "@every 6s"
	}

	if cfg.Schedule.PriceOracle == "" {
		cfg.Schedule.PriceOracle = "@every 3s"
	}

	if cfg.Schedule.Interest == "" {
		cfg.Schedule.Interest = "@every 30s"
	}

	if cfg.Schedule.Reporter == "" {
		cfg.Schedule.Reporter = "@every 6s"
	}
}

func validate(cfg *Config) error {
	if !govalidator.IsIn(cfg.Oracle.Strategy, StrategyAverage, StrategyMedian) {
		return fmt.Errorf("invalid oracle strategy %q", cfg.Oracle.Strategy)
	}

	factor, err := fixed.NewFromString(cfg.Liquidation.LiquidateFactor)
	if err != nil {
		return fmt.Errorf("invalid liquidate factor %q: %w", cfg.Liquidation.LiquidateFactor, err)
	}

	if factor.IsZero() || factor.GreaterThan(fixed.One()) {
		return fmt.Errorf("liquidate factor %s out of (0, 1]", factor)
	}

	lockTimeout, err := cast.ToDurationE(cfg.Liquidation.LockTimeout)
	if err != nil || lockTimeout <= 0 {
		return fmt.Errorf("invalid lock timeout %q", cfg.Liquidation.LockTimeout)
	}

	for _, d := range []string{cfg.Oracle.MaxPriceAge, cfg.Oracle.Retention} {
		if d == "" {
			continue
		}

		if _, err := cast.ToDurationE(d); err != nil {
			return fmt.Errorf("invalid duration %q: %w", d, err)
		}
	}

	if cfg.Oracle.Reporter != "" && !govalidator.IsURL(cfg.Oracle.TickerEndpoint) {
		return fmt.Errorf("invalid ticker endpoint %q", cfg.Oracle.TickerEndpoint)
	}

	return nil
}

// Duration parse duration string, zero if empty
func Duration(s string) time.Duration {
	return cast.ToDuration(s)
}
