package priceoracle

import (
	"context"
	"fmt"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"
)

// Config price feeder config
type Config struct {
	// reject prices aggregated longer ago, zero disables the check
	MaxAge time.Duration
}

type feeder struct {
	prices core.PriceStore
	config Config
	now    func() time.Time
}

// New price feeder backed by aggregated prices
func New(prices core.PriceStore, cfg Config) core.PriceFeeder {
	return &feeder{
		prices: prices,
		config: cfg,
		now:    time.Now,
	}
}

// GetPrice latest aggregated price of the currency
func (f *feeder) GetPrice(ctx context.Context, currency string) (fixed.Number, error) {
	price, err := f.prices.Latest(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	if price.Price.IsZero() {
		return fixed.Zero(), fmt.Errorf("%w: zero price of %s", core.ErrInvalidPrice, currency)
	}

	if f.config.MaxAge > 0 && f.now().Sub(price.Timestamp) > f.config.MaxAge {
		return fixed.Zero(), fmt.Errorf("%w: %s price of round %d is stale", core.ErrInvalidPrice, currency, price.Round)
	}

	return price.Price, nil
}
