package priceoracle

import (
	"context"
	"testing"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type priceStore struct {
	core.PriceStore
	prices map[string]*core.Price
}

func (s *priceStore) Latest(ctx context.Context, currency string) (*core.Price, error) {
	if p, ok := s.prices[currency]; ok {
		return p, nil
	}

	return nil, core.ErrPriceNotFound
}

func TestGetPrice(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	store := &priceStore{prices: map[string]*core.Price{
		"BTC": {Currency: "BTC", Round: 10, Price: fixed.FromInt(20000), Timestamp: now.Add(-time.Minute)},
		"ETH": {Currency: "ETH", Round: 10, Price: fixed.Zero(), Timestamp: now},
		"XIN": {Currency: "XIN", Round: 2, Price: fixed.FromInt(100), Timestamp: now.Add(-time.Hour)},
	}}

	f := New(store, Config{MaxAge: 10 * time.Minute}).(*feeder)
	f.now = func() time.Time { return now }

	price, err := f.GetPrice(ctx, "BTC")
	require.Nil(t, err)
	assert.Equal(t, "20000", price.String())

	_, err = f.GetPrice(ctx, "ETH")
	assert.ErrorIs(t, err, core.ErrInvalidPrice)

	_, err = f.GetPrice(ctx, "XIN")
	assert.ErrorIs(t, err, core.ErrInvalidPrice)

	_, err = f.GetPrice(ctx, "DOGE")
	assert.ErrorIs(t, err, core.ErrPriceNotFound)

	f.config.MaxAge = 0
	price, err = f.GetPrice(ctx, "XIN")
	require.Nil(t, err)
	assert.Equal(t, "100", price.String())
}
