package price

import (
	"context"
	"testing"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPriceStore struct {
	prices map[string]*core.Price
	finds  int
}

func (s *memoryPriceStore) Create(ctx context.Context, price *core.Price) error {
	s.prices[price.Currency] = price
	return nil
}

func (s *memoryPriceStore) FindByRound(ctx context.Context, currency string, round int64) (*core.Price, error) {
	s.finds++
	if p, ok := s.prices[currency]; ok && p.Round == round {
		return p, nil
	}

	return nil, core.ErrPriceNotFound
}

func (s *memoryPriceStore) Latest(ctx context.Context, currency string) (*core.Price, error) {
	if p, ok := s.prices[currency]; ok {
		return p, nil
	}

	return nil, core.ErrPriceNotFound
}

func (s *memoryPriceStore) DeleteBefore(ctx context.Context, t time.Time) error {
	s.prices = map[string]*core.Price{}
	return nil
}

func TestCacheFindByRound(t *testing.T) {
	ctx := context.Background()
	mem := &memoryPriceStore{prices: map[string]*core.Price{}}
	store := Cache(mem, time.Minute)

	_, err := store.FindByRound(ctx, "BTC", 1)
	assert.ErrorIs(t, err, core.ErrPriceNotFound)

	require.Nil(t, store.Create(ctx, &core.Price{Currency: "BTC", Round: 1, Price: fixed.FromInt(100)}))

	for i := 0; i < 3; i++ {
		p, err := store.FindByRound(ctx, "BTC", 1)
		require.Nil(t, err)
		assert.Equal(t, "100", p.Price.String())
	}

	assert.Equal(t, 2, mem.finds, "not found results are not cached, found results are")

	require.Nil(t, store.DeleteBefore(ctx, time.Now()))
	_, err = store.FindByRound(ctx, "BTC", 1)
	assert.ErrorIs(t, err, core.ErrPriceNotFound)
}
