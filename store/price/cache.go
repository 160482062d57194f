package price

import (
	"context"
	"fmt"
	"time"

	"keeper/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache cache prices by round, rounds never change once aggregated
func Cache(store core.PriceStore, exp time.Duration) core.PriceStore {
	builder := gcache.New(2048).LRU()
	if exp > 0 {
		builder = builder.Expiration(exp)
	}

	return &cachePriceStore{
		PriceStore: store,
		cache:      builder.Build(),
		sf:         &singleflight.Group{},
	}
}

type cachePriceStore struct {
	core.PriceStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePriceStore) Create(ctx context.Context, price *core.Price) error {
	if err := s.PriceStore.Create(ctx, price); err != nil {
		return err
	}

	s.cache.Remove(s.roundKey(price.Currency, price.Round))
	return nil
}

func (s *cachePriceStore) FindByRound(ctx context.Context, currency string, round int64) (*core.Price, error) {
	key := s.roundKey(currency, round)
	if v, err := s.cache.Get(key); err == nil {
		if price, ok := v.(*core.Price); ok {
			return price, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		price, err := s.PriceStore.FindByRound(ctx, currency, round)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, price)
		return price, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Price), nil
}

func (s *cachePriceStore) DeleteBefore(ctx context.Context, t time.Time) error {
	if err := s.PriceStore.DeleteBefore(ctx, t); err != nil {
		return err
	}

	s.cache.Purge()
	return nil
}

func (s *cachePriceStore) roundKey(currency string, round int64) string {
	return fmt.Sprintf("price:%s:%d", currency, round)
}
