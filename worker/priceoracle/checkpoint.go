package priceoracle

import (
	"context"

	"github.com/fox-one/pkg/property"
)

// Checkpoints last aggregated round per currency
type Checkpoints interface {
	Round(ctx context.Context, currency string) (int64, error)
	SaveRound(ctx context.Context, currency string, round int64) error
}

// PropertyCheckpoints checkpoints kept in the property store
func PropertyCheckpoints(store property.Store) Checkpoints {
	return &propertyCheckpoints{store: store}
}

type propertyCheckpoints struct {
	store property.Store
}

func checkpointKey(currency string) string {
	return "price_round:" + currency
}

func (c *propertyCheckpoints) Round(ctx context.Context, currency string) (int64, error) {
	v, err := c.store.Get(ctx, checkpointKey(currency))
	if err != nil {
		return 0, err
	}

	return v.Int64(), nil
}

func (c *propertyCheckpoints) SaveRound(ctx context.Context, currency string, round int64) error {
	return c.store.Save(ctx, checkpointKey(currency), round)
}
