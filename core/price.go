package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"

	"keeper/pkg/fixed"
)

// Price aggregated price of a currency in a round
type Price struct {
	ID        int64        `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Currency  string       `sql:"size:36;unique_index:idx_prices" json:"currency,omitempty"`
	Round     int64        `sql:"default:0;unique_index:idx_prices" json:"round,omitempty"`
	Price     fixed.Number `sql:"type:decimal(48,18)" json:"price"`
	Timestamp time.Time    `json:"timestamp"`
	// accepted observations
	Content   types.JSONText `sql:"type:text" json:"content,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// PriceStore price store interface
type PriceStore interface {
	// Create ignores duplicated (currency, round)
	Create(ctx context.Context, price *Price) error
	FindByRound(ctx context.Context, currency string, round int64) (*Price, error)
	// Latest returns ErrPriceNotFound if the currency was never priced
	Latest(ctx context.Context, currency string) (*Price, error)
	DeleteBefore(ctx context.Context, t time.Time) error
}

// PriceFeeder price capability used for valuation
type PriceFeeder interface {
	GetPrice(ctx context.Context, currency string) (fixed.Number, error)
}

// PriceAggregator reduce observations of a round into one price
type PriceAggregator interface {
	Aggregate(ctx context.Context, round int64, providers []string, currency string) (*Price, error)
}
