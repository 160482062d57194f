package core

import (
	"context"
	"time"

	"keeper/pkg/fixed"
)

// PriceReport a price observation reported by a provider from a data source
type PriceReport struct {
	ID        int64        `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Provider  string       `sql:"size:64;index:idx_price_reports_latest" json:"provider"`
	Source    string       `sql:"size:64;index:idx_price_reports_latest" json:"source"`
	Currency  string       `sql:"size:36;index:idx_price_reports_latest" json:"currency"`
	Round     int64        `sql:"unique_index:idx_price_reports_round" json:"round"`
	Price     fixed.Number `sql:"type:decimal(48,18)" json:"price"`
	TraceID   string       `sql:"size:36;unique_index:idx_price_reports_round" json:"trace_id"`
	CreatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// PriceReportStore price report store interface
type PriceReportStore interface {
	// Create ignores duplicated trace id
	Create(ctx context.Context, report *PriceReport) error
	// Latest back of the observation queue of (provider, source, currency)
	Latest(ctx context.Context, provider, source, currency string) (*PriceReport, bool, error)
}

// PriceTicker price ticker pulled from a data source
type PriceTicker struct {
	Source   string       `json:"source,omitempty"`
	Currency string       `json:"currency,omitempty"`
	Price    fixed.Number `json:"price"`
}

// TickerSource pull price tickers
type TickerSource interface {
	Name() string
	PullPriceTicker(ctx context.Context, currency string, t time.Time) (*PriceTicker, error)
}
