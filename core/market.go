package core

import (
	"context"
	"database/sql"
	"time"

	"keeper/pkg/fixed"
)

// Market market parameters and pool position of a currency
type Market struct {
	ID       uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Currency string `sql:"size:36;unique_index:market_currency_idx" json:"currency"`
	// pool position
	TotalCash     fixed.Number `sql:"type:decimal(48,18)" json:"total_cash"`
	TotalBorrows  fixed.Number `sql:"type:decimal(48,18)" json:"total_borrows"`
	TotalReserves fixed.Number `sql:"type:decimal(48,18)" json:"total_reserves"`
	// voucher supply
	TotalShares fixed.Number `sql:"type:decimal(48,18)" json:"total_shares"`
	BorrowIndex fixed.Number `sql:"type:decimal(48,18)" json:"borrow_index"`
	// underlying per voucher, zero until first calculated
	ExchangeRate     fixed.Number `sql:"type:decimal(48,18)" json:"exchange_rate"`
	CollateralFactor fixed.Number `sql:"type:decimal(48,18)" json:"collateral_factor"`
	ReserveFactor    fixed.Number `sql:"type:decimal(48,18)" json:"reserve_factor"`
	// jump rate model, per year
	BaseRatePerYear       fixed.Number `sql:"type:decimal(48,18)" json:"base_rate_per_year"`
	MultiplierPerYear     fixed.Number `sql:"type:decimal(48,18)" json:"multiplier_per_year"`
	JumpMultiplierPerYear fixed.Number `sql:"type:decimal(48,18)" json:"jump_multiplier_per_year"`
	Kink                  fixed.Number `sql:"type:decimal(48,18)" json:"kink"`
	// jump rate model, per block
	BaseRatePerBlock       fixed.Number `sql:"type:decimal(48,18)" json:"base_rate_per_block"`
	MultiplierPerBlock     fixed.Number `sql:"type:decimal(48,18)" json:"multiplier_per_block"`
	JumpMultiplierPerBlock fixed.Number `sql:"type:decimal(48,18)" json:"jump_multiplier_per_block"`
	RateModelAt            sql.NullTime `json:"rate_model_at"`
	// current rates, per block
	UtilizationRate fixed.Number `sql:"type:decimal(48,18)" json:"utilization_rate"`
	BorrowRate      fixed.Number `sql:"type:decimal(48,18)" json:"borrow_rate"`
	SupplyRate      fixed.Number `sql:"type:decimal(48,18)" json:"supply_rate"`
	Version         int64        `sql:"default:0" json:"version"`
	CreatedAt       time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// HasRateModel the jump rate model has been configured
func (m *Market) HasRateModel() bool {
	return m.RateModelAt.Valid
}

// RateModel per block parameters of the jump rate model
type RateModel struct {
	BaseRatePerYear        fixed.Number
	MultiplierPerYear      fixed.Number
	JumpMultiplierPerYear  fixed.Number
	Kink                   fixed.Number
	BaseRatePerBlock       fixed.Number
	MultiplierPerBlock     fixed.Number
	JumpMultiplierPerBlock fixed.Number
}

// Rates current rates of a market
type Rates struct {
	UtilizationRate *fixed.Number
	BorrowRate      *fixed.Number
	SupplyRate      *fixed.Number
	ExchangeRate    *fixed.Number
}

// MarketStore market store interface
type MarketStore interface {
	Create(ctx context.Context, market *Market) error
	// Find returns ErrMarketNotFound if the currency is not listed
	Find(ctx context.Context, currency string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	// UpdateRateModel store the jump rate model and stamp rate_model_at
	UpdateRateModel(ctx context.Context, market *Market, model RateModel, at time.Time) error
	// UpdateRates store the non-nil rates in one statement
	UpdateRates(ctx context.Context, market *Market, rates Rates) error
}

// RateService interest rate model
type RateService interface {
	UpdateJumpRateModel(ctx context.Context, currency string, baseRatePerYear, multiplierPerYear, jumpMultiplierPerYear, kink fixed.Number) error
	UpdateBorrowRate(ctx context.Context, currency string, cash, borrows, reserves fixed.Number) error
	UpdateSupplyRate(ctx context.Context, currency string, cash, borrows, reserves, reserveFactor fixed.Number) error
	CalcExchangeRate(ctx context.Context, currency string) (fixed.Number, error)
}
