package views

import (
	"keeper/core"
	"keeper/internal/interest"
	"keeper/pkg/fixed"
)

// Market market view
type Market struct {
	*core.Market
	SupplyAPY fixed.Number `json:"supply_apy"`
	BorrowAPY fixed.Number `json:"borrow_apy"`
	Suppliers int64        `json:"suppliers"`
	Borrowers int64        `json:"borrowers"`
}

// MarketView annualize the per block rates, an overflowing rate renders as zero
func MarketView(market *core.Market, suppliers, borrowers int64) *Market {
	view := &Market{
		Market:    market,
		Suppliers: suppliers,
		Borrowers: borrowers,
	}

	view.SupplyAPY, _ = interest.PerYear(market.SupplyRate)
	view.BorrowAPY, _ = interest.PerYear(market.BorrowRate)
	return view
}
