package interest

import (
	"fmt"

	"keeper/core"
	"keeper/pkg/fixed"
)

// DefaultBlocksPerYear 6s per block
const DefaultBlocksPerYear uint64 = 5256000

// BlocksPerYear blocks per year, only changed from config at startup
var BlocksPerYear = DefaultBlocksPerYear

func overflow(err error) error {
	return fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
}

// UtilizationRate utilization rate
// utilization_rate = borrows / (cash + borrows - reserves)
func UtilizationRate(cash, borrows, reserves fixed.Number) (fixed.Number, error) {
	if borrows.IsZero() {
		return fixed.Zero(), nil
	}

	total, err := cash.Add(borrows)
	if err != nil {
		return fixed.Zero(), overflow(err)
	}

	total, err = total.Sub(reserves)
	if err != nil {
		return fixed.Zero(), overflow(err)
	}

	rate, err := borrows.Div(total)
	if err != nil {
		return fixed.Zero(), overflow(err)
	}

	return rate, nil
}

// JumpRateModel convert per year parameters to per block
func JumpRateModel(baseRatePerYear, multiplierPerYear, jumpMultiplierPerYear, kink fixed.Number) (core.RateModel, error) {
	model := core.RateModel{
		BaseRatePerYear:       baseRatePerYear,
		MultiplierPerYear:     multiplierPerYear,
		JumpMultiplierPerYear: jumpMultiplierPerYear,
		Kink:                  kink,
	}

	var err error
	if model.BaseRatePerBlock, err = baseRatePerYear.DivInt(BlocksPerYear); err != nil {
		return model, err
	}

	// multiplier_per_block = multiplier / (blocks_per_year * kink)
	blocksTimesKink, err := kink.MulInt(BlocksPerYear)
	if err != nil {
		return model, err
	}
	if model.MultiplierPerBlock, err = multiplierPerYear.Div(blocksTimesKink); err != nil {
		return model, err
	}

	if model.JumpMultiplierPerBlock, err = jumpMultiplierPerYear.DivInt(BlocksPerYear); err != nil {
		return model, err
	}

	return model, nil
}

// BorrowRate two segment borrow rate curve
//
//	util <= kink: base + util * multiplier
//	util > kink:  base + kink * multiplier + (util - kink) * jump
func BorrowRate(utilizationRate, baseRate, multiplier, jumpMultiplier, kink fixed.Number) (fixed.Number, error) {
	if !utilizationRate.GreaterThan(kink) {
		rate, err := utilizationRate.Mul(multiplier)
		if err != nil {
			return fixed.Zero(), err
		}

		return rate.Add(baseRate)
	}

	normalRate, err := kink.Mul(multiplier)
	if err != nil {
		return fixed.Zero(), err
	}
	if normalRate, err = normalRate.Add(baseRate); err != nil {
		return fixed.Zero(), err
	}

	excessUtil, err := utilizationRate.Sub(kink)
	if err != nil {
		return fixed.Zero(), err
	}

	excessRate, err := excessUtil.Mul(jumpMultiplier)
	if err != nil {
		return fixed.Zero(), err
	}

	return normalRate.Add(excessRate)
}

// SupplyRate supply rate
// supply_rate = utilization_rate * borrow_rate * (1 - reserve_factor)
func SupplyRate(utilizationRate, borrowRate, reserveFactor fixed.Number) (fixed.Number, error) {
	rateToPool, err := borrowRate.Mul(fixed.One().SaturatingSub(reserveFactor))
	if err != nil {
		return fixed.Zero(), err
	}

	return utilizationRate.Mul(rateToPool)
}

// ExchangeRate underlying per voucher
// exchange_rate = (cash + borrows) / shares
func ExchangeRate(cash, borrows, shares fixed.Number) (fixed.Number, error) {
	total, err := cash.Add(borrows)
	if err != nil {
		return fixed.Zero(), fmt.Errorf("%w: %v", core.ErrCalcAccrueInterestFailed, err)
	}

	rate, err := total.Div(shares)
	if err != nil {
		return fixed.Zero(), fmt.Errorf("%w: %v", core.ErrCalcExchangeRateFailed, err)
	}

	return rate, nil
}

// BorrowBalance current borrow balance
// balance = principal * market.borrow_index / borrow.interest_index
func BorrowBalance(principal, borrowIndex, interestIndex fixed.Number) (fixed.Number, error) {
	if principal.IsZero() {
		return fixed.Zero(), nil
	}

	if interestIndex.IsZero() || borrowIndex.IsZero() {
		return principal, nil
	}

	principalTimesIndex, err := principal.Mul(borrowIndex)
	if err != nil {
		return fixed.Zero(), err
	}

	return principalTimesIndex.Div(interestIndex)
}

// PerYear annualize a per block rate
func PerYear(ratePerBlock fixed.Number) (fixed.Number, error) {
	return ratePerBlock.MulInt(BlocksPerYear)
}
