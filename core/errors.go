package core

import (
	"errors"
	"strconv"
)

var (
	// ErrLockUnavailable the liquidation lock is held by another keeper
	ErrLockUnavailable = errors.New("lock unavailable")
	// ErrNoSignerAvailable no signer can submit transactions
	ErrNoSignerAvailable = errors.New("no signer available")

	// ErrArithmeticOverflow checked arithmetic failed
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrRateComputationFailed rate model computation failed
	ErrRateComputationFailed = errors.New("rate computation failed")
	// ErrCalcExchangeRateFailed exchange rate undefined or out of range
	ErrCalcExchangeRateFailed = errors.New("calc exchange rate failed")
	// ErrCalcAccrueInterestFailed cash plus borrows out of range
	ErrCalcAccrueInterestFailed = errors.New("calc accrue interest failed")
	// ErrRateModelNotSet jump rate model never configured for the market
	ErrRateModelNotSet = errors.New("rate model not set")

	// ErrEmptyPriceSet no observation matched the round
	ErrEmptyPriceSet = errors.New("empty price set")
	// ErrPriceNotFound no aggregated price for the currency
	ErrPriceNotFound = errors.New("price not found")
	// ErrInvalidPrice zero or stale price
	ErrInvalidPrice = errors.New("invalid price")

	// ErrMarketNotFound no market for the currency
	ErrMarketNotFound = errors.New("market not found")
	// ErrOptimisticLock record changed since it was read
	ErrOptimisticLock = errors.New("optimistic lock")
)

// ErrorCode int
type ErrorCode int

const (
	// ErrCodeUnknown unknown
	ErrCodeUnknown ErrorCode = 100000
	// ErrCodeInvalidArgument invalid argument
	ErrCodeInvalidArgument ErrorCode = 100001

	// ErrCodeMarketNotFound no market
	ErrCodeMarketNotFound ErrorCode = 100100
	// ErrCodePriceNotFound no price
	ErrCodePriceNotFound ErrorCode = 100101
	// ErrCodeInvalidPrice invalid price
	ErrCodeInvalidPrice ErrorCode = 100102
	// ErrCodeRateModelNotSet rate model not set
	ErrCodeRateModelNotSet ErrorCode = 100103
	// ErrCodeComputation numeric failure
	ErrCodeComputation ErrorCode = 100104
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// CodeOf map err to error code
func CodeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrMarketNotFound):
		return ErrCodeMarketNotFound
	case errors.Is(err, ErrPriceNotFound), errors.Is(err, ErrEmptyPriceSet):
		return ErrCodePriceNotFound
	case errors.Is(err, ErrInvalidPrice):
		return ErrCodeInvalidPrice
	case errors.Is(err, ErrRateModelNotSet):
		return ErrCodeRateModelNotSet
	case errors.Is(err, ErrArithmeticOverflow),
		errors.Is(err, ErrRateComputationFailed),
		errors.Is(err, ErrCalcExchangeRateFailed),
		errors.Is(err, ErrCalcAccrueInterestFailed):
		return ErrCodeComputation
	default:
		return ErrCodeUnknown
	}
}
