package core

import (
	"context"
	"time"

	"keeper/pkg/fixed"
)

// Liquidation liquidate borrow action
type Liquidation struct {
	Borrower           string       `json:"borrower"`
	LoanCurrency       string       `json:"loan_currency"`
	RepayAmount        fixed.Number `json:"repay_amount"`
	CollateralCurrency string       `json:"collateral_currency"`
}

// ValuationDetail value of one currency position
type ValuationDetail struct {
	Currency string       `json:"currency"`
	Amount   fixed.Number `json:"amount"`
	Value    fixed.Number `json:"value"`
}

// AccountValuation aggregated value of an account's borrows or collaterals
type AccountValuation struct {
	Account string             `json:"account"`
	Total   fixed.Number       `json:"total"`
	Details []*ValuationDetail `json:"details"`
}

// Valuations borrow and collateral valuations of one cycle
type Valuations struct {
	Borrows     map[string]*AccountValuation `json:"borrows"`
	Collaterals map[string]*AccountValuation `json:"collaterals"`
}

// LiquidationSubmitter submit liquidate borrow transactions
type LiquidationSubmitter interface {
	CanSign(ctx context.Context) bool
	// LiquidateBorrow submit the action, returns the signer used
	LiquidateBorrow(ctx context.Context, liquidation *Liquidation) (string, error)
}

// LiquidationService liquidation engine
type LiquidationService interface {
	// Run one liquidation cycle and submit the selected actions
	Run(ctx context.Context) ([]*Liquidation, error)
	// Plan select actions without locking or submitting
	Plan(ctx context.Context) ([]*Liquidation, error)
	Valuate(ctx context.Context) (*Valuations, error)
	ValuateAccount(ctx context.Context, account string) (*Valuations, error)
}

// Locker cycle lock
type Locker interface {
	// TryLock returns ErrLockUnavailable if the key is held
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
