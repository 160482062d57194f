package liquidation

import (
	"context"
	"fmt"

	"keeper/core"
	"keeper/internal/interest"
	"keeper/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

type priceResult struct {
	price fixed.Number
	err   error
}

// valuator values ledger records of one cycle with a consistent view of markets and prices
type valuator struct {
	markets map[string]*core.Market
	feeder  core.PriceFeeder
	prices  map[string]priceResult
}

func (s *service) newValuator(ctx context.Context) (*valuator, error) {
	markets, err := s.marketStore.All(ctx)
	if err != nil {
		return nil, err
	}

	v := &valuator{
		markets: make(map[string]*core.Market, len(markets)),
		feeder:  s.priceFeeder,
		prices:  map[string]priceResult{},
	}

	for _, m := range markets {
		v.markets[m.Currency] = m
	}

	return v, nil
}

func (v *valuator) market(currency string) (*core.Market, error) {
	market, ok := v.markets[currency]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrMarketNotFound, currency)
	}

	return market, nil
}

func (v *valuator) price(ctx context.Context, currency string) (fixed.Number, error) {
	r, ok := v.prices[currency]
	if !ok {
		r.price, r.err = v.feeder.GetPrice(ctx, currency)
		v.prices[currency] = r
	}

	return r.price, r.err
}

// borrow value = price * current balance, the detail amount is the principal
func (v *valuator) borrow(ctx context.Context, b *core.Borrow) (*core.ValuationDetail, error) {
	market, err := v.market(b.Currency)
	if err != nil {
		return nil, err
	}

	price, err := v.price(ctx, b.Currency)
	if err != nil {
		return nil, err
	}

	balance, err := interest.BorrowBalance(b.Principal, market.BorrowIndex, b.InterestIndex)
	if err != nil {
		return nil, err
	}

	value, err := price.Mul(balance)
	if err != nil {
		return nil, err
	}

	return &core.ValuationDetail{
		Currency: b.Currency,
		Amount:   b.Principal,
		Value:    value,
	}, nil
}

// collateral returns the undiscounted detail and the value discounted by the collateral factor
func (v *valuator) collateral(ctx context.Context, d *core.Deposit) (*core.ValuationDetail, fixed.Number, error) {
	market, err := v.market(d.Currency)
	if err != nil {
		return nil, fixed.Zero(), err
	}

	if market.ExchangeRate.IsZero() {
		return nil, fixed.Zero(), fmt.Errorf("%w: exchange rate of %s not calculated", core.ErrCalcExchangeRateFailed, d.Currency)
	}

	price, err := v.price(ctx, d.Currency)
	if err != nil {
		return nil, fixed.Zero(), err
	}

	underlying, err := market.ExchangeRate.Mul(d.VoucherBalance)
	if err != nil {
		return nil, fixed.Zero(), err
	}

	value, err := price.Mul(underlying)
	if err != nil {
		return nil, fixed.Zero(), err
	}

	discounted, err := value.Mul(market.CollateralFactor)
	if err != nil {
		return nil, fixed.Zero(), err
	}

	detail := &core.ValuationDetail{
		Currency: d.Currency,
		Amount:   underlying,
		Value:    value,
	}

	return detail, discounted, nil
}

// fold accumulates details per account, an account that fails once is excluded for the rest of the cycle
type fold struct {
	kind       string
	valuations map[string]*core.AccountValuation
	dropped    map[string]struct{}
}

func newFold(kind string) *fold {
	return &fold{
		kind:       kind,
		valuations: map[string]*core.AccountValuation{},
		dropped:    map[string]struct{}{},
	}
}

func (f *fold) skip(account string) bool {
	_, ok := f.dropped[account]
	return ok
}

func (f *fold) drop(ctx context.Context, account, currency string, err error) {
	logger.FromContext(ctx).WithError(err).WithFields(logrus.Fields{
		"account":  account,
		"currency": currency,
	}).Warnf("drop account from %s valuation", f.kind)

	delete(f.valuations, account)
	f.dropped[account] = struct{}{}
}

func (f *fold) add(ctx context.Context, account string, detail *core.ValuationDetail, weight fixed.Number) {
	valuation, ok := f.valuations[account]
	if !ok {
		valuation = &core.AccountValuation{Account: account}
	}

	total, err := valuation.Total.Add(weight)
	if err != nil {
		f.drop(ctx, account, detail.Currency, fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err))
		return
	}

	valuation.Total = total
	valuation.Details = append(valuation.Details, detail)
	f.valuations[account] = valuation
}

func (v *valuator) foldBorrows(ctx context.Context, borrows []*core.Borrow) map[string]*core.AccountValuation {
	f := newFold("borrow")
	for _, b := range borrows {
		if b.Principal.IsZero() || f.skip(b.Account) {
			continue
		}

		detail, err := v.borrow(ctx, b)
		if err != nil {
			f.drop(ctx, b.Account, b.Currency, err)
			continue
		}

		f.add(ctx, b.Account, detail, detail.Value)
	}

	return f.valuations
}

func (v *valuator) foldCollaterals(ctx context.Context, deposits []*core.Deposit) map[string]*core.AccountValuation {
	f := newFold("collateral")
	for _, d := range deposits {
		if !d.IsCollateral || d.VoucherBalance.IsZero() || f.skip(d.Account) {
			continue
		}

		detail, discounted, err := v.collateral(ctx, d)
		if err != nil {
			f.drop(ctx, d.Account, d.Currency, err)
			continue
		}

		f.add(ctx, d.Account, detail, discounted)
	}

	return f.valuations
}
