package market

import (
	"context"
	"fmt"
	"time"

	"keeper/core"
	"keeper/internal/interest"
	"keeper/pkg/fixed"

	"github.com/fox-one/pkg/logger"
)

type service struct {
	marketStore core.MarketStore
	notifier    core.Notifier
	now         func() time.Time
}

// New new interest rate model service
func New(
	marketStr core.MarketStore,
	notifier core.Notifier,
) core.RateService {
	return &service{
		marketStore: marketStr,
		notifier:    notifier,
		now:         time.Now,
	}
}

func computationFailed(err error) error {
	return fmt.Errorf("%w: %v", core.ErrRateComputationFailed, err)
}

// UpdateJumpRateModel convert the per year parameters to per block and store them
func (s *service) UpdateJumpRateModel(ctx context.Context, currency string, baseRatePerYear, multiplierPerYear, jumpMultiplierPerYear, kink fixed.Number) error {
	market, err := s.marketStore.Find(ctx, currency)
	if err != nil {
		return err
	}

	model, err := interest.JumpRateModel(baseRatePerYear, multiplierPerYear, jumpMultiplierPerYear, kink)
	if err != nil {
		return computationFailed(err)
	}

	if err := s.marketStore.UpdateRateModel(ctx, market, model, s.now()); err != nil {
		return err
	}

	s.notify(ctx, core.EventRateModelUpdated, currency, core.RateModelPayload{
		BaseRatePerBlock:       model.BaseRatePerBlock,
		MultiplierPerBlock:     model.MultiplierPerBlock,
		JumpMultiplierPerBlock: model.JumpMultiplierPerBlock,
		Kink:                   model.Kink,
	})

	return nil
}

// UpdateBorrowRate update utilization rate and borrow rate together
func (s *service) UpdateBorrowRate(ctx context.Context, currency string, cash, borrows, reserves fixed.Number) error {
	market, err := s.findWithRateModel(ctx, currency)
	if err != nil {
		return err
	}

	utilizationRate, err := interest.UtilizationRate(cash, borrows, reserves)
	if err != nil {
		return computationFailed(err)
	}

	borrowRate, err := interest.BorrowRate(utilizationRate, market.BaseRatePerBlock, market.MultiplierPerBlock, market.JumpMultiplierPerBlock, market.Kink)
	if err != nil {
		return computationFailed(err)
	}

	rates := core.Rates{
		UtilizationRate: &utilizationRate,
		BorrowRate:      &borrowRate,
	}
	if err := s.marketStore.UpdateRates(ctx, market, rates); err != nil {
		return err
	}

	s.notify(ctx, core.EventUtilizationUpdated, currency, core.RatePayload{Value: utilizationRate})
	s.notify(ctx, core.EventBorrowRateUpdated, currency, core.RatePayload{Value: borrowRate})
	return nil
}

// UpdateSupplyRate supply rate from the stored borrow rate
func (s *service) UpdateSupplyRate(ctx context.Context, currency string, cash, borrows, reserves, reserveFactor fixed.Number) error {
	market, err := s.findWithRateModel(ctx, currency)
	if err != nil {
		return err
	}

	utilizationRate, err := interest.UtilizationRate(cash, borrows, reserves)
	if err != nil {
		return computationFailed(err)
	}

	supplyRate, err := interest.SupplyRate(utilizationRate, market.BorrowRate, reserveFactor)
	if err != nil {
		return computationFailed(err)
	}

	if err := s.marketStore.UpdateRates(ctx, market, core.Rates{SupplyRate: &supplyRate}); err != nil {
		return err
	}

	s.notify(ctx, core.EventSupplyRateUpdated, currency, core.RatePayload{Value: supplyRate})
	return nil
}

// CalcExchangeRate (cash + borrows) / shares of the market position
func (s *service) CalcExchangeRate(ctx context.Context, currency string) (fixed.Number, error) {
	market, err := s.marketStore.Find(ctx, currency)
	if err != nil {
		return fixed.Zero(), err
	}

	exchangeRate, err := interest.ExchangeRate(market.TotalCash, market.TotalBorrows, market.TotalShares)
	if err != nil {
		return fixed.Zero(), err
	}

	if err := s.marketStore.UpdateRates(ctx, market, core.Rates{ExchangeRate: &exchangeRate}); err != nil {
		return fixed.Zero(), err
	}

	s.notify(ctx, core.EventExchangeRateUpdated, currency, core.RatePayload{Value: exchangeRate})
	return exchangeRate, nil
}

func (s *service) findWithRateModel(ctx context.Context, currency string) (*core.Market, error) {
	market, err := s.marketStore.Find(ctx, currency)
	if err != nil {
		return nil, err
	}

	if !market.HasRateModel() {
		return nil, fmt.Errorf("%w: %s", core.ErrRateModelNotSet, currency)
	}

	return market, nil
}

// notify failures never roll back stored rates
func (s *service) notify(ctx context.Context, kind core.EventKind, currency string, payload interface{}) {
	if err := s.notifier.Notify(ctx, kind, currency, payload); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("notify", kind, currency)
	}
}
