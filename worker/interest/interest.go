package interest

import (
	"context"

	"keeper/core"
	"keeper/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker refresh the rates of every market
type Worker struct {
	worker.BaseJob
	markets core.MarketStore
	rates   core.RateService
}

// New new interest worker
func New(location, spec string, markets core.MarketStore, rates core.RateService) *Worker {
	w := &Worker{
		BaseJob: worker.NewBaseJob("interest", location, spec),
		markets: markets,
		rates:   rates,
	}

	w.OnWork = w.onWork
	return w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	var lastErr error
	for _, market := range markets {
		if !market.HasRateModel() {
			log.Debugln("rate model not set, skip", market.Currency)
			continue
		}

		if err := w.refresh(ctx, market); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

func (w *Worker) refresh(ctx context.Context, market *core.Market) error {
	log := logger.FromContext(ctx).WithField("currency", market.Currency)

	cash, borrows, reserves := market.TotalCash, market.TotalBorrows, market.TotalReserves

	if err := w.rates.UpdateBorrowRate(ctx, market.Currency, cash, borrows, reserves); err != nil {
		log.WithError(err).Warnln("rates.UpdateBorrowRate")
		return err
	}

	if err := w.rates.UpdateSupplyRate(ctx, market.Currency, cash, borrows, reserves, market.ReserveFactor); err != nil {
		log.WithError(err).Warnln("rates.UpdateSupplyRate")
		return err
	}

	if market.TotalShares.IsZero() {
		return nil
	}

	if _, err := w.rates.CalcExchangeRate(ctx, market.Currency); err != nil {
		log.WithError(err).Warnln("rates.CalcExchangeRate")
		return err
	}

	return nil
}
