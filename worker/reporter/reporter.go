package reporter

import (
	"context"
	"fmt"
	"time"

	"keeper/core"
	"keeper/pkg/id"
	"keeper/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
)

// Reporter report ticker prices as an oracle provider, once per round
type Reporter struct {
	worker.BaseJob
	provider string
	markets  core.MarketStore
	reports  core.PriceReportStore
	blocks   core.BlockService
	source   core.TickerSource
	now      func() time.Time
}

// New new reporter worker
func New(
	location, spec, provider string,
	markets core.MarketStore,
	reports core.PriceReportStore,
	blocks core.BlockService,
	source core.TickerSource,
) *Reporter {
	w := &Reporter{
		BaseJob:  worker.NewBaseJob("reporter", location, spec),
		provider: provider,
		markets:  markets,
		reports:  reports,
		blocks:   blocks,
		source:   source,
		now:      time.Now,
	}

	w.OnWork = w.onWork
	return w
}

func (w *Reporter) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	now := w.now()
	round, err := w.blocks.GetBlock(ctx, now)
	if err != nil {
		log.WithError(err).Errorln("blocks.GetBlock")
		return err
	}

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	for _, market := range markets {
		if err := w.report(ctx, market.Currency, round, now); err != nil {
			log.WithError(err).WithField("currency", market.Currency).Warnln("report price")
		}
	}

	return nil
}

func (w *Reporter) report(ctx context.Context, currency string, round int64, now time.Time) error {
	latest, found, err := w.reports.Latest(ctx, w.provider, w.source.Name(), currency)
	if err != nil {
		return err
	}

	if found && latest.Round >= round {
		return nil
	}

	ticker, err := w.source.PullPriceTicker(ctx, currency, now)
	if err != nil {
		return err
	}

	if ticker.Price.IsZero() {
		return fmt.Errorf("%w: zero ticker price", core.ErrInvalidPrice)
	}

	return w.reports.Create(ctx, &core.PriceReport{
		Provider: w.provider,
		Source:   w.source.Name(),
		Currency: currency,
		Round:    round,
		Price:    ticker.Price,
		TraceID:  traceID(w.provider, w.source.Name(), currency, round),
	})
}

func traceID(provider, source, currency string, round int64) string {
	return uuid.Modify(id.UUIDFromString(provider), fmt.Sprintf("%s:%s:%d", source, currency, round))
}
