package priceoracle

import (
	"context"
	"errors"
	"time"

	"keeper/core"
	"keeper/pkg/concurrency"
	"keeper/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Config price oracle worker config
type Config struct {
	Location string
	Spec     string
	// aggregations running at the same time
	Concurrency int
	// prices older than this are purged, disabled if zero
	Retention time.Duration
}

// Oracle aggregate the price of every market once per round
type Oracle struct {
	worker.BaseJob
	markets     core.MarketStore
	providers   core.OracleProviderStore
	prices      core.PriceStore
	blocks      core.BlockService
	aggregator  core.PriceAggregator
	checkpoints Checkpoints
	concurrency int
	retention   time.Duration
	now         func() time.Time
}

// New new price oracle worker
func New(
	cfg Config,
	markets core.MarketStore,
	providers core.OracleProviderStore,
	prices core.PriceStore,
	blocks core.BlockService,
	aggregator core.PriceAggregator,
	checkpoints Checkpoints,
) *Oracle {
	w := &Oracle{
		BaseJob:     worker.NewBaseJob("priceoracle", cfg.Location, cfg.Spec),
		markets:     markets,
		providers:   providers,
		prices:      prices,
		blocks:      blocks,
		aggregator:  aggregator,
		checkpoints: checkpoints,
		concurrency: cfg.Concurrency,
		retention:   cfg.Retention,
		now:         time.Now,
	}

	w.OnWork = w.onWork
	return w
}

func (w *Oracle) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	round, err := w.blocks.CurrentBlock(ctx)
	if err != nil {
		log.WithError(err).Errorln("blocks.CurrentBlock")
		return err
	}

	providers, err := w.providers.FindAll(ctx)
	if err != nil {
		log.WithError(err).Errorln("providers.FindAll")
		return err
	}

	if len(providers) == 0 {
		log.Infoln("no oracle provider found")
		return nil
	}

	accounts := make([]string, 0, len(providers))
	for _, p := range providers {
		accounts = append(accounts, p.Account)
	}

	markets, err := w.markets.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	var (
		g     errgroup.Group
		limit = concurrency.NewGoLimit(w.concurrency)
	)

	for _, market := range markets {
		currency := market.Currency
		limit.Add()
		g.Go(func() error {
			defer limit.Done()
			return w.aggregate(ctx, round, accounts, currency)
		})
	}

	err = g.Wait()

	if w.retention > 0 {
		if err := w.prices.DeleteBefore(ctx, w.now().Add(-w.retention)); err != nil {
			log.WithError(err).Errorln("prices.DeleteBefore")
		}
	}

	return err
}

func (w *Oracle) aggregate(ctx context.Context, round int64, providers []string, currency string) error {
	log := logger.FromContext(ctx).WithField("currency", currency)

	checkpoint, err := w.checkpoints.Round(ctx, currency)
	if err != nil {
		log.WithError(err).Errorln("checkpoints.Round")
		return err
	}

	if checkpoint >= round {
		return nil
	}

	price, err := w.aggregator.Aggregate(ctx, round, providers, currency)
	if err != nil {
		if errors.Is(err, core.ErrEmptyPriceSet) {
			log.Debugln("no price reported for round", round)
			return nil
		}

		log.WithError(err).Errorln("aggregator.Aggregate")
		return err
	}

	if err := w.prices.Create(ctx, price); err != nil {
		log.WithError(err).Errorln("prices.Create")
		return err
	}

	if err := w.checkpoints.SaveRound(ctx, currency, round); err != nil {
		log.WithError(err).Errorln("checkpoints.SaveRound")
		return err
	}

	log.Infof("price aggregated, round %d, price %s", round, price.Price)
	return nil
}
