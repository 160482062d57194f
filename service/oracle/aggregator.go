package oracle

import (
	"context"
	"encoding/json"
	"time"

	"keeper/core"
	"keeper/pkg/fixed"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Config aggregator config
type Config struct {
	DataSources []string
	Strategy    Strategy
}

type aggregator struct {
	reports  core.PriceReportStore
	sources  []string
	strategy Strategy
	now      func() time.Time
}

// New new price aggregator
func New(reports core.PriceReportStore, cfg Config) core.PriceAggregator {
	strategy := cfg.Strategy
	if strategy == nil {
		strategy = Average
	}

	return &aggregator{
		reports:  reports,
		sources:  cfg.DataSources,
		strategy: strategy,
		now:      time.Now,
	}
}

// observation accepted report stored in price content
type observation struct {
	Provider string       `json:"provider"`
	Source   string       `json:"source"`
	Price    fixed.Number `json:"price"`
}

// Aggregate reduce the latest report of every (provider, source) whose round matches
func (a *aggregator) Aggregate(ctx context.Context, round int64, providers []string, currency string) (*core.Price, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"currency": currency,
		"round":    round,
	})

	var (
		prices   []fixed.Number
		accepted []observation
	)

	for _, provider := range providers {
		for _, source := range a.sources {
			report, found, err := a.reports.Latest(ctx, provider, source, currency)
			if err != nil {
				log.WithError(err).Errorln("reports.Latest", provider, source)
				return nil, err
			}

			if !found {
				continue
			}

			if report.Round != round {
				log.Warnf("price round index is %d, while this round is %d", report.Round, round)
				continue
			}

			prices = append(prices, report.Price)
			accepted = append(accepted, observation{
				Provider: provider,
				Source:   source,
				Price:    report.Price,
			})
		}
	}

	if len(prices) == 0 {
		return nil, core.ErrEmptyPriceSet
	}

	price, err := a.strategy(prices)
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(accepted)
	if err != nil {
		return nil, err
	}

	return &core.Price{
		Currency:  currency,
		Round:     round,
		Price:     price,
		Timestamp: a.now(),
		Content:   content,
	}, nil
}
