package cmd

import (
	"sync"

	"keeper/config"
	"keeper/worker"
	"keeper/worker/interest"
	"keeper/worker/liquidator"
	"keeper/worker/priceoracle"
	"keeper/worker/reporter"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run keeper workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		db := provideDatabase()
		defer db.Close()

		marketStore := provideMarketStore(db)
		priceStore := providePriceStore(db)
		reportStore := providePriceReportStore(db)
		eventStore := provideEventStore(db)

		blockService := provideBlockService()
		location := cfg.App.Location

		workers := []worker.Worker{
			liquidator.New(location, cfg.Schedule.Liquidator, provideLiquidationService(db, false)),
			interest.New(location, cfg.Schedule.Interest, marketStore, provideRateService(marketStore, eventStore)),
			priceoracle.New(
				priceoracle.Config{
					Location:  location,
					Spec:      cfg.Schedule.PriceOracle,
					Retention: config.Duration(cfg.Oracle.Retention),
				},
				marketStore,
				provideOracleProviderStore(db),
				priceStore,
				blockService,
				providePriceAggregator(reportStore),
				priceoracle.PropertyCheckpoints(providePropertyStore(db)),
			),
		}

		if cfg.Oracle.Reporter != "" {
			workers = append(workers, reporter.New(
				location,
				cfg.Schedule.Reporter,
				cfg.Oracle.Reporter,
				marketStore,
				reportStore,
				blockService,
				provideTickerSource(),
			))
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(w worker.Worker) {
				defer wg.Done()
				if err := w.Run(ctx); err != nil {
					log.WithError(err).Errorln("worker aborted")
				}
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
