package cmd

import (
	"time"

	"keeper/config"
	"keeper/core"
	"keeper/service/block"
	"keeper/service/liquidation"
	marketservice "keeper/service/market"
	"keeper/service/notifier"
	"keeper/service/oracle"
	"keeper/service/priceoracle"
	"keeper/service/submitter"
	"keeper/service/ticker"
	"keeper/store/borrow"
	"keeper/store/deposit"
	"keeper/store/event"
	"keeper/store/lock"
	"keeper/store/market"
	"keeper/store/price"
	"keeper/store/pricereport"
	oraclestore "keeper/store/oracle"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideLocker() core.Locker {
	if cfg.Redis.Addr == "" {
		return lock.NewLocal()
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	return lock.NewRedis(client, "keeper:")
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideMarketStore(db *db.DB) core.MarketStore {
	return market.New(db)
}

func provideBorrowStore(db *db.DB) core.BorrowStore {
	return borrow.New(db)
}

func provideDepositStore(db *db.DB) core.DepositStore {
	return deposit.New(db)
}

func providePriceStore(db *db.DB) core.PriceStore {
	return price.Cache(price.New(db), time.Hour)
}

func providePriceReportStore(db *db.DB) core.PriceReportStore {
	return pricereport.New(db)
}

func provideOracleProviderStore(db *db.DB) core.OracleProviderStore {
	return oraclestore.NewProviderStore(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.New(db)
}

// ------------------service------------------------------------

func provideBlockService() core.BlockService {
	return block.New(block.Config{
		Genesis:         cfg.App.Genesis,
		SecondsPerBlock: cfg.App.SecondsPerBlock,
	})
}

func provideRateService(markets core.MarketStore, events core.EventStore) core.RateService {
	return marketservice.New(markets, notifier.New(events))
}

func providePriceAggregator(reports core.PriceReportStore) core.PriceAggregator {
	strategy, err := oracle.StrategyByName(cfg.Oracle.Strategy)
	if err != nil {
		panic(err)
	}

	return oracle.New(reports, oracle.Config{
		DataSources: cfg.Oracle.DataSources,
		Strategy:    strategy,
	})
}

func providePriceFeeder(prices core.PriceStore) core.PriceFeeder {
	return priceoracle.New(prices, priceoracle.Config{
		MaxAge: config.Duration(cfg.Oracle.MaxPriceAge),
	})
}

func provideTickerSource() core.TickerSource {
	return ticker.New(cfg.Oracle.DataSources[0], cfg.Oracle.TickerEndpoint)
}

func provideSubmitter(dryRun bool) core.LiquidationSubmitter {
	if dryRun || cfg.Submitter.DryRun {
		return submitter.DryRun()
	}

	return submitter.New(submitter.Config{
		Endpoint: cfg.Submitter.Endpoint,
		Signers:  cfg.Submitter.Signers,
	})
}

func provideLiquidationService(db *db.DB, dryRun bool) core.LiquidationService {
	return liquidation.New(
		provideMarketStore(db),
		provideBorrowStore(db),
		provideDepositStore(db),
		providePriceFeeder(providePriceStore(db)),
		provideSubmitter(dryRun),
		provideLocker(),
		liquidation.Config{
			LiquidateFactor: cfg.Liquidation.Factor(),
			LockTimeout:     config.Duration(cfg.Liquidation.LockTimeout),
		},
	)
}
