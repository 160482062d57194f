package market

import (
	"context"
	"database/sql"
	"time"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.MarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *marketStore) Create(ctx context.Context, market *core.Market) error {
	return s.db.Update().Create(market).Error
}

func (s *marketStore) Find(ctx context.Context, currency string) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().Where("currency = ?", currency).First(&market).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrMarketNotFound
		}

		return nil, err
	}

	return &market, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	if err := s.db.View().Order("currency").Find(&markets).Error; err != nil {
		return nil, err
	}

	return markets, nil
}

func (s *marketStore) UpdateRateModel(ctx context.Context, market *core.Market, model core.RateModel, at time.Time) error {
	updates := map[string]interface{}{
		"base_rate_per_year":        model.BaseRatePerYear,
		"multiplier_per_year":       model.MultiplierPerYear,
		"jump_multiplier_per_year":  model.JumpMultiplierPerYear,
		"kink":                      model.Kink,
		"base_rate_per_block":       model.BaseRatePerBlock,
		"multiplier_per_block":      model.MultiplierPerBlock,
		"jump_multiplier_per_block": model.JumpMultiplierPerBlock,
		"rate_model_at":             at,
	}

	if err := s.update(market, updates); err != nil {
		return err
	}

	market.BaseRatePerYear = model.BaseRatePerYear
	market.MultiplierPerYear = model.MultiplierPerYear
	market.JumpMultiplierPerYear = model.JumpMultiplierPerYear
	market.Kink = model.Kink
	market.BaseRatePerBlock = model.BaseRatePerBlock
	market.MultiplierPerBlock = model.MultiplierPerBlock
	market.JumpMultiplierPerBlock = model.JumpMultiplierPerBlock
	market.RateModelAt = sql.NullTime{Time: at, Valid: true}
	return nil
}

func (s *marketStore) UpdateRates(ctx context.Context, market *core.Market, rates core.Rates) error {
	updates := map[string]interface{}{}
	if rates.UtilizationRate != nil {
		updates["utilization_rate"] = *rates.UtilizationRate
	}
	if rates.BorrowRate != nil {
		updates["borrow_rate"] = *rates.BorrowRate
	}
	if rates.SupplyRate != nil {
		updates["supply_rate"] = *rates.SupplyRate
	}
	if rates.ExchangeRate != nil {
		updates["exchange_rate"] = *rates.ExchangeRate
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.update(market, updates); err != nil {
		return err
	}

	if rates.UtilizationRate != nil {
		market.UtilizationRate = *rates.UtilizationRate
	}
	if rates.BorrowRate != nil {
		market.BorrowRate = *rates.BorrowRate
	}
	if rates.SupplyRate != nil {
		market.SupplyRate = *rates.SupplyRate
	}
	if rates.ExchangeRate != nil {
		market.ExchangeRate = *rates.ExchangeRate
	}

	return nil
}

// update apply updates if the market version did not change
func (s *marketStore) update(market *core.Market, updates map[string]interface{}) error {
	version := market.Version
	updates["version"] = version + 1

	tx := s.db.Update().Model(core.Market{}).
		Where("currency = ? AND version = ?", market.Currency, version).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return core.ErrOptimisticLock
	}

	market.Version = version + 1
	return nil
}
