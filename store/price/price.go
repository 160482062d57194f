package price

import (
	"context"
	"errors"
	"time"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.PriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Create(ctx context.Context, price *core.Price) error {
	if err := s.db.Update().Create(price).Error; err != nil && !isUniqueViolation(err) {
		return err
	}

	return nil
}

func (s *priceStore) FindByRound(ctx context.Context, currency string, round int64) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("currency = ? AND round = ?", currency, round).First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPriceNotFound
		}

		return nil, err
	}

	return &price, nil
}

func (s *priceStore) Latest(ctx context.Context, currency string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("currency = ?", currency).Order("round DESC").First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPriceNotFound
		}

		return nil, err
	}

	return &price, nil
}

func (s *priceStore) DeleteBefore(ctx context.Context, t time.Time) error {
	return s.db.Update().Where("created_at < ?", t).Delete(core.Price{}).Error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
