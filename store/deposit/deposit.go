package deposit

import (
	"context"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
)

type depositStore struct {
	db *db.DB
}

// New new deposit store
func New(db *db.DB) core.DepositStore {
	return &depositStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Deposit{})
		if err := tx.AutoMigrate(core.Deposit{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *depositStore) List(ctx context.Context) ([]*core.Deposit, error) {
	var deposits []*core.Deposit
	if err := s.db.View().Order("currency, account").Find(&deposits).Error; err != nil {
		return nil, err
	}

	return deposits, nil
}

func (s *depositStore) FindByAccount(ctx context.Context, account string) ([]*core.Deposit, error) {
	var deposits []*core.Deposit
	if err := s.db.View().Where("account = ?", account).Order("currency").Find(&deposits).Error; err != nil {
		return nil, err
	}

	return deposits, nil
}

func (s *depositStore) CountOfSuppliers(ctx context.Context, currency string) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Deposit{}).Where("currency = ? AND voucher_balance > 0", currency).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
