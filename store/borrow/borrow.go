package borrow

import (
	"context"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
)

type borrowStore struct {
	db *db.DB
}

// New new borrow store
func New(db *db.DB) core.BorrowStore {
	return &borrowStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Borrow{})
		if err := tx.AutoMigrate(core.Borrow{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowStore) List(ctx context.Context) ([]*core.Borrow, error) {
	var borrows []*core.Borrow
	if err := s.db.View().Order("currency, account").Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

func (s *borrowStore) FindByAccount(ctx context.Context, account string) ([]*core.Borrow, error) {
	var borrows []*core.Borrow
	if err := s.db.View().Where("account = ?", account).Order("currency").Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

func (s *borrowStore) CountOfBorrowers(ctx context.Context, currency string) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Borrow{}).Where("currency = ? AND principal > 0", currency).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
