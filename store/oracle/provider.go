package oracle

import (
	"context"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
)

type providerStore struct {
	db *db.DB
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.OracleProvider{})
		if err := tx.AutoMigrate(core.OracleProvider{}).Error; err != nil {
			return err
		}
		return nil
	})
}

func NewProviderStore(db *db.DB) core.OracleProviderStore {
	return &providerStore{db: db}
}

func (s *providerStore) Save(ctx context.Context, account string) error {
	provider := core.OracleProvider{
		Account: account,
	}

	return s.db.Update().Where("account = ?", account).FirstOrCreate(&provider).Error
}

func (s *providerStore) Delete(ctx context.Context, account string) error {
	return s.db.Update().Where("account = ?", account).Delete(core.OracleProvider{}).Error
}

func (s *providerStore) FindAll(ctx context.Context) ([]*core.OracleProvider, error) {
	var providers []*core.OracleProvider
	if err := s.db.View().Order("id").Find(&providers).Error; err != nil {
		return nil, err
	}

	return providers, nil
}
