package pricereport

import (
	"context"
	"errors"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
)

type reportStore struct {
	db *db.DB
}

// New new price report store
func New(db *db.DB) core.PriceReportStore {
	return &reportStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PriceReport{})
		if err := tx.AutoMigrate(core.PriceReport{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *reportStore) Create(ctx context.Context, report *core.PriceReport) error {
	if err := s.db.Update().Create(report).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil
		}

		return err
	}

	return nil
}

func (s *reportStore) Latest(ctx context.Context, provider, source, currency string) (*core.PriceReport, bool, error) {
	var report core.PriceReport
	err := s.db.View().
		Where("provider = ? AND source = ? AND currency = ?", provider, source, currency).
		Order("id DESC").
		First(&report).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &report, true, nil
}
