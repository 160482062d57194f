package event

import (
	"context"

	"keeper/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Create(ctx context.Context, event *core.Event) error {
	return s.db.Update().Create(event).Error
}

func (s *eventStore) List(ctx context.Context, currency string, limit int) ([]*core.Event, error) {
	query := s.db.View()
	if currency != "" {
		query = query.Where("currency = ?", currency)
	}

	var events []*core.Event
	if err := query.Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
