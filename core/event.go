package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"

	"keeper/pkg/fixed"
)

// EventKind notification kind
type EventKind string

const (
	// EventRateModelUpdated jump rate model updated
	EventRateModelUpdated EventKind = "rate_model_updated"
	// EventBorrowRateUpdated borrow rate updated
	EventBorrowRateUpdated EventKind = "borrow_rate_updated"
	// EventSupplyRateUpdated supply rate updated
	EventSupplyRateUpdated EventKind = "supply_rate_updated"
	// EventUtilizationUpdated utilization rate updated
	EventUtilizationUpdated EventKind = "utilization_updated"
	// EventExchangeRateUpdated exchange rate updated
	EventExchangeRateUpdated EventKind = "exchange_rate_updated"
)

func (k EventKind) String() string {
	return string(k)
}

// Event persisted notification
type Event struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Kind      EventKind      `sql:"size:32;index:idx_events_currency" json:"kind"`
	Currency  string         `sql:"size:36;index:idx_events_currency" json:"currency"`
	Data      types.JSONText `sql:"type:text" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// EventStore event store interface
type EventStore interface {
	Create(ctx context.Context, event *Event) error
	// List newest first, all currencies if currency is empty
	List(ctx context.Context, currency string, limit int) ([]*Event, error)
}

// Notifier emit notifications
type Notifier interface {
	Notify(ctx context.Context, kind EventKind, currency string, payload interface{}) error
}

// RateModelPayload payload of rate_model_updated
type RateModelPayload struct {
	BaseRatePerBlock       fixed.Number `json:"base_rate_per_block"`
	MultiplierPerBlock     fixed.Number `json:"multiplier_per_block"`
	JumpMultiplierPerBlock fixed.Number `json:"jump_multiplier_per_block"`
	Kink                   fixed.Number `json:"kink"`
}

// RatePayload payload of rate updates
type RatePayload struct {
	Value fixed.Number `json:"value"`
}
