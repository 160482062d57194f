package core

import (
	"context"
	"time"
)

// OracleProvider account eligible to report prices
type OracleProvider struct {
	ID        int64     `sql:"PRIMARY_KEY" json:"id,omitempty"`
	Account   string    `sql:"size:64;unique_index:idx_oracle_providers_account" json:"account,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// OracleProviderStore oracle provider store interface
type OracleProviderStore interface {
	Save(ctx context.Context, account string) error
	Delete(ctx context.Context, account string) error
	FindAll(ctx context.Context) ([]*OracleProvider, error)
}
