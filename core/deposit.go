package core

import (
	"context"
	"time"

	"keeper/pkg/fixed"
)

// Deposit voucher balance of an account
type Deposit struct {
	ID             uint64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account        string       `sql:"size:64;unique_index:deposit_idx" json:"account"`
	Currency       string       `sql:"size:36;unique_index:deposit_idx" json:"currency"`
	VoucherBalance fixed.Number `sql:"type:decimal(48,18)" json:"voucher_balance"`
	IsCollateral   bool         `sql:"default:false" json:"is_collateral"`
	Version        int64        `sql:"default:0" json:"version"`
	CreatedAt      time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DepositStore deposit store interface, read only to the keeper
type DepositStore interface {
	// List all deposits ordered by (currency, account)
	List(ctx context.Context) ([]*Deposit, error)
	FindByAccount(ctx context.Context, account string) ([]*Deposit, error)
	CountOfSuppliers(ctx context.Context, currency string) (int64, error)
}
