package core

import (
	"context"
	"time"

	"keeper/pkg/fixed"
)

// Borrow borrow snapshot of an account
type Borrow struct {
	ID            uint64       `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account       string       `sql:"size:64;unique_index:borrow_idx" json:"account"`
	Currency      string       `sql:"size:36;unique_index:borrow_idx" json:"currency"`
	Principal     fixed.Number `sql:"type:decimal(48,18)" json:"principal"`
	InterestIndex fixed.Number `sql:"type:decimal(48,18)" json:"interest_index"`
	Version       int64        `sql:"default:0" json:"version"`
	CreatedAt     time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BorrowStore borrow store interface, read only to the keeper
type BorrowStore interface {
	// List all borrows ordered by (currency, account)
	List(ctx context.Context) ([]*Borrow, error)
	FindByAccount(ctx context.Context, account string) ([]*Borrow, error)
	CountOfBorrowers(ctx context.Context, currency string) (int64, error)
}
