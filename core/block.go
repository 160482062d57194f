package core

import (
	"context"
	"time"
)

// BlockService block clock, a block is the price round index
type BlockService interface {
	GetBlock(ctx context.Context, t time.Time) (int64, error)
	CurrentBlock(ctx context.Context) (int64, error)
}
