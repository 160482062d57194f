package block

import (
	"context"
	"time"

	"keeper/core"
	"keeper/internal/block"
)

// Config block clock config
type Config struct {
	Genesis         int64
	SecondsPerBlock int64
}

type service struct {
	config Config
}

// New new block service
func New(config Config) core.BlockService {
	return &service{
		config: config,
	}
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return s.GetBlock(ctx, time.Now())
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return block.GetBlockByTime(s.config.SecondsPerBlock, s.config.Genesis, t)
}
