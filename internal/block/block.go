package block

import (
	"errors"
	"time"
)

// ErrBeforeGenesis time is not after genesis
var ErrBeforeGenesis = errors.New("time before genesis")

// GetBlockByTime block number of t
func GetBlockByTime(secondsPerBlock, genesis int64, t time.Time) (int64, error) {
	if secondsPerBlock <= 0 {
		return 0, errors.New("secondsPerBlock should not be less than or equal zero")
	}

	seconds := t.UTC().Unix() - genesis
	if seconds <= 0 {
		return 0, ErrBeforeGenesis
	}

	return seconds / secondsPerBlock, nil
}

// CurrentBlock current block
func CurrentBlock(secondsPerBlock, genesis int64) (int64, error) {
	return GetBlockByTime(secondsPerBlock, genesis, time.Now())
}

// BlockTime start time of the block
func BlockTime(secondsPerBlock, genesis, block int64) time.Time {
	return time.Unix(genesis+block*secondsPerBlock, 0).UTC()
}
