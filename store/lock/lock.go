// Package lock implements core.Locker on top of redis or process memory.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"keeper/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/go-redis/redis"
)

// ErrInvalidTTL the lock would never expire or expire at once
var ErrInvalidTTL = errors.New("lock ttl must be positive")

// only delete the key if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`)

type redisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedis new redis locker
func NewRedis(client *redis.Client, prefix string) core.Locker {
	return &redisLocker{
		client: client,
		prefix: prefix,
	}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	client := l.client.WithContext(ctx)
	key = l.prefix + key
	token := uuid.New()

	ok, err := client.SetNX(key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrLockUnavailable, err)
	}

	if !ok {
		return nil, core.ErrLockUnavailable
	}

	release := func() {
		if err := releaseScript.Run(l.client, []string{key}, token).Err(); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("release lock", key)
		}
	}

	return release, nil
}

type localLock struct {
	token    string
	deadline time.Time
}

type localLocker struct {
	mu    sync.Mutex
	locks map[string]localLock
	now   func() time.Time
}

// NewLocal new in process locker
func NewLocal() core.Locker {
	return &localLocker{
		locks: map[string]localLock{},
		now:   time.Now,
	}
}

func (l *localLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.locks[key]; ok && now.Before(held.deadline) {
		return nil, core.ErrLockUnavailable
	}

	token := uuid.New()
	l.locks[key] = localLock{
		token:    token,
		deadline: now.Add(ttl),
	}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()

		if held, ok := l.locks[key]; ok && held.token == token {
			delete(l.locks, key)
		}
	}

	return release, nil
}
