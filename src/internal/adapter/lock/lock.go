package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/api-sage/bank-ledger/src/internal/logger"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

var ErrLockHeld = errors.New("lock already held by another process")

// Release gives a lock back. It is safe to call more than once.
type Release func(ctx context.Context) error

// Locker guards jobs that must not overlap, across processes when backed by Redis.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (Release, error)
}

type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, prefix: "ledger:lock:"}
}

// releaseScript deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (Release, error) {
	key := l.prefix + name
	token := ulid.Make().String()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	logger.Info("lock acquired", logger.Fields{"lock": name, "ttl": ttl.String()})

	var once sync.Once
	return func(ctx context.Context) error {
		var releaseErr error
		once.Do(func() {
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				releaseErr = fmt.Errorf("release lock %s: %w", name, err)
			}
		})
		return releaseErr
	}, nil
}

// LocalLocker serializes jobs inside one process. ttl is ignored.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[string]*sync.Mutex{}}
}

func (l *LocalLocker) Acquire(_ context.Context, name string, _ time.Duration) (Release, error) {
	l.mu.Lock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	l.mu.Unlock()

	if !m.TryLock() {
		return nil, ErrLockHeld
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(m.Unlock)
		return nil
	}, nil
}
