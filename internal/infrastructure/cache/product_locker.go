package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appcatalog "github.com/bizcocho/backend/internal/application/catalog"
	"github.com/bizcocho/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockTTL  = 10 * time.Second
	defaultLockWait = 5 * time.Second
	lockRetryDelay  = 50 * time.Millisecond
	lockKeySegment  = "lock:product:"
	releaseTimeout  = 2 * time.Second
)

// releaseScript deletes the lock only while it still holds our token, so a
// holder whose lease expired cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func lockBusyError(productID uuid.UUID) error {
	return shared.ConflictError(fmt.Sprintf("Product %s configuration is being modified, try again", productID))
}

// RedisProductLocker serializes per-product writes across instances with
// SET NX PX leases.
type RedisProductLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	wait      time.Duration
	logger    *zap.Logger
}

// NewRedisProductLocker creates a locker on an existing client
func NewRedisProductLocker(client *redis.Client, keyPrefix string, ttl, wait time.Duration, logger *zap.Logger) *RedisProductLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	if wait <= 0 {
		wait = defaultLockWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisProductLocker{
		client:    client,
		keyPrefix: keyPrefix + lockKeySegment,
		ttl:       ttl,
		wait:      wait,
		logger:    logger,
	}
}

// Lock retries until the lease is acquired, the wait budget runs out
// (CONFLICT) or ctx is done.
func (l *RedisProductLocker) Lock(ctx context.Context, productID uuid.UUID) (func(), error) {
	key := l.keyPrefix + productID.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire product lock: %w", err)
		}
		if ok {
			return l.releaser(key, token), nil
		}
		if time.Now().After(deadline) {
			return nil, lockBusyError(productID)
		}

		timer := time.NewTimer(lockRetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisProductLocker) releaser(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// Release even when the request context is already cancelled
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				l.logger.Warn("failed to release product lock", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

// LocalProductLocker serializes per-product writes within one process
type LocalProductLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*localLock
	wait  time.Duration
}

type localLock struct {
	sem  chan struct{}
	refs int
}

// NewLocalProductLocker creates an in-process locker. Waiters give up with
// CONFLICT after wait.
func NewLocalProductLocker(wait time.Duration) *LocalProductLocker {
	if wait <= 0 {
		wait = defaultLockWait
	}
	return &LocalProductLocker{
		locks: make(map[uuid.UUID]*localLock),
		wait:  wait,
	}
}

// Lock blocks until the product's lock is free, wait elapses or ctx is done
func (l *LocalProductLocker) Lock(ctx context.Context, productID uuid.UUID) (func(), error) {
	lk := l.acquireRef(productID)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case lk.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-lk.sem
				l.releaseRef(productID)
			})
		}, nil
	case <-ctx.Done():
		l.releaseRef(productID)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseRef(productID)
		return nil, lockBusyError(productID)
	}
}

func (l *LocalProductLocker) acquireRef(productID uuid.UUID) *localLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.locks[productID]
	if !ok {
		lk = &localLock{sem: make(chan struct{}, 1)}
		l.locks[productID] = lk
	}
	lk.refs++
	return lk
}

func (l *LocalProductLocker) releaseRef(productID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk := l.locks[productID]
	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, productID)
	}
}

var (
	_ appcatalog.ProductLocker = (*RedisProductLocker)(nil)
	_ appcatalog.ProductLocker = (*LocalProductLocker)(nil)
)
