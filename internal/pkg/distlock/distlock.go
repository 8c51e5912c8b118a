// Package distlock provides the per-campaign dispatch lock: at most one
// dispatch operation may be in flight for a campaign at a time, across all
// processes. Redis is the preferred backend; PostgreSQL advisory locks are
// the fallback when Redis is not configured.
package distlock

import (
	"context"
	"database/sql"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lock is a non-blocking distributed lock. A Lock instance is single-use:
// acquire, do work, release.
type Lock interface {
	// Acquire tries to take the lock. Returns false if it is already held.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if this instance still owns it.
	Release(ctx context.Context) error
}

// Factory creates locks for named resources.
type Factory interface {
	DispatchLock(campaignID string) Lock
}

// NewFactory returns a lock factory using the best available backend. TTL
// bounds how long a crashed dispatcher can keep a campaign locked.
func NewFactory(redisClient *redis.Client, db *sql.DB, ttl time.Duration) Factory {
	return &factory{redis: redisClient, db: db, ttl: ttl}
}

type factory struct {
	redis *redis.Client
	db    *sql.DB
	ttl   time.Duration
}

func (f *factory) DispatchLock(campaignID string) Lock {
	key := "dispatch:campaign:" + campaignID
	if f.redis != nil {
		return NewRedisLock(f.redis, key, f.ttl)
	}
	return NewPGAdvisoryLock(f.db, key)
}

// PGAdvisoryLock implements Lock using pg_try_advisory_lock. The lock is
// session-scoped, so it clears automatically if the DB connection drops.
type PGAdvisoryLock struct {
	db     *sql.DB
	lockID int64
}

// NewPGAdvisoryLock creates an advisory lock with a deterministic lock ID
// derived from the key string.
func NewPGAdvisoryLock(db *sql.DB, key string) *PGAdvisoryLock {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &PGAdvisoryLock{db: db, lockID: int64(h.Sum64())}
}

// Acquire tries to take the advisory lock without blocking.
func (l *PGAdvisoryLock) Acquire(ctx context.Context) (bool, error) {
	var acquired bool
	err := l.db.QueryRowContext(ctx, "SELECT pg_try_advisory_lock($1)", l.lockID).Scan(&acquired)
	return acquired, err
}

// Release releases the advisory lock.
func (l *PGAdvisoryLock) Release(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", l.lockID)
	return err
}
