package distlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisLockExclusive(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	a := NewRedisLock(client, "dispatch:campaign:c-1", time.Minute)
	b := NewRedisLock(client, "dispatch:campaign:c-1", time.Minute)

	ok, err := a.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	ok, err = b.Acquire(ctx)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Fatal("second acquire succeeded while lock held")
	}

	if err := a.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}

	ok, err = b.Acquire(ctx)
	if err != nil || !ok {
		t.Fatalf("acquire after release: ok=%v err=%v", ok, err)
	}
}

func TestRedisLockReleaseIsOwnerOnly(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	a := NewRedisLock(client, "dispatch:campaign:c-2", time.Minute)
	b := NewRedisLock(client, "dispatch:campaign:c-2", time.Minute)

	if ok, _ := a.Acquire(ctx); !ok {
		t.Fatal("acquire failed")
	}
	// b never acquired; its release must not free a's lock.
	if err := b.Release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if ok, _ := b.Acquire(ctx); ok {
		t.Fatal("lock was stolen by non-owner release")
	}
}

func TestDifferentCampaignsDoNotContend(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	f := NewFactory(client, nil, time.Minute)
	a := f.DispatchLock("c-1")
	b := f.DispatchLock("c-2")

	if ok, _ := a.Acquire(ctx); !ok {
		t.Fatal("acquire c-1 failed")
	}
	if ok, _ := b.Acquire(ctx); !ok {
		t.Fatal("acquire c-2 failed while unrelated lock held")
	}
}
