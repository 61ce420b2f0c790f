package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testLock(t *testing.T) *CampaignLock {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCampaignLock(client)
}

func TestCampaignLockExcludesSecondRun(t *testing.T) {
	lock := testLock(t)
	ctx := context.Background()
	campaignID := uuid.New()

	release, acquired, err := lock.Acquire(ctx, campaignID)
	if err != nil || !acquired {
		t.Fatalf("first acquire failed: acquired=%v err=%v", acquired, err)
	}

	_, second, err := lock.Acquire(ctx, campaignID)
	if err != nil {
		t.Fatalf("second acquire errored: %v", err)
	}
	if second {
		t.Fatal("second run must not acquire a held lock")
	}

	release()

	_, third, err := lock.Acquire(ctx, campaignID)
	if err != nil || !third {
		t.Fatalf("acquire after release failed: acquired=%v err=%v", third, err)
	}
}

func TestCampaignLockIsPerCampaign(t *testing.T) {
	lock := testLock(t)
	ctx := context.Background()

	_, first, err := lock.Acquire(ctx, uuid.New())
	if err != nil || !first {
		t.Fatalf("acquire failed: %v", err)
	}
	_, other, err := lock.Acquire(ctx, uuid.New())
	if err != nil || !other {
		t.Fatal("a lock on one campaign must not block another campaign")
	}
}

func TestCampaignLockWithoutRedisIsNoop(t *testing.T) {
	lock := NewCampaignLock(nil)

	release, acquired, err := lock.Acquire(context.Background(), uuid.New())
	if err != nil || !acquired {
		t.Fatal("nil client must always acquire")
	}
	release()
}
