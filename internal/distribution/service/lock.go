package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockTTL = 30 * time.Second

// CampaignLock serializes distribution runs per campaign with a redis SETNX
// lease. The conditional claim in the lead store already guarantees
// correctness under concurrent runs; the lock only avoids two operators
// burning the same stock and each walking away with half a run. Without redis
// the lock degrades to a no-op.
type CampaignLock struct {
	client *redis.Client
}

// NewCampaignLock creates a campaign lock. client may be nil.
func NewCampaignLock(client *redis.Client) *CampaignLock {
	return &CampaignLock{client: client}
}

func lockKey(campaignID uuid.UUID) string {
	return "distribution:lock:" + campaignID.String()
}

// Acquire takes the campaign's lease. It returns false when another run holds
// it. The returned release function is safe to call regardless.
func (l *CampaignLock) Acquire(ctx context.Context, campaignID uuid.UUID) (release func(), acquired bool, err error) {
	if l.client == nil {
		return func() {}, true, nil
	}

	key := lockKey(campaignID)
	ok, err := l.client.SetNX(ctx, key, time.Now().Format(time.RFC3339), lockTTL).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	return func() {
		// Release must survive request cancellation or the lease lingers for
		// a full TTL.
		l.client.Del(context.WithoutCancel(ctx), key)
	}, true, nil
}
