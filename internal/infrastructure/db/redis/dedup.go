package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cvboost/scoring-system/internal/api/metrics"
)

// Webhook providers retry for up to a few days; keys must outlive the retry
// window to keep redelivered events idempotent.
const dedupTTL = 72 * time.Hour

// DedupChecker provides billing-event idempotency checks backed by Redis.
// Key format: billing:event:<provider_event_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this provider event has already been applied.
func (d *DedupChecker) IsDuplicate(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.DedupHitsTotal.Inc()
	}
	return n > 0, nil
}

// Mark records that this event has been applied (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(eventID string) string {
	return fmt.Sprintf("billing:event:%s", eventID)
}
