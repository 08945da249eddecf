package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

const collectionBillingEvents = "billing_events"

// BillingEventRepository persists processed webhook events to an audit
// collection. Writes are best effort; the reconciler treats failures as
// non-fatal.
type BillingEventRepository struct {
	col *mongo.Collection
}

func NewBillingEventRepository(db *mongo.Database) ports.BillingEventRepository {
	return &BillingEventRepository{col: db.Collection(collectionBillingEvents)}
}

func (r *BillingEventRepository) InsertEvent(ctx context.Context, event *domain.BillingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, bson.M{
		"event_id":        event.EventID,
		"type":            event.Type,
		"customer_id":     event.CustomerID,
		"subscription_id": event.SubscriptionID,
		"customer_email":  event.CustomerEmail,
		"variant_id":      event.VariantID,
		"provider_status": event.ProviderStatus,
		"renews_at":       event.RenewsAt,
		"occurred_at":     event.OccurredAt,
		"recorded_at":     time.Now().UTC(),
	})
	return err
}
