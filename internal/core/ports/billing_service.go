package ports

import (
	"context"
	"time"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// BillingEventInput is the DTO passed from the webhook transport to the
// reconciler. EventID is the provider's unique delivery id.
type BillingEventInput struct {
	EventID        string
	Type           string
	CustomerID     string
	SubscriptionID string
	CustomerEmail  string
	VariantID      string
	ProviderStatus string
	RenewsAt       *time.Time
	OccurredAt     time.Time
}

// BillingEventRepository persists raw events to an audit collection.
// Failures are non-fatal: the audit trail is best effort.
type BillingEventRepository interface {
	InsertEvent(ctx context.Context, event *domain.BillingEvent) error
}

// BillingService reconciles provider webhook events into user billing state.
// Process never returns an error for unresolvable users or unknown variants;
// those are logged and dropped so the provider sees an acknowledgement.
type BillingService interface {
	Process(ctx context.Context, event BillingEventInput) error
}
