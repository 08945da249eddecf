package domain

import "time"

// BillingEventType enumerates the webhook event variants the provider sends.
type BillingEventType string

const (
	EventOrderCreated          BillingEventType = "order_created"
	EventSubscriptionCreated   BillingEventType = "subscription_created"
	EventSubscriptionUpdated   BillingEventType = "subscription_updated"
	EventSubscriptionCancelled BillingEventType = "subscription_cancelled"
	EventSubscriptionResumed   BillingEventType = "subscription_resumed"
	EventSubscriptionExpired   BillingEventType = "subscription_expired"
	EventPaymentSuccess        BillingEventType = "subscription_payment_success"
	EventPaymentFailed         BillingEventType = "subscription_payment_failed"
)

// KnownEventType reports whether t is a variant this system handles.
func KnownEventType(t BillingEventType) bool {
	switch t {
	case EventOrderCreated, EventSubscriptionCreated, EventSubscriptionUpdated,
		EventSubscriptionCancelled, EventSubscriptionResumed,
		EventSubscriptionExpired, EventPaymentSuccess, EventPaymentFailed:
		return true
	}
	return false
}

// BillingEvent is the normalized form of one provider webhook delivery.
// EventID is the provider's unique delivery id and drives idempotency.
type BillingEvent struct {
	EventID        string
	Type           BillingEventType
	CustomerID     string
	SubscriptionID string
	CustomerEmail  string
	VariantID      string
	ProviderStatus string
	RenewsAt       *time.Time
	OccurredAt     time.Time
}

// variantPlans maps provider product variant ids to internal tiers.
// Unmapped variants resolve to the one-time tier.
var variantPlans = map[string]Plan{
	"variant_onetime_scan": PlanOneTime,
	"variant_basic_month":  PlanBasic,
	"variant_basic_year":   PlanBasic,
	"variant_pro_month":    PlanPro,
	"variant_pro_year":     PlanPro,
}

// ResolvePlan maps a provider variant id to an internal plan tier.
func ResolvePlan(variantID string) Plan {
	if p, ok := variantPlans[variantID]; ok {
		return p
	}
	return PlanOneTime
}

// StatusFromProvider maps the provider's free-form subscription status string
// to an internal PlanStatus. Unknown statuses map to pending, the safest
// non-entitling state.
func StatusFromProvider(s string) PlanStatus {
	switch s {
	case "active", "on_trial":
		return PlanActive
	case "cancelled":
		return PlanCancelled
	case "expired":
		return PlanExpired
	case "past_due", "unpaid":
		return PlanPastDue
	default:
		return PlanPending
	}
}
