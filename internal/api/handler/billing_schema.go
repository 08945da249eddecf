package handler

import (
	"time"

	"github.com/cvboost/scoring-system/internal/core/ports"
)

// webhookRequest mirrors the provider's delivery envelope: metadata under
// "meta", the subject resource under "data".
type webhookRequest struct {
	Meta webhookMeta `json:"meta" validate:"required"`
	Data webhookData `json:"data" validate:"required"`
}

type webhookMeta struct {
	EventID   string `json:"event_id"   validate:"required"`
	EventName string `json:"event_name" validate:"required"`
}

type webhookData struct {
	ID         string            `json:"id"`
	Attributes webhookAttributes `json:"attributes"`
}

type webhookAttributes struct {
	CustomerID     string     `json:"customer_id"`
	UserEmail      string     `json:"user_email"`
	VariantID      string     `json:"variant_id"`
	Status         string     `json:"status"`
	RenewsAt       *time.Time `json:"renews_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	FirstOrderItem *orderItem `json:"first_order_item,omitempty"`
}

// orderItem appears on order_created payloads, where the variant lives on
// the line item rather than the subscription.
type orderItem struct {
	VariantID string `json:"variant_id"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

// toBillingEventInput normalizes the provider envelope into the service DTO.
func toBillingEventInput(req webhookRequest) ports.BillingEventInput {
	attrs := req.Data.Attributes
	variantID := attrs.VariantID
	subscriptionID := req.Data.ID
	if attrs.FirstOrderItem != nil {
		variantID = attrs.FirstOrderItem.VariantID
		subscriptionID = ""
	}
	return ports.BillingEventInput{
		EventID:        req.Meta.EventID,
		Type:           req.Meta.EventName,
		CustomerID:     attrs.CustomerID,
		SubscriptionID: subscriptionID,
		CustomerEmail:  attrs.UserEmail,
		VariantID:      variantID,
		ProviderStatus: attrs.Status,
		RenewsAt:       attrs.RenewsAt,
		OccurredAt:     attrs.CreatedAt,
	}
}
