package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) keyed by provider
// event id.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type billingService struct {
	users  ports.UserRepository
	events ports.BillingEventRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewBillingService returns a BillingService implementation.
func NewBillingService(users ports.UserRepository, events ports.BillingEventRepository, dedup DedupChecker, log zerolog.Logger) ports.BillingService {
	return &billingService{users: users, events: events, dedup: dedup, log: log}
}

// Process applies one provider webhook event to the owning user's billing
// state. Every transition sets absolute state, so reapplying an event is
// harmless; the usage-counter reset is additionally guarded by the event id
// (Redis fast path plus the persisted last-applied id on the user record).
// Unresolvable users and unknown variants are logged and dropped, never
// returned as errors, so the provider always sees an acknowledgement.
func (s *billingService) Process(ctx context.Context, in ports.BillingEventInput) error {
	event := toDomainEvent(in)

	if !domain.KnownEventType(event.Type) {
		s.log.Warn().Str("event_id", event.EventID).Str("type", string(event.Type)).Msg("unknown billing event type, dropped")
		return nil
	}

	// Idempotency fast path. A dedup store failure is not fatal: the
	// per-user last-applied id still protects the counter reset.
	isDup, err := s.dedup.IsDuplicate(ctx, event.EventID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", event.EventID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", event.EventID).Str("type", string(event.Type)).Msg("duplicate billing event skipped")
		return nil
	}

	user, err := s.resolveUser(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().
				Str("event_id", event.EventID).
				Str("type", string(event.Type)).
				Str("subscription_id", event.SubscriptionID).
				Msg("billing event for unknown user, dropped")
			return nil
		}
		return fmt.Errorf("process billing event: %w", err)
	}

	update, ok := s.transition(event, user)
	if !ok {
		return nil
	}

	if err := s.users.ApplyBilling(ctx, user.ID, update); err != nil {
		return fmt.Errorf("process billing event: apply: %w", err)
	}

	if markErr := s.dedup.Mark(ctx, event.EventID); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", event.EventID).Msg("failed to set dedup key")
	}

	// Audit trail insert is best effort.
	if err := s.events.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event_id", event.EventID).Msg("failed to insert billing audit event")
	}

	s.log.Info().
		Str("event_id", event.EventID).
		Str("type", string(event.Type)).
		Str("user_id", user.ID).
		Msg("billing event applied")

	return nil
}

// resolveUser finds the event's owner: order/created events carry only the
// customer email, everything else resolves through the subscription id.
func (s *billingService) resolveUser(ctx context.Context, event *domain.BillingEvent) (*domain.User, error) {
	switch event.Type {
	case domain.EventOrderCreated, domain.EventSubscriptionCreated:
		return s.users.FindByEmail(ctx, event.CustomerEmail)
	default:
		return s.users.FindBySubscriptionID(ctx, event.SubscriptionID)
	}
}

// transition maps one event variant to the absolute billing state it sets.
// The second return is false when the event is intentionally ignored.
func (s *billingService) transition(event *domain.BillingEvent, user *domain.User) (ports.BillingUpdate, bool) {
	switch event.Type {
	case domain.EventOrderCreated:
		plan := domain.ResolvePlan(event.VariantID)
		if plan != domain.PlanOneTime {
			// Subscription purchases arrive as subscription_created; the
			// order event only matters for the one-time product.
			return ports.BillingUpdate{}, false
		}
		return ports.BillingUpdate{
			Plan:       planPtr(domain.PlanOneTime),
			PlanStatus: statusPtr(domain.PlanActive),
			CustomerID: event.CustomerID,
			ResetUsage: true,
			EventID:    event.EventID,
		}, true

	case domain.EventSubscriptionCreated:
		plan := domain.ResolvePlan(event.VariantID)
		status := domain.PlanPending
		if domain.StatusFromProvider(event.ProviderStatus) == domain.PlanActive {
			status = domain.PlanActive
		}
		return ports.BillingUpdate{
			Plan:           planPtr(plan),
			PlanStatus:     statusPtr(status),
			PlanExpires:    event.RenewsAt,
			CustomerID:     event.CustomerID,
			SubscriptionID: event.SubscriptionID,
			ResetUsage:     true,
			EventID:        event.EventID,
		}, true

	case domain.EventSubscriptionUpdated:
		status := domain.StatusFromProvider(event.ProviderStatus)
		return ports.BillingUpdate{
			PlanStatus:  statusPtr(status),
			PlanExpires: event.RenewsAt,
			EventID:     event.EventID,
		}, true

	case domain.EventSubscriptionResumed:
		return ports.BillingUpdate{
			PlanStatus:  statusPtr(domain.PlanActive),
			PlanExpires: event.RenewsAt,
			EventID:     event.EventID,
		}, true

	case domain.EventSubscriptionCancelled:
		return ports.BillingUpdate{
			PlanStatus: statusPtr(domain.PlanCancelled),
			EventID:    event.EventID,
		}, true

	case domain.EventSubscriptionExpired:
		return ports.BillingUpdate{
			Plan:        planPtr(domain.PlanFree),
			PlanStatus:  statusPtr(domain.PlanExpired),
			ClearExpiry: true,
			EventID:     event.EventID,
		}, true

	case domain.EventPaymentSuccess:
		return ports.BillingUpdate{
			ResetUsage: true,
			EventID:    event.EventID,
		}, true

	case domain.EventPaymentFailed:
		return ports.BillingUpdate{
			PlanStatus: statusPtr(domain.PlanPastDue),
			EventID:    event.EventID,
		}, true
	}

	s.log.Warn().Str("event_id", event.EventID).Str("type", string(event.Type)).Str("user_id", user.ID).Msg("unhandled billing event type")
	return ports.BillingUpdate{}, false
}

func toDomainEvent(in ports.BillingEventInput) *domain.BillingEvent {
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return &domain.BillingEvent{
		EventID:        in.EventID,
		Type:           domain.BillingEventType(in.Type),
		CustomerID:     in.CustomerID,
		SubscriptionID: in.SubscriptionID,
		CustomerEmail:  in.CustomerEmail,
		VariantID:      in.VariantID,
		ProviderStatus: in.ProviderStatus,
		RenewsAt:       in.RenewsAt,
		OccurredAt:     occurred,
	}
}

func planPtr(p domain.Plan) *domain.Plan               { return &p }
func statusPtr(s domain.PlanStatus) *domain.PlanStatus { return &s }
