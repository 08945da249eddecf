package ports

import (
	"context"
	"time"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// BillingUpdate is the absolute billing state applied to a user by the
// subscription reconciler. Nil pointer fields are left untouched.
type BillingUpdate struct {
	Plan           *domain.Plan
	PlanStatus     *domain.PlanStatus
	PlanExpires    *time.Time
	ClearExpiry    bool
	CustomerID     string
	SubscriptionID string
	// ResetUsage zeroes the scan counters and stamps Usage.ResetAt.
	// EventID records the provider event id that caused the reset so a
	// redelivered event is not applied twice.
	ResetUsage bool
	EventID    string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID string) (*domain.User, error)

	// ApplyBilling applies an absolute billing state update. When
	// update.ResetUsage is set and the user's last applied billing event id
	// already equals update.EventID, the counter reset is skipped.
	ApplyBilling(ctx context.Context, userID string, update BillingUpdate) error

	// IncrementScanCount atomically consumes one scan slot for kind.
	// Counters stamped before periodStart are first reset (lazy calendar
	// rollover); otherwise the increment only applies while the counter is
	// below limit (limit < 0 means no bound). Returns domain.ErrQuotaRace
	// when the guard fails, so two concurrent scans cannot overshoot the
	// plan limit.
	IncrementScanCount(ctx context.Context, userID string, kind domain.DocumentKind, limit int, periodStart time.Time) error

	// DecrementScanCount releases one previously consumed scan slot. Used to
	// compensate when persisting the scan fails after the increment.
	DecrementScanCount(ctx context.Context, userID string, kind domain.DocumentKind) error
}
