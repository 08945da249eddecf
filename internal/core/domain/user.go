package domain

import (
	"errors"
	"time"
)

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Plan is the subscription tier controlling feature and usage entitlements.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanOneTime Plan = "one_time"
	PlanBasic   Plan = "basic"
	PlanPro     Plan = "pro"
)

// PlanStatus mirrors the billing provider's subscription state.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCancelled PlanStatus = "cancelled"
	PlanExpired   PlanStatus = "expired"
	PlanPending   PlanStatus = "pending"
	PlanPastDue   PlanStatus = "past_due"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidPlan = errors.New("invalid plan")

// ErrQuotaRace is returned by the atomic counter increment when the guarded
// condition fails, meaning a concurrent scan consumed the last slot.
var ErrQuotaRace = errors.New("scan quota consumed concurrently")

// ValidPlan reports whether p is one of the known tiers.
func ValidPlan(p Plan) bool {
	switch p {
	case PlanFree, PlanOneTime, PlanBasic, PlanPro:
		return true
	}
	return false
}

// Usage holds per-kind scan counters for the current period. Counters only
// grow within a period; a new period starts on plan changes, successful
// renewal payments, admin overrides, or at the start of a calendar month,
// whichever comes first.
type Usage struct {
	ResumeScans  int       `json:"resume_scans" bson:"resume_scans"`
	ProfileScans int       `json:"profile_scans" bson:"profile_scans"`
	ResetAt      time.Time `json:"reset_at" bson:"reset_at"`
}

// MonthStartUTC returns midnight UTC on the first day of t's month, the
// boundary at which scan counters restart.
func MonthStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Current returns the usage effective at now: counters stamped before the
// current calendar month read as zero. The stored record is rewritten lazily
// by the next scan's increment, so reads never mutate state.
func (u Usage) Current(now time.Time) Usage {
	start := MonthStartUTC(now)
	if !u.ResetAt.Before(start) {
		return u
	}
	return Usage{ResetAt: start}
}

// User models an account with its billing linkage and usage state.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         string     `json:"role" bson:"role"`
	Plan         Plan       `json:"plan" bson:"plan"`
	PlanStatus   PlanStatus `json:"plan_status" bson:"plan_status"`
	PlanExpires  *time.Time `json:"plan_expires,omitempty" bson:"plan_expires,omitempty"`

	CustomerID     string `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	SubscriptionID string `json:"subscription_id,omitempty" bson:"subscription_id,omitempty"`
	// LastBillingEventID records the provider event id whose usage-counter
	// reset was last applied, making resets idempotent under redelivery.
	LastBillingEventID string `json:"-" bson:"last_billing_event_id,omitempty"`

	Usage     Usage     `json:"usage" bson:"usage"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
