package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

// AccountService exposes the plan/usage snapshot and the administrative
// plan override.
type AccountService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAccountService(users ports.UserRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{users: users, logger: logger}
}

// Snapshot returns the user's current plan and usage state.
func (s *AccountService) Snapshot(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// OverridePlan sets the user's plan directly and resets the usage counters,
// the same reset operation the billing reconciler applies on plan changes.
func (s *AccountService) OverridePlan(ctx context.Context, userID string, plan domain.Plan) (*domain.User, error) {
	if !domain.ValidPlan(plan) {
		return nil, domain.ErrInvalidPlan
	}

	update := ports.BillingUpdate{
		Plan:        planPtr(plan),
		PlanStatus:  statusPtr(domain.PlanActive),
		ClearExpiry: true,
		ResetUsage:  true,
		EventID:     fmt.Sprintf("admin-override-%d", time.Now().UnixNano()),
	}
	if err := s.users.ApplyBilling(ctx, userID, update); err != nil {
		return nil, fmt.Errorf("override plan: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("plan", string(plan)).Msg("plan overridden by admin")
	return s.users.FindByID(ctx, userID)
}
