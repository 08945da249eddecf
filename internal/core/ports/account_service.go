package ports

import (
	"context"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// AccountService exposes the plan/usage snapshot and the admin plan override.
type AccountService interface {
	Snapshot(ctx context.Context, userID string) (*domain.User, error)
	OverridePlan(ctx context.Context, userID string, plan domain.Plan) (*domain.User, error)
}
