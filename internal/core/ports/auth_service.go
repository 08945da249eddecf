package ports

import (
	"context"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

type AuthService interface {
	// Register creates a member account on the free plan.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
