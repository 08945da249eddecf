package ports

import (
	"context"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// ListAnalysesFilter carries the query parameters for listing analyses.
// UserID is always enforced by the service layer for non-admin callers.
type ListAnalysesFilter struct {
	UserID string // empty = no filter (admin); non-empty = scoped to owner
	Kind   string // optional: filter by document kind
	Status string // optional: filter by lifecycle status
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// AnalysisRepository defines persistence operations for analyses.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) (string, error)
	// FindByID retrieves an analysis. When userID is non-empty the query is
	// additionally scoped to the owner.
	FindByID(ctx context.Context, id string, userID string) (*domain.Analysis, error)
	// List returns a page of analyses matching filter and the total count.
	List(ctx context.Context, filter ListAnalysesFilter) ([]*domain.Analysis, int64, error)
	// SaveOptimized persists the cached optimized variant for an analysis.
	SaveOptimized(ctx context.Context, id string, content string, profile *domain.ProfileFields) error
	// SaveComparison persists the before/after comparison record.
	SaveComparison(ctx context.Context, id string, cmp *domain.Comparison) error
}
