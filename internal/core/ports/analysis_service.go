package ports

import (
	"context"
	"time"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// ScanResumeInput carries a gated résumé scan request.
type ScanResumeInput struct {
	UserID string
	Text   string
}

// ScanProfileInput carries a gated profile scan request.
type ScanProfileInput struct {
	UserID  string
	Profile domain.ProfileFields
}

// ScanResult is returned by a completed scan.
type ScanResult struct {
	ID             string
	Kind           domain.DocumentKind
	Status         domain.AnalysisStatus
	CompositeScore int
	Categories     map[string]domain.CategoryResult
	Suggestions    []domain.Suggestion
	CreatedAt      time.Time
}

// GetAnalysisInput identifies a single analysis fetch. Role and UserID
// enforce ownership: members only see their own analyses.
type GetAnalysisInput struct {
	ID     string
	Role   string
	UserID string
}

// ListAnalysesInput carries the parameters for the list endpoint.
type ListAnalysesInput struct {
	Role   string
	UserID string
	Kind   string
	Status string
	Page   int
	Limit  int
}

// ListAnalysesResult is the paginated list response.
type ListAnalysesResult struct {
	Items      []*domain.Analysis
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OptimizeResult carries the cached optimized variant.
type OptimizeResult struct {
	ID      string
	Kind    domain.DocumentKind
	Content string
	Profile *domain.ProfileFields
	Cached  bool
}

// AnalysisService defines the scan, fetch, optimize, and compare use cases.
// Scan operations consult the usage gate before scoring and increment the
// owner's counter only after the scan persists successfully.
type AnalysisService interface {
	ScanResume(ctx context.Context, input ScanResumeInput) (*ScanResult, error)
	ScanProfile(ctx context.Context, input ScanProfileInput) (*ScanResult, error)
	Get(ctx context.Context, input GetAnalysisInput) (*domain.Analysis, error)
	List(ctx context.Context, input ListAnalysesInput) (*ListAnalysesResult, error)
	Optimize(ctx context.Context, input GetAnalysisInput) (*OptimizeResult, error)
	Compare(ctx context.Context, input GetAnalysisInput) (*domain.Comparison, error)
}
