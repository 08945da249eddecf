package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
	"github.com/cvboost/scoring-system/internal/core/scoring"
)

const (
	minResumeLength = 100 // characters; shorter input is rejected before scoring
	maxPageLimit    = 100
	defaultLimit    = 20
)

// AnalysisService implements the scan, fetch, optimize, and compare use cases.
type AnalysisService struct {
	analyses ports.AnalysisRepository
	users    ports.UserRepository
	rubric   *scoring.Config
	logger   zerolog.Logger
}

func NewAnalysisService(analyses ports.AnalysisRepository, users ports.UserRepository, rubric *scoring.Config, logger zerolog.Logger) *AnalysisService {
	return &AnalysisService{analyses: analyses, users: users, rubric: rubric, logger: logger}
}

// ScanResume validates, gates, scores, and persists a résumé scan. The usage
// counter is incremented atomically only after the analysis is stored.
func (s *AnalysisService) ScanResume(ctx context.Context, input ports.ScanResumeInput) (*ports.ScanResult, error) {
	if len(strings.TrimSpace(input.Text)) < minResumeLength {
		return nil, domain.ErrTextTooShort
	}

	user, err := s.gate(ctx, input.UserID, domain.ActionResumeScan)
	if err != nil {
		return nil, err
	}

	categories := s.rubric.ScoreResume(input.Text)
	analysis := &domain.Analysis{
		UserID:         input.UserID,
		Kind:           domain.KindResume,
		Status:         domain.AnalysisCompleted,
		CreatedAt:      time.Now().UTC(),
		Text:           input.Text,
		Categories:     categories,
		CompositeScore: s.rubric.Composite(domain.KindResume, categories),
		Suggestions:    s.rubric.Suggest(domain.KindResume, categories),
	}

	return s.finishScan(ctx, user, analysis)
}

// ScanProfile gates, scores, and persists a profile scan.
func (s *AnalysisService) ScanProfile(ctx context.Context, input ports.ScanProfileInput) (*ports.ScanResult, error) {
	user, err := s.gate(ctx, input.UserID, domain.ActionProfileScan)
	if err != nil {
		return nil, err
	}

	profile := input.Profile
	categories := s.rubric.ScoreProfile(profile)
	analysis := &domain.Analysis{
		UserID:         input.UserID,
		Kind:           domain.KindProfile,
		Status:         domain.AnalysisCompleted,
		CreatedAt:      time.Now().UTC(),
		Profile:        &profile,
		Categories:     categories,
		CompositeScore: s.rubric.Composite(domain.KindProfile, categories),
		Suggestions:    s.rubric.Suggest(domain.KindProfile, categories),
	}

	return s.finishScan(ctx, user, analysis)
}

// gate loads the user and applies the pure entitlement check for action.
func (s *AnalysisService) gate(ctx context.Context, userID string, action domain.Action) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("scan gate: %w", err)
	}

	now := time.Now().UTC()
	if !user.CanPerform(action, now) {
		denial := user.Deny(action, now)
		s.logger.Info().
			Str("user_id", userID).
			Str("action", string(action)).
			Str("reason", denial.Reason).
			Msg("scan denied by usage gate")
		return nil, denial
	}
	return user, nil
}

// finishScan consumes one usage slot with an atomic conditional increment and
// then persists the analysis. The slot is taken first so a lost race never
// leaves a retrievable scan behind; a failed persist releases the slot again.
func (s *AnalysisService) finishScan(ctx context.Context, user *domain.User, analysis *domain.Analysis) (*ports.ScanResult, error) {
	now := time.Now().UTC()
	limit, _ := domain.ScanLimit(user.Plan)
	if err := s.users.IncrementScanCount(ctx, user.ID, analysis.Kind, limit, domain.MonthStartUTC(now)); err != nil {
		if errors.Is(err, domain.ErrQuotaRace) {
			return nil, user.Deny(domain.ScanAction(analysis.Kind), now)
		}
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to increment usage counter")
		return nil, err
	}

	id, err := s.analyses.Create(ctx, analysis)
	if err != nil {
		if decErr := s.users.DecrementScanCount(ctx, user.ID, analysis.Kind); decErr != nil {
			s.logger.Error().Err(decErr).Str("user_id", user.ID).Msg("failed to release scan slot")
		}
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to persist analysis")
		return nil, err
	}

	s.logger.Info().
		Str("analysis_id", id).
		Str("user_id", user.ID).
		Str("kind", string(analysis.Kind)).
		Int("score", analysis.CompositeScore).
		Msg("scan completed")

	return &ports.ScanResult{
		ID:             id,
		Kind:           analysis.Kind,
		Status:         analysis.Status,
		CompositeScore: analysis.CompositeScore,
		Categories:     analysis.Categories,
		Suggestions:    analysis.Suggestions,
		CreatedAt:      analysis.CreatedAt,
	}, nil
}

// Get returns a single analysis, scoped to the owner for non-admin callers.
func (s *AnalysisService) Get(ctx context.Context, input ports.GetAnalysisInput) (*domain.Analysis, error) {
	ownerScope := input.UserID
	if input.Role == domain.RoleAdmin {
		ownerScope = ""
	}
	return s.analyses.FindByID(ctx, input.ID, ownerScope)
}

// List returns a page of analyses. Members are always scoped to their own.
func (s *AnalysisService) List(ctx context.Context, input ports.ListAnalysesInput) (*ports.ListAnalysesResult, error) {
	filter := ports.ListAnalysesFilter{
		UserID: input.UserID,
		Kind:   input.Kind,
		Status: input.Status,
		Page:   input.Page,
		Limit:  input.Limit,
	}
	if input.Role == domain.RoleAdmin {
		filter.UserID = ""
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.analyses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListAnalysesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Optimize returns the cached optimized variant, generating it on first call.
// Generation is deterministic from stored facts, so the cache never goes
// stale; once present it is returned as-is forever.
func (s *AnalysisService) Optimize(ctx context.Context, input ports.GetAnalysisInput) (*ports.OptimizeResult, error) {
	analysis, err := s.entitledAnalysis(ctx, input, domain.ActionContentExport)
	if err != nil {
		return nil, err
	}

	if analysis.OptimizedContent != "" || analysis.OptimizedProfile != nil {
		return &ports.OptimizeResult{
			ID:      analysis.ID,
			Kind:    analysis.Kind,
			Content: analysis.OptimizedContent,
			Profile: analysis.OptimizedProfile,
			Cached:  true,
		}, nil
	}

	result := &ports.OptimizeResult{ID: analysis.ID, Kind: analysis.Kind}
	switch analysis.Kind {
	case domain.KindResume:
		result.Content = s.rubric.OptimizeResume(analysis.Text, analysis.Categories)
	case domain.KindProfile:
		optimized := s.rubric.OptimizeProfile(*analysis.Profile, analysis.Categories)
		result.Profile = &optimized
	}

	if err := s.analyses.SaveOptimized(ctx, analysis.ID, result.Content, result.Profile); err != nil {
		s.logger.Error().Err(err).Str("analysis_id", analysis.ID).Msg("failed to cache optimized content")
		return nil, err
	}

	s.logger.Info().Str("analysis_id", analysis.ID).Str("kind", string(analysis.Kind)).Msg("optimized content generated")
	return result, nil
}

// Compare rescores the optimized variant and returns the before/after record.
func (s *AnalysisService) Compare(ctx context.Context, input ports.GetAnalysisInput) (*domain.Comparison, error) {
	analysis, err := s.entitledAnalysis(ctx, input, domain.ActionComparisonView)
	if err != nil {
		return nil, err
	}

	var after map[string]domain.CategoryResult
	switch {
	case analysis.Kind == domain.KindResume && analysis.OptimizedContent != "":
		after = s.rubric.ScoreResume(analysis.OptimizedContent)
	case analysis.Kind == domain.KindProfile && analysis.OptimizedProfile != nil:
		after = s.rubric.ScoreProfile(*analysis.OptimizedProfile)
	default:
		return nil, domain.ErrNoOptimizedContent
	}

	cmp := s.rubric.Compare(analysis.Kind, analysis.Categories, after)
	cmp.GeneratedAt = time.Now().UTC()

	if err := s.analyses.SaveComparison(ctx, analysis.ID, &cmp); err != nil {
		s.logger.Warn().Err(err).Str("analysis_id", analysis.ID).Msg("failed to persist comparison record")
	}
	return &cmp, nil
}

// entitledAnalysis loads the analysis with ownership scoping and checks the
// caller's plan entitlement for the derived-content action.
func (s *AnalysisService) entitledAnalysis(ctx context.Context, input ports.GetAnalysisInput, action domain.Action) (*domain.Analysis, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("load caller: %w", err)
	}

	now := time.Now().UTC()
	if user.Role != domain.RoleAdmin && !user.CanPerform(action, now) {
		return nil, user.Deny(action, now)
	}

	ownerScope := input.UserID
	if user.Role == domain.RoleAdmin {
		ownerScope = ""
	}
	analysis, err := s.analyses.FindByID(ctx, input.ID, ownerScope)
	if err != nil {
		return nil, err
	}
	if analysis.Status != domain.AnalysisCompleted {
		return nil, domain.ErrAnalysisNotCompleted
	}
	return analysis, nil
}
