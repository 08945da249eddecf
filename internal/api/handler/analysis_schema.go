package handler

import (
	"time"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type scanResumeRequest struct {
	Text string `json:"text" validate:"required"`
}

type experienceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

type scanProfileRequest struct {
	Headline    string              `json:"headline"`
	Summary     string              `json:"summary"`
	Experience  []experienceRequest `json:"experience"`
	Skills      []string            `json:"skills"`
	Education   []string            `json:"education"`
	Connections int                 `json:"connections" validate:"min=0"`
}

type analysisLinks struct {
	Self     string `json:"self"`
	Optimize string `json:"optimize"`
	Compare  string `json:"compare"`
}

type scanResponse struct {
	ID             string                           `json:"id"`
	Kind           string                           `json:"kind"`
	Status         string                           `json:"status"`
	CompositeScore int                              `json:"composite_score"`
	Categories     map[string]domain.CategoryResult `json:"categories"`
	Suggestions    []domain.Suggestion              `json:"suggestions"`
	CreatedAt      time.Time                        `json:"created_at"`
	Links          analysisLinks                    `json:"_links"`
}

type listAnalysesResponse struct {
	Items      []*domain.Analysis `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type optimizeResponse struct {
	ID      string                `json:"id"`
	Kind    string                `json:"kind"`
	Content string                `json:"content,omitempty"`
	Profile *domain.ProfileFields `json:"profile,omitempty"`
	Cached  bool                  `json:"cached"`
}

// --- Mappers ---

func toProfileFields(req scanProfileRequest) domain.ProfileFields {
	experience := make([]domain.ExperienceEntry, 0, len(req.Experience))
	for _, e := range req.Experience {
		experience = append(experience, domain.ExperienceEntry{
			Title:       e.Title,
			Company:     e.Company,
			Description: e.Description,
		})
	}
	return domain.ProfileFields{
		Headline:    req.Headline,
		Summary:     req.Summary,
		Experience:  experience,
		Skills:      req.Skills,
		Education:   req.Education,
		Connections: req.Connections,
	}
}

func toScanResponse(result *ports.ScanResult) scanResponse {
	return scanResponse{
		ID:             result.ID,
		Kind:           string(result.Kind),
		Status:         string(result.Status),
		CompositeScore: result.CompositeScore,
		Categories:     result.Categories,
		Suggestions:    result.Suggestions,
		CreatedAt:      result.CreatedAt,
		Links: analysisLinks{
			Self:     "/v1/analyses/" + result.ID,
			Optimize: "/v1/analyses/" + result.ID + "/optimize",
			Compare:  "/v1/analyses/" + result.ID + "/compare",
		},
	}
}
