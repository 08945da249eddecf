package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

type stubAnalysisService struct {
	scanResumeFn  func(ctx context.Context, input ports.ScanResumeInput) (*ports.ScanResult, error)
	scanProfileFn func(ctx context.Context, input ports.ScanProfileInput) (*ports.ScanResult, error)
	getFn         func(ctx context.Context, input ports.GetAnalysisInput) (*domain.Analysis, error)
	listFn        func(ctx context.Context, input ports.ListAnalysesInput) (*ports.ListAnalysesResult, error)
	optimizeFn    func(ctx context.Context, input ports.GetAnalysisInput) (*ports.OptimizeResult, error)
	compareFn     func(ctx context.Context, input ports.GetAnalysisInput) (*domain.Comparison, error)
}

func (s *stubAnalysisService) ScanResume(ctx context.Context, input ports.ScanResumeInput) (*ports.ScanResult, error) {
	return s.scanResumeFn(ctx, input)
}

func (s *stubAnalysisService) ScanProfile(ctx context.Context, input ports.ScanProfileInput) (*ports.ScanResult, error) {
	return s.scanProfileFn(ctx, input)
}

func (s *stubAnalysisService) Get(ctx context.Context, input ports.GetAnalysisInput) (*domain.Analysis, error) {
	return s.getFn(ctx, input)
}

func (s *stubAnalysisService) List(ctx context.Context, input ports.ListAnalysesInput) (*ports.ListAnalysesResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubAnalysisService) Optimize(ctx context.Context, input ports.GetAnalysisInput) (*ports.OptimizeResult, error) {
	return s.optimizeFn(ctx, input)
}

func (s *stubAnalysisService) Compare(ctx context.Context, input ports.GetAnalysisInput) (*domain.Comparison, error) {
	return s.compareFn(ctx, input)
}

func authedContext(t *testing.T, method, target, body, userID, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	c, rec := jsonContext(t, method, target, body)
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, rec
}

func TestAnalysisHandler_ScanResume_Success(t *testing.T) {
	var captured ports.ScanResumeInput
	h := NewAnalysisHandler(&stubAnalysisService{
		scanResumeFn: func(ctx context.Context, input ports.ScanResumeInput) (*ports.ScanResult, error) {
			captured = input
			return &ports.ScanResult{
				ID:             "analysis_1",
				Kind:           domain.KindResume,
				Status:         domain.AnalysisCompleted,
				CompositeScore: 72,
				CreatedAt:      time.Now().UTC(),
			}, nil
		},
	})

	c, rec := authedContext(t, http.MethodPost, "/v1/analyses/resume", `{"text":"Experienced engineer."}`, "user_1", domain.RoleMember)
	if err := h.ScanResume(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.UserID != "user_1" || captured.Text != "Experienced engineer." {
		t.Errorf("service received wrong input: %+v", captured)
	}

	var resp scanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.CompositeScore != 72 {
		t.Errorf("expected composite score 72, got %d", resp.CompositeScore)
	}
	if resp.Links.Self != "/v1/analyses/analysis_1" {
		t.Errorf("unexpected self link %q", resp.Links.Self)
	}
	if resp.Links.Optimize != "/v1/analyses/analysis_1/optimize" {
		t.Errorf("unexpected optimize link %q", resp.Links.Optimize)
	}
}

func TestAnalysisHandler_ScanResume_MissingIdentity(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{})

	c, _ := jsonContext(t, http.MethodPost, "/v1/analyses/resume", `{"text":"hello"}`)
	err := h.ScanResume(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAnalysisHandler_ScanResume_EmptyText(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{
		scanResumeFn: func(ctx context.Context, input ports.ScanResumeInput) (*ports.ScanResult, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	})

	c, _ := authedContext(t, http.MethodPost, "/v1/analyses/resume", `{"text":""}`, "user_1", domain.RoleMember)
	err := h.ScanResume(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAnalysisHandler_ScanProfile_MapsFields(t *testing.T) {
	var captured ports.ScanProfileInput
	h := NewAnalysisHandler(&stubAnalysisService{
		scanProfileFn: func(ctx context.Context, input ports.ScanProfileInput) (*ports.ScanResult, error) {
			captured = input
			return &ports.ScanResult{ID: "analysis_2", Kind: domain.KindProfile, Status: domain.AnalysisCompleted}, nil
		},
	})

	body := `{
		"headline": "Backend Engineer",
		"summary": "I build services.",
		"experience": [{"title": "Engineer", "company": "Acme", "description": "Built APIs."}],
		"skills": ["go", "redis"],
		"education": ["BSc"],
		"connections": 120
	}`
	c, rec := authedContext(t, http.MethodPost, "/v1/analyses/profile", body, "user_1", domain.RoleMember)
	if err := h.ScanProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.Profile.Headline != "Backend Engineer" || captured.Profile.Connections != 120 {
		t.Errorf("profile fields not mapped: %+v", captured.Profile)
	}
	if len(captured.Profile.Experience) != 1 || captured.Profile.Experience[0].Company != "Acme" {
		t.Errorf("experience entries not mapped: %+v", captured.Profile.Experience)
	}
}

func TestAnalysisHandler_Get_BubblesDomainErrors(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{
		getFn: func(ctx context.Context, input ports.GetAnalysisInput) (*domain.Analysis, error) {
			return nil, domain.ErrAnalysisNotFound
		},
	})

	c, _ := authedContext(t, http.MethodGet, "/v1/analyses/missing", "", "user_1", domain.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); err != domain.ErrAnalysisNotFound {
		t.Fatalf("domain errors must reach the central error handler, got %v", err)
	}
}

func TestAnalysisHandler_List_ParsesQueryParams(t *testing.T) {
	var captured ports.ListAnalysesInput
	h := NewAnalysisHandler(&stubAnalysisService{
		listFn: func(ctx context.Context, input ports.ListAnalysesInput) (*ports.ListAnalysesResult, error) {
			captured = input
			return &ports.ListAnalysesResult{Page: input.Page, Limit: input.Limit}, nil
		},
	})

	c, rec := authedContext(t, http.MethodGet, "/v1/analyses?kind=resume&status=completed&page=2&limit=10", "", "user_1", domain.RoleMember)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Kind != "resume" || captured.Status != "completed" {
		t.Errorf("filters not passed through: %+v", captured)
	}
	if captured.Page != 2 || captured.Limit != 10 {
		t.Errorf("pagination not parsed: page=%d limit=%d", captured.Page, captured.Limit)
	}
	if captured.UserID != "user_1" || captured.Role != domain.RoleMember {
		t.Errorf("identity not passed through: %+v", captured)
	}

	// Non-numeric values fall back to zero; the service applies defaults.
	c, _ = authedContext(t, http.MethodGet, "/v1/analyses?page=abc", "", "user_1", domain.RoleMember)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured.Page != 0 {
		t.Errorf("expected page 0 for a non-numeric value, got %d", captured.Page)
	}
}

func TestAnalysisHandler_Optimize_ReturnsCachedFlag(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{
		optimizeFn: func(ctx context.Context, input ports.GetAnalysisInput) (*ports.OptimizeResult, error) {
			return &ports.OptimizeResult{ID: input.ID, Kind: domain.KindResume, Content: "Optimized text.", Cached: true}, nil
		},
	})

	c, rec := authedContext(t, http.MethodPost, "/v1/analyses/analysis_1/optimize", "", "user_1", domain.RoleMember)
	c.SetParamNames("id")
	c.SetParamValues("analysis_1")

	if err := h.Optimize(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp optimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Cached || !strings.Contains(resp.Content, "Optimized") {
		t.Errorf("unexpected optimize response: %+v", resp)
	}
}
