package scoring

import (
	"testing"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

func results(scores map[string]int) map[string]domain.CategoryResult {
	out := make(map[string]domain.CategoryResult, len(scores))
	for name, s := range scores {
		out[name] = domain.CategoryResult{Score: s}
	}
	return out
}

func TestComposite_ResumeWeights(t *testing.T) {
	cfg := DefaultConfig()

	// 0.35*100 + 0.25*80 + 0.25*60 + 0.15*40 = 76
	got := cfg.Composite(domain.KindResume, results(map[string]int{
		CategoryKeywords:   100,
		CategoryFormatting: 80,
		CategoryContent:    60,
		CategoryTechnical:  40,
	}))
	if got != 76 {
		t.Errorf("expected composite 76, got %d", got)
	}
}

func TestComposite_ProfileWeights(t *testing.T) {
	cfg := DefaultConfig()

	// 0.25*80 + 0.25*60 + 0.25*40 + 0.15*100 + 0.10*100 = 70
	got := cfg.Composite(domain.KindProfile, results(map[string]int{
		CategoryHeadline:   80,
		CategorySummary:    60,
		CategoryExperience: 40,
		CategorySkills:     100,
		CategoryEngagement: 100,
	}))
	if got != 70 {
		t.Errorf("expected composite 70, got %d", got)
	}
}

func TestComposite_MissingCategoryContributesZero(t *testing.T) {
	cfg := DefaultConfig()

	got := cfg.Composite(domain.KindResume, results(map[string]int{CategoryKeywords: 100}))
	if got != 35 {
		t.Errorf("expected composite 35 with only keywords present, got %d", got)
	}
}

func TestComposite_Rounds(t *testing.T) {
	cfg := DefaultConfig()

	// 0.35*33 = 11.55 → rounds to 12.
	got := cfg.Composite(domain.KindResume, results(map[string]int{CategoryKeywords: 33}))
	if got != 12 {
		t.Errorf("expected rounded composite 12, got %d", got)
	}
}

func TestComposite_BoundedForAllScores(t *testing.T) {
	cfg := DefaultConfig()

	all100 := results(map[string]int{
		CategoryKeywords:   100,
		CategoryFormatting: 100,
		CategoryContent:    100,
		CategoryTechnical:  100,
	})
	if got := cfg.Composite(domain.KindResume, all100); got != 100 {
		t.Errorf("perfect sub-scores must compose to 100, got %d", got)
	}
	if got := cfg.Composite(domain.KindResume, results(nil)); got != 0 {
		t.Errorf("no categories must compose to 0, got %d", got)
	}
}
