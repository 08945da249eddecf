package scoring

import (
	"math"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// Composite computes the weighted composite score for a document kind from
// its category sub-scores. A category missing from results contributes 0.
// Rounding is half-away-from-zero to the nearest integer.
func (c *Config) Composite(kind domain.DocumentKind, results map[string]domain.CategoryResult) int {
	weights := c.ResumeWeights
	if kind == domain.KindProfile {
		weights = c.ProfileWeights
	}

	var sum float64
	for category, w := range weights {
		if r, ok := results[category]; ok {
			sum += w * float64(r.Score)
		}
	}
	return cap100(int(math.Round(sum)))
}
