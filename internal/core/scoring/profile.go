package scoring

import (
	"strings"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

const (
	hdPtsLength  = 40
	hdPtsPipe    = 20
	hdPtsKeyword = 40

	smPtsLength      = 30
	smPtsCTA         = 25
	smPtsAchievement = 25
	smPtsKeywords    = 20

	expPtsPresent    = 30
	expPtsMultiple   = 20
	expPtsQuantified = 30
	expPtsRoleWords  = 20

	skPtsAtLeast5  = 40
	skPtsAtLeast10 = 20
	skPtsTechnical = 40

	engPtsConnections50  = 40
	engPtsConnections500 = 30
	engPtsEducation      = 30
)

// ScoreProfile runs all five profile category scorers over the structured
// fields and returns the per-category facts and sub-scores.
func (c *Config) ScoreProfile(p domain.ProfileFields) map[string]domain.CategoryResult {
	return map[string]domain.CategoryResult{
		CategoryHeadline:   c.scoreHeadline(p.Headline),
		CategorySummary:    c.scoreSummary(p.Summary),
		CategoryExperience: c.scoreExperience(p.Experience),
		CategorySkills:     c.scoreSkills(p.Skills),
		CategoryEngagement: c.scoreEngagement(p),
	}
}

func (c *Config) scoreHeadline(headline string) domain.CategoryResult {
	checks := map[string]bool{
		"length_in_range":  c.HeadlineLength.Contains(len(headline)),
		"has_separator":    strings.Contains(headline, "|"),
		"has_role_keyword": hasAny(headline, c.RoleTitles),
	}

	score := 0
	if checks["length_in_range"] {
		score += hdPtsLength
	}
	if checks["has_separator"] {
		score += hdPtsPipe
	}
	if checks["has_role_keyword"] {
		score += hdPtsKeyword
	}

	return domain.CategoryResult{
		Score:  cap100(score),
		Checks: checks,
		Counts: map[string]int{"headline_length": len(headline)},
	}
}

func (c *Config) scoreSummary(summary string) domain.CategoryResult {
	checks := map[string]bool{
		"length_in_range":  c.SummaryLength.Contains(len(summary)),
		"has_cta":          hasAny(summary, c.CTAPhrases),
		"has_achievements": hasQuantifiedAchievement(summary) || hasAny(summary, c.ActionVerbs),
		"has_keywords":     hasAny(summary, c.Languages) || hasAny(summary, c.Frameworks),
	}

	score := 0
	if checks["length_in_range"] {
		score += smPtsLength
	}
	if checks["has_cta"] {
		score += smPtsCTA
	}
	if checks["has_achievements"] {
		score += smPtsAchievement
	}
	if checks["has_keywords"] {
		score += smPtsKeywords
	}

	return domain.CategoryResult{
		Score:  cap100(score),
		Checks: checks,
		Counts: map[string]int{"summary_length": len(summary)},
	}
}

func (c *Config) scoreExperience(entries []domain.ExperienceEntry) domain.CategoryResult {
	var descriptions strings.Builder
	var titles strings.Builder
	for _, e := range entries {
		descriptions.WriteString(e.Description)
		descriptions.WriteString(" ")
		titles.WriteString(e.Title)
		titles.WriteString(" ")
	}

	checks := map[string]bool{
		"has_experience":   len(entries) > 0,
		"multiple_roles":   len(entries) >= 2,
		"has_achievements": hasQuantifiedAchievement(descriptions.String()),
		"has_role_keyword": hasAny(titles.String(), c.RoleTitles),
	}

	score := 0
	if checks["has_experience"] {
		score += expPtsPresent
	}
	if checks["multiple_roles"] {
		score += expPtsMultiple
	}
	if checks["has_achievements"] {
		score += expPtsQuantified
	}
	if checks["has_role_keyword"] {
		score += expPtsRoleWords
	}

	return domain.CategoryResult{
		Score:  cap100(score),
		Checks: checks,
		Counts: map[string]int{"positions": len(entries)},
	}
}

func (c *Config) scoreSkills(skills []string) domain.CategoryResult {
	joined := strings.Join(skills, " ")
	technical := containsAny(joined, c.Languages)
	technical = append(technical, containsAny(joined, c.Frameworks)...)
	technical = append(technical, containsAny(joined, c.Tools)...)

	checks := map[string]bool{
		"at_least_5":    len(skills) >= 5,
		"at_least_10":   len(skills) >= 10,
		"has_technical": len(technical) > 0,
	}

	score := 0
	if checks["at_least_5"] {
		score += skPtsAtLeast5
	}
	if checks["at_least_10"] {
		score += skPtsAtLeast10
	}
	if checks["has_technical"] {
		score += skPtsTechnical
	}

	return domain.CategoryResult{
		Score:   cap100(score),
		Checks:  checks,
		Counts:  map[string]int{"skill_count": len(skills)},
		Matched: technical,
	}
}

func (c *Config) scoreEngagement(p domain.ProfileFields) domain.CategoryResult {
	checks := map[string]bool{
		"connections_50":  p.Connections >= 50,
		"connections_500": p.Connections >= 500,
		"has_education":   len(p.Education) > 0,
	}

	score := 0
	if checks["connections_50"] {
		score += engPtsConnections50
	}
	if checks["connections_500"] {
		score += engPtsConnections500
	}
	if checks["has_education"] {
		score += engPtsEducation
	}

	return domain.CategoryResult{
		Score:  cap100(score),
		Checks: checks,
		Counts: map[string]int{"connections": p.Connections},
	}
}
