package scoring

import (
	"github.com/cvboost/scoring-system/internal/core/domain"
)

// Point values per boolean fact. Each category's values sum to 100; scores
// are additionally capped at 100 after summing.
const (
	fmtPtsEmail      = 15
	fmtPtsPhone      = 10
	fmtPtsSkills     = 20
	fmtPtsExperience = 25
	fmtPtsEducation  = 15
	fmtPtsWordCount  = 15

	cntPtsAchievements = 35
	cntPtsActionVerbs  = 25
	cntPtsSummary      = 15
	cntPtsLength       = 25

	techPtsPerGroup = 25 // languages, frameworks, tools, databases
)

// ScoreResume runs all four résumé category scorers over the raw text and
// returns the per-category facts and sub-scores.
func (c *Config) ScoreResume(text string) map[string]domain.CategoryResult {
	return map[string]domain.CategoryResult{
		CategoryKeywords:   c.scoreResumeKeywords(text),
		CategoryFormatting: c.scoreResumeFormatting(text),
		CategoryContent:    c.scoreResumeContent(text),
		CategoryTechnical:  c.scoreResumeTechnical(text),
	}
}

// scoreResumeKeywords awards PointsPerKeyword per catalog keyword present,
// capped at 100. The full catalog is the union of all keyword groups.
func (c *Config) scoreResumeKeywords(text string) domain.CategoryResult {
	var matched []string
	for _, group := range [][]string{c.Languages, c.Frameworks, c.Tools, c.Databases} {
		matched = append(matched, containsAny(text, group)...)
	}

	score := cap100(len(matched) * c.PointsPerKeyword)
	return domain.CategoryResult{
		Score:   score,
		Matched: matched,
		Counts:  map[string]int{"matched_keywords": len(matched)},
		Checks: map[string]bool{
			"has_keywords": len(matched) > 0,
		},
	}
}

func (c *Config) scoreResumeFormatting(text string) domain.CategoryResult {
	words := wordCount(text)
	checks := map[string]bool{
		"has_email":              hasEmail(text),
		"has_phone":              hasPhone(text),
		"has_skills_section":     hasSection(text, "skills"),
		"has_experience_section": hasSection(text, "experience", "employment", "work history"),
		"has_education_section":  hasSection(text, "education", "academic"),
		"word_count_in_range":    c.ResumeWordRange.Contains(words),
	}

	score := 0
	if checks["has_email"] {
		score += fmtPtsEmail
	}
	if checks["has_phone"] {
		score += fmtPtsPhone
	}
	if checks["has_skills_section"] {
		score += fmtPtsSkills
	}
	if checks["has_experience_section"] {
		score += fmtPtsExperience
	}
	if checks["has_education_section"] {
		score += fmtPtsEducation
	}
	if checks["word_count_in_range"] {
		score += fmtPtsWordCount
	}

	return domain.CategoryResult{
		Score:  cap100(score),
		Checks: checks,
		Counts: map[string]int{"word_count": words},
	}
}

func (c *Config) scoreResumeContent(text string) domain.CategoryResult {
	words := wordCount(text)
	checks := map[string]bool{
		"has_quantified_achievements": hasQuantifiedAchievement(text),
		"has_action_verbs":            hasAny(text, c.ActionVerbs),
		"has_summary_section":         hasSection(text, "summary", "objective", "profile"),
		"sufficient_length":           words >= 250,
	}

	score := 0
	if checks["has_quantified_achievements"] {
		score += cntPtsAchievements
	}
	if checks["has_action_verbs"] {
		score += cntPtsActionVerbs
	}
	if checks["has_summary_section"] {
		score += cntPtsSummary
	}
	if checks["sufficient_length"] {
		score += cntPtsLength
	}

	return domain.CategoryResult{
		Score:  cap100(score),
		Checks: checks,
		Counts: map[string]int{"word_count": words},
	}
}

// scoreResumeTechnical awards a fixed block of points for each keyword group
// (languages, frameworks, tools, databases) with at least one match.
func (c *Config) scoreResumeTechnical(text string) domain.CategoryResult {
	langs := containsAny(text, c.Languages)
	frameworks := containsAny(text, c.Frameworks)
	tools := containsAny(text, c.Tools)
	dbs := containsAny(text, c.Databases)

	checks := map[string]bool{
		"has_languages":  len(langs) > 0,
		"has_frameworks": len(frameworks) > 0,
		"has_tools":      len(tools) > 0,
		"has_databases":  len(dbs) > 0,
	}

	score := 0
	for _, ok := range []bool{checks["has_languages"], checks["has_frameworks"], checks["has_tools"], checks["has_databases"]} {
		if ok {
			score += techPtsPerGroup
		}
	}

	var matched []string
	matched = append(matched, langs...)
	matched = append(matched, frameworks...)
	matched = append(matched, tools...)
	matched = append(matched, dbs...)

	return domain.CategoryResult{
		Score:   cap100(score),
		Checks:  checks,
		Matched: matched,
	}
}

func cap100(n int) int {
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}
