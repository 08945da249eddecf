package scoring

import (
	"github.com/cvboost/scoring-system/internal/core/domain"
)

// rule maps a predicate over category facts to a suggestion template.
// Rules are evaluated in slice order; that order defines suggestion order.
type rule struct {
	when     func(c *Config, r map[string]domain.CategoryResult) bool
	category string
	priority domain.SuggestionPriority
	title    string
	descr    string
	impact   int
}

func checkFalse(category, fact string) func(*Config, map[string]domain.CategoryResult) bool {
	return func(_ *Config, r map[string]domain.CategoryResult) bool {
		res, ok := r[category]
		if !ok {
			return true
		}
		return !res.Checks[fact]
	}
}

func scoreBelowThreshold(category string) func(*Config, map[string]domain.CategoryResult) bool {
	return func(c *Config, r map[string]domain.CategoryResult) bool {
		return r[category].Score < c.WeakCategoryThreshold
	}
}

// resumeRules fire in order: structural must-fixes first, growth advice last.
var resumeRules = []rule{
	{checkFalse(CategoryFormatting, "has_email"), CategoryFormatting, domain.PriorityHigh,
		"Add contact information",
		"Recruiters and ATS parsers expect an email address near the top of the document.", 5},
	{checkFalse(CategoryFormatting, "has_experience_section"), CategoryFormatting, domain.PriorityHigh,
		"Add a clearly labelled experience section",
		"A dedicated Experience section is the first thing ATS parsers look for.", 8},
	{checkFalse(CategoryContent, "has_quantified_achievements"), CategoryContent, domain.PriorityHigh,
		"Quantify your achievements",
		"Add measurable results such as percentages, amounts, or growth figures to your bullet points.", 8},
	{scoreBelowThreshold(CategoryKeywords), CategoryKeywords, domain.PriorityHigh,
		"Add more role-relevant keywords",
		"Mirror the technologies and skills named in the job descriptions you target.", 10},
	{checkFalse(CategoryFormatting, "has_skills_section"), CategoryFormatting, domain.PriorityMedium,
		"Add a skills section",
		"List your core technologies in a dedicated Skills section for easy keyword matching.", 6},
	{checkFalse(CategoryContent, "has_action_verbs"), CategoryContent, domain.PriorityMedium,
		"Start bullet points with action verbs",
		"Verbs like led, built, and improved make impact statements scannable.", 5},
	{checkFalse(CategoryFormatting, "word_count_in_range"), CategoryFormatting, domain.PriorityMedium,
		"Adjust document length",
		"Aim for roughly one to two pages; very short or very long documents score poorly with reviewers.", 4},
	{scoreBelowThreshold(CategoryTechnical), CategoryTechnical, domain.PriorityMedium,
		"Broaden your technical coverage",
		"Mention the frameworks, tooling, and databases you have worked with, not just languages.", 7},
	{checkFalse(CategoryContent, "has_summary_section"), CategoryContent, domain.PriorityLow,
		"Add a professional summary",
		"A two-to-three line summary helps frame the rest of the document.", 3},
	{checkFalse(CategoryFormatting, "has_education_section"), CategoryFormatting, domain.PriorityLow,
		"Add an education section",
		"Include degrees and certifications, even when experience matters more.", 3},
}

var profileRules = []rule{
	{checkFalse(CategoryHeadline, "has_role_keyword"), CategoryHeadline, domain.PriorityHigh,
		"Put your role in the headline",
		"Headlines are the most heavily indexed field; name your role and specialty explicitly.", 10},
	{checkFalse(CategorySummary, "length_in_range"), CategorySummary, domain.PriorityHigh,
		"Expand your summary",
		"A substantial About section gives both readers and search more to work with.", 8},
	{checkFalse(CategoryExperience, "has_achievements"), CategoryExperience, domain.PriorityHigh,
		"Quantify results in your experience entries",
		"Add measurable outcomes to position descriptions instead of listing responsibilities.", 8},
	{checkFalse(CategoryHeadline, "has_separator"), CategoryHeadline, domain.PriorityMedium,
		"Structure your headline with separators",
		"Use | to combine role, specialty, and value proposition in one line.", 4},
	{checkFalse(CategorySummary, "has_cta"), CategorySummary, domain.PriorityMedium,
		"End your summary with a call to action",
		"Invite readers to connect or reach out; profiles with one get more inbound contact.", 4},
	{checkFalse(CategorySkills, "at_least_10"), CategorySkills, domain.PriorityMedium,
		"List more skills",
		"Profiles with ten or more listed skills surface in far more recruiter searches.", 6},
	{checkFalse(CategoryEngagement, "connections_500"), CategoryEngagement, domain.PriorityLow,
		"Grow your network past 500 connections",
		"The 500+ marker is a visibility threshold in search results.", 3},
	{checkFalse(CategoryEngagement, "has_education"), CategoryEngagement, domain.PriorityLow,
		"Add education entries",
		"Education fields feed alumni search and add credibility.", 2},
}

// Suggest evaluates the fixed rule table for the document kind against the
// category facts and returns the suggestions for every rule that fired, in
// rule-table order. The output is deterministic for identical facts.
func (c *Config) Suggest(kind domain.DocumentKind, results map[string]domain.CategoryResult) []domain.Suggestion {
	rules := resumeRules
	if kind == domain.KindProfile {
		rules = profileRules
	}

	var out []domain.Suggestion
	for _, r := range rules {
		if r.when(c, results) {
			out = append(out, domain.Suggestion{
				Category:    r.category,
				Priority:    r.priority,
				Title:       r.title,
				Description: r.descr,
				Impact:      r.impact,
			})
		}
	}
	return out
}
