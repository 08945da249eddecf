package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

// missingKeywordCount is how many unmatched catalog keywords the optimizer
// injects into the generated skills section.
const missingKeywordCount = 5

// OptimizeResume produces an improved text variant deterministically from the
// original text and the stored category facts: missing sections are appended
// in a fixed order and unmatched catalog keywords are added to a skills line.
// The result depends only on its inputs, so regenerating from the same
// analysis always yields identical content.
func (c *Config) OptimizeResume(text string, results map[string]domain.CategoryResult) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(text, "\n"))

	fm := results[CategoryFormatting].Checks
	ct := results[CategoryContent].Checks

	if !ct["has_summary_section"] {
		b.WriteString("\n\nSummary:\nResults-driven professional with hands-on experience delivering measurable improvements.")
	}
	if !ct["has_quantified_achievements"] {
		b.WriteString("\n\n- Improved key process efficiency by 20% through targeted automation.")
	}
	if missing := c.missingKeywords(results[CategoryKeywords].Matched); len(missing) > 0 {
		if fm["has_skills_section"] {
			b.WriteString("\n\nAdditional Skills: ")
		} else {
			b.WriteString("\n\nSkills: ")
		}
		b.WriteString(strings.Join(missing, ", "))
	}
	if !fm["has_experience_section"] {
		b.WriteString("\n\nExperience:\n- Add your most recent position here with quantified outcomes.")
	}
	if !fm["has_education_section"] {
		b.WriteString("\n\nEducation:\n- Add your degrees and certifications here.")
	}

	b.WriteString("\n")
	return b.String()
}

// OptimizeProfile produces an improved copy of the profile fields: headline
// restructured around a role keyword, summary padded with a call to action,
// and catalog skills added up to the ten-skill visibility threshold.
func (c *Config) OptimizeProfile(p domain.ProfileFields, results map[string]domain.CategoryResult) domain.ProfileFields {
	out := p

	hd := results[CategoryHeadline].Checks
	if !hd["has_role_keyword"] || !hd["has_separator"] {
		role := firstOr(c.RoleTitles, "professional")
		base := strings.TrimSpace(p.Headline)
		if base == "" {
			base = "Building reliable systems"
		}
		out.Headline = fmt.Sprintf("%s | %s | Open to opportunities", displayName(role), base)
	}

	sm := results[CategorySummary].Checks
	if !sm["has_cta"] {
		cta := firstOr(c.CTAPhrases, "reach out")
		out.Summary = strings.TrimSpace(p.Summary+" ") + fmt.Sprintf(" Feel free to %s if you would like to work together.", cta)
	}

	if len(out.Skills) < 10 {
		existing := make(map[string]bool, len(out.Skills))
		for _, s := range out.Skills {
			existing[strings.ToLower(s)] = true
		}
		for _, kw := range c.Languages {
			if len(out.Skills) >= 10 {
				break
			}
			if !existing[strings.ToLower(kw)] {
				out.Skills = append(out.Skills, kw)
			}
		}
	}

	return out
}

// Compare builds the before/after record from two scoring runs of the same
// document kind. Improvements lists a human-readable label for each category
// whose sub-score increased, in alphabetical category order.
func (c *Config) Compare(kind domain.DocumentKind, before, after map[string]domain.CategoryResult) domain.Comparison {
	beforeScore := c.Composite(kind, before)
	afterScore := c.Composite(kind, after)

	categories := make([]string, 0, len(after))
	for name := range after {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	var improvements []string
	for _, name := range categories {
		b, a := before[name].Score, after[name].Score
		if a > b {
			improvements = append(improvements, fmt.Sprintf("%s improved from %d to %d", displayName(name), b, a))
		}
	}

	return domain.Comparison{
		BeforeScore:  beforeScore,
		AfterScore:   afterScore,
		Improvement:  afterScore - beforeScore,
		Improvements: improvements,
	}
}

// missingKeywords returns the first missingKeywordCount catalog keywords not
// already matched, walking the groups in catalog order.
func (c *Config) missingKeywords(matched []string) []string {
	have := make(map[string]bool, len(matched))
	for _, m := range matched {
		have[strings.ToLower(m)] = true
	}

	var missing []string
	for _, group := range [][]string{c.Languages, c.Frameworks, c.Tools, c.Databases} {
		for _, kw := range group {
			if len(missing) >= missingKeywordCount {
				return missing
			}
			if !have[strings.ToLower(kw)] {
				missing = append(missing, kw)
			}
		}
	}
	return missing
}

func firstOr(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}

func displayName(category string) string {
	return strings.ToUpper(category[:1]) + category[1:]
}
