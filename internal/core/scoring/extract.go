package scoring

import (
	"regexp"
	"strings"
)

// Shared fact extractors: small pure helpers that turn free text into
// booleans and counts. Matching is case-insensitive throughout.

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d[\d\s\-().]{7,}\d)`)

	// percentRe catches "20%", "increased ... by 20", "$1.2M" style
	// quantified achievements.
	percentRe  = regexp.MustCompile(`\d+(\.\d+)?\s*%`)
	changeByRe = regexp.MustCompile(`(?i)(increased|decreased|reduced|improved|grew|cut|boosted|saved)\b[^.\n]{0,60}?\b(by\s+)?\$?\d`)
	moneyRe    = regexp.MustCompile(`\$\s?\d[\d,.]*\s*(k|m|b|million|billion)?`)
)

// containsAny reports whether lower-cased text contains any needle, and
// returns the needles found in catalog order.
func containsAny(text string, needles []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			found = append(found, n)
		}
	}
	return found
}

// hasAny reports whether lower-cased text contains at least one needle.
func hasAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// hasSection reports whether the text contains a named section header such
// as "Skills:" or "EXPERIENCE". Any of the aliases counts.
func hasSection(text string, aliases ...string) bool {
	lower := strings.ToLower(text)
	for _, a := range aliases {
		if strings.Contains(lower, a) {
			return true
		}
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func hasEmail(text string) bool { return emailRe.MatchString(text) }
func hasPhone(text string) bool { return phoneRe.MatchString(text) }

// hasQuantifiedAchievement detects measurable results: percentages, money
// amounts, or "increased/reduced ... by N" phrasing.
func hasQuantifiedAchievement(text string) bool {
	return percentRe.MatchString(text) || changeByRe.MatchString(text) || moneyRe.MatchString(text)
}
