package scoring

import (
	"strings"
	"testing"
)

func TestScoreResume_AllCategoriesInRange(t *testing.T) {
	cfg := DefaultConfig()

	for _, text := range []string{
		"",
		"   \n\t  ",
		"a single line with nothing useful on it",
		strings.Repeat("word ", 5000),
	} {
		results := cfg.ScoreResume(text)
		if len(results) != 4 {
			t.Fatalf("expected 4 categories, got %d", len(results))
		}
		for name, r := range results {
			if r.Score < 0 || r.Score > 100 {
				t.Errorf("category %s score out of range: %d", name, r.Score)
			}
		}
	}
}

func TestScoreResume_EmptyInputScoresZero(t *testing.T) {
	cfg := DefaultConfig()

	results := cfg.ScoreResume("")
	for name, r := range results {
		if r.Score != 0 {
			t.Errorf("empty input must score 0 in %s, got %d", name, r.Score)
		}
	}
	if got := cfg.Composite("resume", results); got != 0 {
		t.Errorf("empty input composite must be 0, got %d", got)
	}
}

func TestScoreResume_FormattingPoints(t *testing.T) {
	cfg := DefaultConfig()

	// Email, skills and experience sections, 350 words; no phone number and
	// no education section. 15 + 20 + 25 + 15 = 75.
	text := "Skills Experience contact jane@example.com " + strings.Repeat("lorem ", 346)
	r := cfg.ScoreResume(text)[CategoryFormatting]

	if !r.Checks["has_email"] {
		t.Error("email check must pass")
	}
	if r.Checks["has_phone"] {
		t.Error("phone check must fail: no digits in the document")
	}
	if !r.Checks["has_skills_section"] || !r.Checks["has_experience_section"] {
		t.Error("section checks must pass")
	}
	if r.Checks["has_education_section"] {
		t.Error("education check must fail")
	}
	if !r.Checks["word_count_in_range"] {
		t.Errorf("350 words is inside the band, count=%d", r.Counts["word_count"])
	}
	if r.Score != 75 {
		t.Errorf("expected formatting score 75, got %d", r.Score)
	}
}

func TestScoreResume_KeywordPointsAndCap(t *testing.T) {
	cfg := DefaultConfig()

	// Three catalog keywords at 10 points each.
	r := cfg.ScoreResume("worked with python, django and postgresql")[CategoryKeywords]
	if r.Score != 30 {
		t.Errorf("expected 30 for three keywords, got %d", r.Score)
	}
	if r.Counts["matched_keywords"] != 3 {
		t.Errorf("expected 3 matches, got %d", r.Counts["matched_keywords"])
	}

	// Far more than ten matches still caps at 100.
	many := strings.Join(append(append([]string{}, cfg.Languages...), cfg.Databases...), " ")
	if got := cfg.ScoreResume(many)[CategoryKeywords].Score; got != 100 {
		t.Errorf("keyword score must cap at 100, got %d", got)
	}
}

func TestScoreResume_ContentChecks(t *testing.T) {
	cfg := DefaultConfig()

	text := "Summary: seasoned engineer.\n- Led migrations and reduced costs by 30%.\n" + strings.Repeat("filler ", 250)
	r := cfg.ScoreResume(text)[CategoryContent]

	if !r.Checks["has_quantified_achievements"] {
		t.Error("percentage figure must count as a quantified achievement")
	}
	if !r.Checks["has_action_verbs"] {
		t.Error("'led' and 'reduced' are action verbs")
	}
	if !r.Checks["has_summary_section"] {
		t.Error("summary section must be detected")
	}
	if !r.Checks["sufficient_length"] {
		t.Error("length check must pass")
	}
	if r.Score != 100 {
		t.Errorf("all content checks passing must score 100, got %d", r.Score)
	}
}

func TestScoreResume_TechnicalGroups(t *testing.T) {
	cfg := DefaultConfig()

	// One language and one database: two groups at 25 each.
	r := cfg.ScoreResume("rust services on cassandra")[CategoryTechnical]
	if r.Score != 50 {
		t.Errorf("expected 50 for two keyword groups, got %d", r.Score)
	}
	if !r.Checks["has_languages"] || !r.Checks["has_databases"] {
		t.Error("language and database groups must match")
	}
	if r.Checks["has_frameworks"] || r.Checks["has_tools"] {
		t.Error("framework and tool groups must not match")
	}
}
