// Package scoring implements the rule-based ATS scoring engine: feature
// extraction over résumé text and profile fields, per-category sub-scores,
// weighted composite aggregation, and the suggestion rule tables.
//
// Every function in this package is pure and total: empty or malformed input
// produces the lowest-scoring facts, never an error.
package scoring

// Category names used as keys in weight tables and analysis results.
const (
	CategoryKeywords   = "keywords"
	CategoryFormatting = "formatting"
	CategoryContent    = "content"
	CategoryTechnical  = "technical"

	CategoryHeadline   = "headline"
	CategorySummary    = "summary"
	CategoryExperience = "experience"
	CategorySkills     = "skills"
	CategoryEngagement = "engagement"
)

// Range is an inclusive [Lo, Hi] length/count band.
type Range struct {
	Lo int
	Hi int
}

// Contains reports whether n falls inside the band.
func (r Range) Contains(n int) bool {
	return n >= r.Lo && n <= r.Hi
}

// Config carries every fixed table the engine consults: keyword catalogs,
// composite weights, and length bands. It is loaded once at startup and
// never mutated; tests substitute trimmed fixtures without touching scorers.
type Config struct {
	ResumeWeights  map[string]float64
	ProfileWeights map[string]float64

	// Keyword catalogs for the résumé keywords/technical categories.
	Languages  []string
	Frameworks []string
	Tools      []string
	Databases  []string

	// RoleTitles are tech-role keywords matched in headlines and experience.
	RoleTitles []string

	ActionVerbs []string
	CTAPhrases  []string

	ResumeWordRange Range
	HeadlineLength  Range
	SummaryLength   Range

	// PointsPerKeyword is awarded per catalog match in the keywords
	// category, capped at 100.
	PointsPerKeyword int

	// WeakCategoryThreshold is the sub-score below which the per-category
	// "improve this area" suggestion rules fire.
	WeakCategoryThreshold int
}

// DefaultConfig returns the production rubric tables.
func DefaultConfig() *Config {
	return &Config{
		ResumeWeights: map[string]float64{
			CategoryKeywords:   0.35,
			CategoryFormatting: 0.25,
			CategoryContent:    0.25,
			CategoryTechnical:  0.15,
		},
		ProfileWeights: map[string]float64{
			CategoryHeadline:   0.25,
			CategorySummary:    0.25,
			CategoryExperience: 0.25,
			CategorySkills:     0.15,
			CategoryEngagement: 0.10,
		},

		Languages: []string{
			"python", "java", "javascript", "typescript", "go", "golang",
			"c++", "c#", "ruby", "php", "swift", "kotlin", "rust", "scala",
		},
		Frameworks: []string{
			"react", "angular", "vue", "django", "flask", "spring",
			"rails", "laravel", "express", "next.js", ".net", "fastapi",
		},
		Tools: []string{
			"docker", "kubernetes", "git", "jenkins", "terraform",
			"ansible", "aws", "azure", "gcp", "linux", "ci/cd", "jira",
		},
		Databases: []string{
			"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
			"dynamodb", "cassandra", "sqlite", "oracle", "sql server",
		},
		RoleTitles: []string{
			"engineer", "developer", "architect", "devops", "sre",
			"data scientist", "analyst", "manager", "lead", "consultant",
		},
		ActionVerbs: []string{
			"led", "managed", "developed", "created", "designed", "built",
			"improved", "increased", "reduced", "delivered", "launched",
			"implemented", "optimized", "automated", "migrated",
		},
		CTAPhrases: []string{
			"contact me", "reach out", "let's connect", "get in touch",
			"open to", "feel free to",
		},

		ResumeWordRange: Range{Lo: 300, Hi: 700},
		HeadlineLength:  Range{Lo: 40, Hi: 120},
		SummaryLength:   Range{Lo: 200, Hi: 2000},

		PointsPerKeyword:      10,
		WeakCategoryThreshold: 70,
	}
}
