package domain

import (
	"errors"
	"time"
)

// DocumentKind identifies what kind of content an analysis was run on.
type DocumentKind string

const (
	KindResume  DocumentKind = "resume"
	KindProfile DocumentKind = "profile"
)

// AnalysisStatus represents the lifecycle state of an analysis.
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

var ErrAnalysisNotFound = errors.New("analysis not found")
var ErrAnalysisNotCompleted = errors.New("analysis not completed")
var ErrNoOptimizedContent = errors.New("no optimized content generated yet")
var ErrForbidden = errors.New("access forbidden")
var ErrTextTooShort = errors.New("document text too short to analyze")

// SuggestionPriority orders suggestions for display: high before medium before low.
type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
	PriorityLow    SuggestionPriority = "low"
)

// Suggestion is a single actionable improvement emitted by the rule engine.
type Suggestion struct {
	Category    string             `json:"category" bson:"category"`
	Priority    SuggestionPriority `json:"priority" bson:"priority"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Impact      int                `json:"impact" bson:"impact"`
}

// CategoryResult holds the extracted facts and sub-score for one rubric category.
// Facts are booleans and counts; the sub-score is always recomputable from them.
type CategoryResult struct {
	Score  int             `json:"score" bson:"score"`
	Checks map[string]bool `json:"checks" bson:"checks"`
	Counts map[string]int  `json:"counts,omitempty" bson:"counts,omitempty"`
	// Matched lists the catalog keywords found, for keyword-style categories.
	Matched []string `json:"matched,omitempty" bson:"matched,omitempty"`
}

// ProfileFields is the structured input for a LinkedIn-style profile scan.
type ProfileFields struct {
	Headline    string            `json:"headline" bson:"headline"`
	Summary     string            `json:"summary" bson:"summary"`
	Experience  []ExperienceEntry `json:"experience" bson:"experience"`
	Skills      []string          `json:"skills" bson:"skills"`
	Education   []string          `json:"education" bson:"education"`
	Connections int               `json:"connections" bson:"connections"`
}

// ExperienceEntry is one position on a profile.
type ExperienceEntry struct {
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Description string `json:"description" bson:"description"`
}

// Comparison is a before/after record produced by rescoring optimized content.
type Comparison struct {
	BeforeScore  int       `json:"before_score" bson:"before_score"`
	AfterScore   int       `json:"after_score" bson:"after_score"`
	Improvement  int       `json:"improvement" bson:"improvement"`
	Improvements []string  `json:"improvements" bson:"improvements"`
	GeneratedAt  time.Time `json:"generated_at" bson:"generated_at"`
}

// Analysis is the core aggregate: one scored résumé or profile document.
//
// CompositeScore and Suggestions are derived from Categories by the scoring
// engine and are never set directly by callers.
type Analysis struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	UserID    string         `json:"user_id" bson:"user_id"`
	Kind      DocumentKind   `json:"kind" bson:"kind"`
	Status    AnalysisStatus `json:"status" bson:"status"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`

	// Exactly one of Text / Profile is set, depending on Kind.
	Text    string         `json:"text,omitempty" bson:"text,omitempty"`
	Profile *ProfileFields `json:"profile,omitempty" bson:"profile,omitempty"`

	Categories     map[string]CategoryResult `json:"categories" bson:"categories"`
	CompositeScore int                       `json:"composite_score" bson:"composite_score"`
	Suggestions    []Suggestion              `json:"suggestions" bson:"suggestions"`

	// Optimized content is generated on demand and cached; once present it
	// is never regenerated. Resumes cache text, profiles cache fields.
	OptimizedContent string         `json:"optimized_content,omitempty" bson:"optimized_content,omitempty"`
	OptimizedProfile *ProfileFields `json:"optimized_profile,omitempty" bson:"optimized_profile,omitempty"`
	Comparison       *Comparison    `json:"comparison,omitempty" bson:"comparison,omitempty"`
}
