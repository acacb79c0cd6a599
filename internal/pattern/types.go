// In file: internal/pattern/types.go

// Package pattern implements the recommendation engine that turns a free-text
// requirement description into a scored, justified workflow-pattern
// recommendation. The pipeline is: analyze text -> score every pattern against
// the indicator table -> assess complexity and detect pattern combinations ->
// assemble the final recommendation. Everything in this package is pure,
// in-memory computation; the only state is the bounded analysis cache owned by
// the Engine.
package pattern

// =================================================================================
// Core Data Structures
// =================================================================================

// Type identifies one of the supported workflow patterns.
// Using a defined type and constants prevents typos and keeps the rest of the
// codebase from falling back to raw string comparison.
type Type string

const (
	TypeRAG              Type = "RAG"
	TypeAgent            Type = "AGENT"
	TypeTool             Type = "TOOL"
	TypeWorkflow         Type = "WORKFLOW"
	TypeMapReduce        Type = "MAPREDUCE"
	TypeMultiAgent       Type = "MULTI_AGENT"
	TypeStructuredOutput Type = "STRUCTURED_OUTPUT"

	// TypeHybrid is a display-only meta value used when a pattern combination
	// is surfaced. It is never assigned as a primary recommendation.
	TypeHybrid Type = "HYBRID"
)

// AllTypes lists every scorable pattern in canonical declaration order.
// This order is the tie-break for equal scores, so it must stay stable.
func AllTypes() []Type {
	return []Type{
		TypeRAG,
		TypeAgent,
		TypeTool,
		TypeWorkflow,
		TypeMapReduce,
		TypeMultiAgent,
		TypeStructuredOutput,
	}
}

// ContextRule associates a secondary trigger word with a score multiplier.
// A multiplier above 1.0 amplifies a pattern when the trigger is present,
// below 1.0 de-emphasizes it. Rules are kept as an ordered slice rather than a
// map so that scoring output is deterministic.
type ContextRule struct {
	Trigger    string  `yaml:"trigger"`
	Multiplier float64 `yaml:"multiplier"`
}

// Indicator is a static, declarative rule set for one pattern: the keywords
// that suggest it, the base weight each matched keyword contributes, and the
// pattern-specific context multipliers. The full set of indicators is loaded
// once at startup and never mutated.
type Indicator struct {
	Pattern            Type
	Keywords           []string
	Weight             float64
	ContextMultipliers []ContextRule
}

// Analysis is the structured breakdown of one requirement text. It is created
// once per call by the Analyzer and is read-only afterwards.
type Analysis struct {
	// RawText is the original input, untouched.
	RawText string `json:"raw_text"`
	// ExtractedKeywords is an ordered, non-unique bag of lowercase content
	// words. Duplicates are retained because scoring is frequency-sensitive.
	ExtractedKeywords []string `json:"extracted_keywords"`
	// ComplexityIndicators holds matched complexity/scale/coordination phrases.
	ComplexityIndicators []string `json:"complexity_indicators"`
	// TechnicalRequirements holds matched technology-category phrases
	// (api/db/cloud/container/service families).
	TechnicalRequirements []string `json:"technical_requirements"`
	// FunctionalRequirements holds sentences containing modal/need verbs.
	FunctionalRequirements []string `json:"functional_requirements"`
	// IntegrationNeeds holds matched "integrate with X" style phrases.
	IntegrationNeeds []string `json:"integration_needs"`
}

// Score is the result of evaluating one indicator against one analysis.
type Score struct {
	Pattern Type `json:"pattern"`
	// BaseScore is the sum of indicator weights for matched keywords:
	// full credit for a keyword-bag match, half credit for a raw-text
	// substring match. The two can stack for the same keyword.
	BaseScore float64 `json:"base_score"`
	// ContextScore accumulates base_score*(multiplier-1) for every matched
	// context trigger, both pattern-specific and global.
	ContextScore float64 `json:"context_score"`
	TotalScore   float64 `json:"total_score"`
	// MatchedIndicators lists the keywords that contributed to BaseScore.
	MatchedIndicators []string `json:"matched_indicators"`
	// ConfidenceFactors names the context rules that fired, in evaluation order.
	ConfidenceFactors []string `json:"confidence_factors"`
}

// CombinationInfo describes a detected co-occurrence of two strongly-scoring
// patterns. Combinations are surfaced as metadata on the recommendation, never
// as a standalone primary classification.
type CombinationInfo struct {
	Patterns      []Type  `json:"patterns"`
	CombinedScore float64 `json:"combined_score"`
	RankWindow    int     `json:"rank_window"`
}

// Recommendation is the engine's output: the chosen pattern, the calibrated
// confidence, runner-up patterns, human-readable reasoning, and the structural
// metadata consumed by downstream scaffolding stages.
type Recommendation struct {
	PrimaryPattern         Type           `json:"primary_pattern"`
	ConfidenceScore        float64        `json:"confidence_score"`
	SecondaryPatterns      []Type         `json:"secondary_patterns"`
	Rationale              string         `json:"rationale"`
	DetailedJustification  string         `json:"detailed_justification"`
	TemplateCustomizations map[string]any `json:"template_customizations"`
	WorkflowSuggestions    map[string]any `json:"workflow_suggestions"`
	// Complexity is the assessed tier, carried alongside its display label
	// inside TemplateCustomizations so callers never re-parse strings.
	Complexity ComplexityLevel `json:"complexity"`
	// ProjectName is echoed from the request when provided.
	ProjectName string `json:"project_name,omitempty"`
}

// =================================================================================
// Complexity Tier
// =================================================================================

// ComplexityLevel is the coarse complexity tier derived from an analysis.
// It is a proper tagged enum; the "Low - ..." display strings exist only for
// reporting and are produced exactly once, by Label.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "Low"
	ComplexityMedium ComplexityLevel = "Medium"
	ComplexityHigh   ComplexityLevel = "High"
)

// Label returns the human-readable form used in reports, e.g.
// "Medium - multi-component system with moderate coordination".
func (c ComplexityLevel) Label() string {
	switch c {
	case ComplexityHigh:
		return "High - enterprise-scale system with heavy coordination and integration"
	case ComplexityMedium:
		return "Medium - multi-component system with moderate coordination"
	default:
		return "Low - small focused system with few moving parts"
	}
}
