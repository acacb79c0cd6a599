// In file: internal/pattern/recommender.go
package pattern

import (
	"fmt"
	"strings"
)

// =================================================================================
// Recommender
// =================================================================================
// The recommender assembles the final Recommendation from the sorted score
// list, the analysis, and the combination detector. It never returns an error:
// malformed or signal-free input degrades to the WORKFLOW fallback at mid
// confidence, because the engine is advisory and callers are expected to
// inspect confidence_score rather than handle failures.
// =================================================================================

const (
	// fallbackConfidence is the "no information" midpoint, not a vote of
	// certainty.
	fallbackConfidence = 0.5
	// secondaryThresholdRatio admits runner-up patterns scoring at least this
	// fraction of the primary total.
	secondaryThresholdRatio = 0.7
	// clearWinnerGap is the absolute lead over the runner-up that earns the
	// 1.2x confidence bonus.
	clearWinnerGap = 2.0
	// robustCombinationNorm is the per-member normalized score every member of
	// the strongest combination must reach for the +0.05 confidence bump.
	robustCombinationNorm = 0.8
)

// Recommender turns scores and analysis into a Recommendation.
type Recommender struct {
	detector *CombinationDetector
}

// NewRecommender creates a recommender that consults the given combination
// detector.
func NewRecommender(detector *CombinationDetector) *Recommender {
	return &Recommender{detector: detector}
}

// Recommend builds the full recommendation. The scores slice must be sorted by
// total descending, as produced by Scorer.Score.
func (r *Recommender) Recommend(scores []Score, analysis Analysis) Recommendation {
	complexity := AssessComplexity(analysis)

	if len(scores) == 0 || scores[0].TotalScore <= 0 {
		return r.fallback(analysis, complexity)
	}

	primary := scores[0]
	confidence := calculateConfidence(primary, scores, analysis)

	secondary := []Type{}
	for _, s := range scores[1:min(len(scores), 6)] {
		if s.TotalScore > 0 && s.TotalScore >= secondaryThresholdRatio*primary.TotalScore {
			secondary = append(secondary, s.Pattern)
		}
	}

	customizations := buildCustomizations(primary.Pattern, analysis)
	rationale := buildRationale(primary, analysis, complexity)

	// Combination detection is advisory: the detector recovers internally, so
	// an empty result is the only failure mode seen here.
	combos := r.detector.Detect(scores)
	if name, best, ok := strongest(combos); ok {
		customizations["combination_info"] = combos
		customizations["hybrid_candidate"] = true
		rationale = combinationPrefix(name, best, scores) + rationale
		if combinationIsRobust(best, scores) {
			confidence = clamp01(confidence + 0.05)
		}
	}

	customizations["graduated_structure"] = graduatedStructure(complexity, primary.Pattern)
	if isEnterprise(analysis) {
		customizations["logging_level"] = "detailed"
		customizations["monitoring"] = true
		customizations["caching"] = true
	}

	return Recommendation{
		PrimaryPattern:         primary.Pattern,
		ConfidenceScore:        confidence,
		SecondaryPatterns:      secondary,
		Rationale:              rationale,
		DetailedJustification:  buildJustification(primary, scores, analysis, complexity),
		TemplateCustomizations: customizations,
		WorkflowSuggestions:    buildWorkflowSuggestions(primary.Pattern, analysis, isEnterprise(analysis)),
		Complexity:             complexity,
	}
}

// fallback is the terminal state for empty or signal-free input.
func (r *Recommender) fallback(analysis Analysis, complexity ComplexityLevel) Recommendation {
	customizations := buildCustomizations(TypeWorkflow, analysis)
	customizations["graduated_structure"] = graduatedStructure(complexity, TypeWorkflow)
	return Recommendation{
		PrimaryPattern:         TypeWorkflow,
		ConfidenceScore:        fallbackConfidence,
		SecondaryPatterns:      []Type{},
		Rationale:              "No clear pattern indicators were found in the requirements. Defaulting to a general WORKFLOW structure.",
		DetailedJustification:  "## Primary Pattern\nWORKFLOW (fallback, no indicator matched)\n\n## Complexity Assessment\n" + complexity.Label() + "\n",
		TemplateCustomizations: customizations,
		WorkflowSuggestions:    buildWorkflowSuggestions(TypeWorkflow, analysis, false),
		Complexity:             complexity,
	}
}

// =================================================================================
// Confidence
// =================================================================================

// calculateConfidence maps the primary score onto [0,1], scaled by keyword
// volume so that a handful of matches in a long requirement reads as weaker
// evidence than the same matches in a short one. A decisive lead over the
// runner-up earns a 1.2x bonus.
func calculateConfidence(primary Score, scores []Score, analysis Analysis) float64 {
	if len(analysis.ExtractedKeywords) == 0 {
		return fallbackConfidence
	}
	confidence := clamp01(primary.TotalScore / (float64(len(analysis.ExtractedKeywords)) * 2.0))
	if len(scores) > 1 && primary.TotalScore-scores[1].TotalScore > clearWinnerGap {
		confidence = clamp01(confidence * 1.2)
	}
	return confidence
}

// combinationIsRobust reports whether every member of the combination has a
// normalized score of at least robustCombinationNorm.
func combinationIsRobust(info CombinationInfo, scores []Score) bool {
	maxTotal := 0.0
	totals := make(map[Type]float64, len(scores))
	for _, s := range scores {
		totals[s.Pattern] = s.TotalScore
		if s.TotalScore > maxTotal {
			maxTotal = s.TotalScore
		}
	}
	if maxTotal <= 0 {
		return false
	}
	for _, member := range info.Patterns {
		if totals[member]/maxTotal < robustCombinationNorm {
			return false
		}
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// =================================================================================
// Reporting
// =================================================================================

func buildRationale(primary Score, analysis Analysis, complexity ComplexityLevel) string {
	matched := primary.MatchedIndicators
	if len(matched) > 3 {
		matched = matched[:3]
	}
	return fmt.Sprintf(
		"%s fits best with a score of %.1f, driven by %d matched indicators (%s). Assessed complexity: %s.",
		primary.Pattern, primary.TotalScore, len(primary.MatchedIndicators),
		strings.Join(matched, ", "), complexity.Label(),
	)
}

func combinationPrefix(name string, info CombinationInfo, scores []Score) string {
	members := make([]string, len(info.Patterns))
	for i, p := range info.Patterns {
		members[i] = string(p)
	}
	top := []string{}
	for _, s := range scores[:min(len(scores), 3)] {
		top = append(top, fmt.Sprintf("%s (%.1f)", s.Pattern, s.TotalScore))
	}
	return fmt.Sprintf("Detected composite scenario: %s (%s). Top patterns: %s. ",
		strings.Join(members, " + "), name, strings.Join(top, ", "))
}

// buildJustification renders the structured multi-section report consumed
// verbatim by generated design documents.
func buildJustification(primary Score, scores []Score, analysis Analysis, complexity ComplexityLevel) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Primary Pattern\n%s (score %.2f)\n\n", primary.Pattern, primary.TotalScore)

	b.WriteString("## Matched Indicators\n")
	for _, keyword := range primary.MatchedIndicators[:min(len(primary.MatchedIndicators), 5)] {
		fmt.Fprintf(&b, "- %s\n", keyword)
	}
	b.WriteString("\n")

	if len(primary.ConfidenceFactors) > 0 {
		b.WriteString("## Confidence Factors\n")
		for _, factor := range primary.ConfidenceFactors[:min(len(primary.ConfidenceFactors), 3)] {
			fmt.Fprintf(&b, "- %s\n", factor)
		}
		b.WriteString("\n")
	}

	if len(scores) > 1 {
		b.WriteString("## Alternatives Considered\n")
		for _, s := range scores[1:min(len(scores), 4)] {
			fmt.Fprintf(&b, "- %s (score %.2f)\n", s.Pattern, s.TotalScore)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Complexity Assessment\n%s\n\n", complexity.Label())

	if len(analysis.TechnicalRequirements) > 0 {
		b.WriteString("## Technical Alignment\n")
		for _, req := range analysis.TechnicalRequirements[:min(len(analysis.TechnicalRequirements), 3)] {
			fmt.Fprintf(&b, "- requirement mentions %q\n", req)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Implementation Recommendations\n")
	for _, rec := range implementationRecommendations[primary.Pattern] {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

// implementationRecommendations is the fixed per-pattern advice rendered into
// the justification report.
var implementationRecommendations = map[Type][]string{
	TypeRAG: {
		"Use a vector store such as chromadb or pinecone for retrieval",
		"Chunk documents before embedding, starting near 1000 characters",
		"Score retrieved passages by similarity and drop those below threshold",
	},
	TypeAgent: {
		"Assemble prompts with chain-of-thought context",
		"Persist conversation memory between turns",
		"Expose tools to the agent through a single dispatch point",
	},
	TypeTool: {
		"Wrap external calls with retry and circuit-breaker handling",
		"Validate responses before propagating them downstream",
		"Keep credentials in configuration, never in code",
	},
	TypeWorkflow: {
		"Persist workflow state between steps",
		"Support checkpoint and resume for long-running flows",
		"Gate irreversible steps behind approval",
	},
	TypeMapReduce: {
		"Split work into independent batches",
		"Keep reducers associative so partial results merge cleanly",
		"Bound worker pools to protect downstream services",
	},
	TypeMultiAgent: {
		"Give each agent a narrow, named responsibility",
		"Route inter-agent messages through a shared bus",
		"Define a termination condition for agent negotiation",
	},
	TypeStructuredOutput: {
		"Define the output schema first and validate every emission",
		"Fail soft on missing optional fields",
		"Version the schema alongside the templates",
	},
}
