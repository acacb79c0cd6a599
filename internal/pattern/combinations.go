// In file: internal/pattern/combinations.go
package pattern

import (
	"log"
)

// =================================================================================
// Combination Detector
// =================================================================================
// The detector inspects the top-ranked scores for co-occurrence of two strong
// patterns that justify a hybrid recommendation. Scores are normalized against
// the best total across ALL patterns, then each named rule fires only when
// every member pattern sits inside the top-N window with a normalized score at
// or above the rule's threshold.
//
// The thresholds are deliberately asymmetric: RAG+AGENT hybrids are common
// enough to trigger even when one side dominates (0.33), while MAPREDUCE+AGENT
// combos are rare and require both to be strong (0.70).
// =================================================================================

// CombinationRule names a two-pattern co-occurrence and the minimum normalized
// score each member must reach inside the rank window.
type CombinationRule struct {
	Name          string  `yaml:"name"`
	Patterns      []Type  `yaml:"patterns"`
	MinNormalized float64 `yaml:"min_normalized"`
}

// DefaultCombinationRules returns the built-in rule set.
func DefaultCombinationRules() []CombinationRule {
	return []CombinationRule{
		{Name: "intelligent_rag", Patterns: []Type{TypeRAG, TypeAgent}, MinNormalized: 0.33},
		{Name: "integration_workflow", Patterns: []Type{TypeTool, TypeWorkflow}, MinNormalized: 0.65},
		{Name: "smart_processing", Patterns: []Type{TypeMapReduce, TypeAgent}, MinNormalized: 0.70},
	}
}

// defaultCombinationWindow is the number of top-ranked scores considered.
const defaultCombinationWindow = 4

// CombinationDetector evaluates the rule set against a sorted score list.
type CombinationDetector struct {
	rules  []CombinationRule
	window int
}

// NewCombinationDetector creates a detector with the given rules; a window of
// zero or less falls back to the default of 4.
func NewCombinationDetector(rules []CombinationRule, window int) *CombinationDetector {
	if window <= 0 {
		window = defaultCombinationWindow
	}
	return &CombinationDetector{rules: rules, window: window}
}

// Detect returns the fired rules by name. The scores slice must already be
// sorted by total descending, as produced by Scorer.Score. A fault anywhere in
// rule evaluation is recovered and treated as "no combinations detected";
// combinations are advisory metadata and must never abort a recommendation.
func (d *CombinationDetector) Detect(scores []Score) (result map[string]CombinationInfo) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("combination detection recovered from fault, returning none: %v", r)
			result = map[string]CombinationInfo{}
		}
	}()

	result = map[string]CombinationInfo{}
	if len(scores) == 0 {
		return result
	}

	// Normalize against the best total across the full list, not the window.
	maxTotal := scores[0].TotalScore
	for _, s := range scores {
		if s.TotalScore > maxTotal {
			maxTotal = s.TotalScore
		}
	}
	if maxTotal <= 0 {
		return result
	}

	window := d.window
	if window > len(scores) {
		window = len(scores)
	}
	normalized := make(map[Type]float64, window)
	for _, s := range scores[:window] {
		normalized[s.Pattern] = s.TotalScore / maxTotal
	}

	for _, rule := range d.rules {
		fired := true
		combined := 0.0
		for _, member := range rule.Patterns {
			norm, inWindow := normalized[member]
			if !inWindow || norm < rule.MinNormalized {
				fired = false
				break
			}
			combined += norm
		}
		if fired {
			result[rule.Name] = CombinationInfo{
				Patterns:      rule.Patterns,
				CombinedScore: combined,
				RankWindow:    window,
			}
		}
	}
	return result
}

// strongest returns the fired combination with the highest combined score,
// breaking score ties by name so the choice is deterministic.
func strongest(combos map[string]CombinationInfo) (string, CombinationInfo, bool) {
	bestName := ""
	var best CombinationInfo
	for name, info := range combos {
		if bestName == "" ||
			info.CombinedScore > best.CombinedScore ||
			(info.CombinedScore == best.CombinedScore && name < bestName) {
			bestName, best = name, info
		}
	}
	return bestName, best, bestName != ""
}
