// In file: internal/pattern/scorer.go
package pattern

import (
	"sort"
	"strings"
)

// =================================================================================
// Scoring Engine
// =================================================================================
// The scorer applies the indicator table to an Analysis and produces one Score
// per pattern, sorted by total descending. Scoring is deterministic and pure:
// same analysis + same tables = identical output, bit for bit.
//
// Matching rules, per indicator keyword:
//   - Full credit (weight) if the keyword substring-matches any entry of the
//     extracted keyword bag.
//   - Half credit (weight * 0.5) if the keyword substring-matches the raw
//     lowercased text. This stacks with the full credit on purpose: phrase
//     matches and token matches are separately rewarded.
// Context multipliers (pattern-specific, then global) each contribute
// base_score * (multiplier - 1) to the context score when their trigger
// matches any entry of the keyword bag.
// =================================================================================

// Scorer evaluates every indicator against an analysis.
type Scorer struct {
	indicators   []Indicator
	contextRules []ContextRule
}

// NewScorer creates a scorer over the given indicator table and global
// context rules.
func NewScorer(indicators []Indicator, contextRules []ContextRule) *Scorer {
	return &Scorer{indicators: indicators, contextRules: contextRules}
}

// Score produces exactly one entry per indicator, including zero-score entries
// for patterns with no matches; downstream combination detection and the
// "alternatives considered" report both rely on the full list being present.
// The result is sorted by total score descending; ties keep indicator
// declaration order (stable sort).
func (s *Scorer) Score(analysis Analysis) []Score {
	rawText := strings.ToLower(analysis.RawText)

	scores := make([]Score, 0, len(s.indicators))
	for _, indicator := range s.indicators {
		score := Score{
			Pattern:           indicator.Pattern,
			MatchedIndicators: []string{},
			ConfidenceFactors: []string{},
		}

		for _, keyword := range indicator.Keywords {
			matched := false
			if matchesKeywordBag(analysis.ExtractedKeywords, keyword) {
				score.BaseScore += indicator.Weight
				matched = true
			}
			if strings.Contains(rawText, keyword) {
				score.BaseScore += indicator.Weight * 0.5
				matched = true
			}
			if matched {
				score.MatchedIndicators = append(score.MatchedIndicators, keyword)
			}
		}

		// Pattern-specific multipliers first, then the global rule table.
		for _, rule := range indicator.ContextMultipliers {
			if matchesKeywordBag(analysis.ExtractedKeywords, rule.Trigger) {
				score.ContextScore += score.BaseScore * (rule.Multiplier - 1.0)
				score.ConfidenceFactors = append(score.ConfidenceFactors, "Context: "+rule.Trigger)
			}
		}
		for _, rule := range s.contextRules {
			if matchesKeywordBag(analysis.ExtractedKeywords, rule.Trigger) {
				score.ContextScore += score.BaseScore * (rule.Multiplier - 1.0)
				score.ConfidenceFactors = append(score.ConfidenceFactors, "Rule: "+rule.Trigger)
			}
		}

		score.TotalScore = score.BaseScore + score.ContextScore
		scores = append(scores, score)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})
	return scores
}

// matchesKeywordBag reports whether the keyword substring-matches any entry of
// the extracted keyword bag.
func matchesKeywordBag(keywords []string, keyword string) bool {
	for _, entry := range keywords {
		if strings.Contains(entry, keyword) {
			return true
		}
	}
	return false
}
