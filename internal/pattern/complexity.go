// In file: internal/pattern/complexity.go
package pattern

// Complexity tier thresholds over the additive signal score.
const (
	complexityHighThreshold   = 15
	complexityMediumThreshold = 8
)

// AssessComplexity derives the coarse complexity tier for an analysis,
// independent of any pattern. The score is additive over the analysis signals:
// complexity phrases and integration needs count double, functional
// requirements are capped at 5, and a keyword-volume bonus rewards longer,
// denser requirement texts.
func AssessComplexity(analysis Analysis) ComplexityLevel {
	score := 2*len(analysis.ComplexityIndicators) +
		len(analysis.TechnicalRequirements) +
		2*len(analysis.IntegrationNeeds) +
		min(len(analysis.FunctionalRequirements), 5)

	switch keywordCount := len(analysis.ExtractedKeywords); {
	case keywordCount > 50:
		score += 3
	case keywordCount > 30:
		score += 2
	case keywordCount > 20:
		score += 1
	}

	switch {
	case score >= complexityHighThreshold:
		return ComplexityHigh
	case score >= complexityMediumThreshold:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}
