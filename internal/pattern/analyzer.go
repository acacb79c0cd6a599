// In file: internal/pattern/analyzer.go
package pattern

import (
	"regexp"
	"strings"
)

// =================================================================================
// Requirement Analyzer
// =================================================================================
// The analyzer normalizes a raw requirement text into a structured Analysis.
// It tokenizes the text into a keyword bag and independently runs four fixed
// families of pre-compiled regex patterns over the full lowercased text.
// Every regex is compiled once at package load; Analyze itself is a pure
// function and never fails for well-formed input, including the empty string.
// =================================================================================

var (
	wordRegex = regexp.MustCompile(`\w+`)

	// Complexity/scale/coordination phrases.
	complexityArchetypes = []*regexp.Regexp{
		regexp.MustCompile(`complex|complicated|advanced|sophisticated|enterprise`),
		regexp.MustCompile(`multi-step|multi-stage|multi-phase`),
		regexp.MustCompile(`scalable|scale|performance|optimize`),
		regexp.MustCompile(`integrate|coordination|orchestrat\w*`),
	}

	// Technology-category phrases: api/db/cloud/container/service families.
	technicalArchetypes = []*regexp.Regexp{
		regexp.MustCompile(`\bapi\b|\brest\b|graphql|endpoint|webhook`),
		regexp.MustCompile(`database|\bsql\b|postgres|mysql|mongodb|redis`),
		regexp.MustCompile(`cloud|\baws\b|azure|\bgcp\b|serverless`),
		regexp.MustCompile(`docker|container|kubernetes`),
		regexp.MustCompile(`microservice|service mesh|grpc|message queue`),
	}

	// "integrate with X" / "connect to X" / third-party phrases.
	integrationArchetypes = []*regexp.Regexp{
		regexp.MustCompile(`integrat\w*\s+with\s+\w+`),
		regexp.MustCompile(`connect\w*\s+to\s+\w+`),
		regexp.MustCompile(`third[- ]party`),
		regexp.MustCompile(`external\s+(?:system|service|api|tool)s?`),
		regexp.MustCompile(`oauth|\bsso\b|single sign-on`),
	}

	sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)

	// Modal/need verbs marking a sentence as a functional requirement.
	needWords = []string{"need", "want", "require", "should", "must", "will"}
)

// stopwords are filtered out of the keyword bag: articles, conjunctions,
// common auxiliaries, demonstratives and similar glue words.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "a", "an", "and", "or", "but", "nor", "so", "yet",
		"is", "are", "was", "were", "be", "been", "being", "am",
		"do", "does", "did", "done", "have", "has", "had",
		"can", "could", "may", "might", "shall", "would",
		"this", "that", "these", "those", "there", "here",
		"to", "of", "in", "on", "at", "for", "with", "from", "into",
		"about", "over", "under", "between", "through",
		"it", "its", "you", "your", "our", "their", "they", "them",
		"not", "using", "use", "get", "also", "make", "makes",
		"any", "all", "some", "very", "just", "than", "then", "when",
	} {
		stopwords[w] = struct{}{}
	}
}

// Analyzer turns raw requirement text into a structured Analysis.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze is the core parsing function. Input may be arbitrary text, including
// the empty string, which yields an Analysis with empty field lists.
func (a *Analyzer) Analyze(text string) Analysis {
	normalized := strings.ToLower(strings.TrimSpace(text))

	analysis := Analysis{
		RawText:                text,
		ExtractedKeywords:      []string{},
		ComplexityIndicators:   []string{},
		TechnicalRequirements:  []string{},
		FunctionalRequirements: []string{},
		IntegrationNeeds:       []string{},
	}
	if normalized == "" {
		return analysis
	}

	// Keyword bag: word tokens minus stopwords and tokens of length <= 2.
	// Duplicates are retained on purpose.
	for _, token := range wordRegex.FindAllString(normalized, -1) {
		if len(token) <= 2 {
			continue
		}
		if _, isStop := stopwords[token]; isStop {
			continue
		}
		analysis.ExtractedKeywords = append(analysis.ExtractedKeywords, token)
	}

	// The four archetype families scan the full lowercased text, not the
	// token bag, so hyphenated and multi-word phrases are caught.
	analysis.ComplexityIndicators = collectMatches(complexityArchetypes, normalized)
	analysis.TechnicalRequirements = collectMatches(technicalArchetypes, normalized)
	analysis.IntegrationNeeds = collectMatches(integrationArchetypes, normalized)
	analysis.FunctionalRequirements = extractFunctionalSentences(normalized)

	return analysis
}

// collectMatches runs each archetype over the text and concatenates all matches
// in family declaration order.
func collectMatches(family []*regexp.Regexp, text string) []string {
	matches := []string{}
	for _, re := range family {
		matches = append(matches, re.FindAllString(text, -1)...)
	}
	return matches
}

// extractFunctionalSentences splits the text into sentences and keeps those
// longer than 10 characters that contain a modal/need verb.
func extractFunctionalSentences(text string) []string {
	sentences := []string{}
	for _, sentence := range sentenceSplitRegex.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 10 {
			continue
		}
		for _, word := range needWords {
			if strings.Contains(sentence, word) {
				sentences = append(sentences, sentence)
				break
			}
		}
	}
	return sentences
}
