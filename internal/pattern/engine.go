// In file: internal/pattern/engine.go
package pattern

// =================================================================================
// Engine
// =================================================================================
// Engine wires the full pipeline behind one entry point:
//
//   raw text -> Analyzer -> Scorer -> {complexity, combinations} -> Recommender
//
// The analysis cache wraps the whole pipeline at this boundary, keyed by a
// hash of the normalized input. Each Engine owns its own cache; nothing in the
// pipeline below is stateful, so a single Engine can be shared across
// goroutines.
// =================================================================================

// Config tunes the engine. The zero value selects all defaults, so
// `pattern.NewEngine(pattern.Config{})` is a working engine.
type Config struct {
	// CacheCapacity bounds the in-memory analysis cache (default 100).
	CacheCapacity int `yaml:"cache_capacity"`
	// CombinationWindow is the top-N rank window for combination detection
	// (default 4).
	CombinationWindow int `yaml:"combination_window"`
	// CombinationRules overrides the built-in rule set when non-empty.
	CombinationRules []CombinationRule `yaml:"combination_rules"`
	// ContextRules overrides the built-in global context-rule table when
	// non-empty.
	ContextRules []ContextRule `yaml:"context_rules"`
}

// Engine is the pattern recommendation engine.
type Engine struct {
	analyzer    *Analyzer
	scorer      *Scorer
	recommender *Recommender
	cache       *analysisCache
}

// NewEngine creates a fully wired engine from the given config.
func NewEngine(cfg Config) *Engine {
	contextRules := cfg.ContextRules
	if len(contextRules) == 0 {
		contextRules = DefaultContextRules()
	}
	combinationRules := cfg.CombinationRules
	if len(combinationRules) == 0 {
		combinationRules = DefaultCombinationRules()
	}

	detector := NewCombinationDetector(combinationRules, cfg.CombinationWindow)
	return &Engine{
		analyzer:    NewAnalyzer(),
		scorer:      NewScorer(DefaultIndicators(), contextRules),
		recommender: NewRecommender(detector),
		cache:       newAnalysisCache(cfg.CacheCapacity),
	}
}

// AnalyzeAndRecommend runs the full pipeline for one requirement text. It
// never fails: empty or signal-free input produces the WORKFLOW fallback at
// mid confidence. Repeated identical (normalized) inputs are served from the
// cache without re-running the parser.
func (e *Engine) AnalyzeAndRecommend(text string) Recommendation {
	key := CacheKey(text)
	if cached, hit := e.cache.get(key); hit {
		return cached
	}

	analysis := e.analyzer.Analyze(text)
	scores := e.scorer.Score(analysis)
	recommendation := e.recommender.Recommend(scores, analysis)

	e.cache.put(key, recommendation)
	return recommendation
}

// AnalyzeAndRecommendProject is AnalyzeAndRecommend with the project name
// echoed onto the result. The name does not participate in analysis or
// caching.
func (e *Engine) AnalyzeAndRecommendProject(text, projectName string) Recommendation {
	recommendation := e.AnalyzeAndRecommend(text)
	recommendation.ProjectName = projectName
	return recommendation
}

// Analyze exposes the parsing stage on its own, for callers that want the
// structured analysis without a recommendation.
func (e *Engine) Analyze(text string) Analysis {
	return e.analyzer.Analyze(text)
}

// Score exposes the scoring stage for a prepared analysis.
func (e *Engine) Score(analysis Analysis) []Score {
	return e.scorer.Score(analysis)
}

// CacheContains reports whether a recommendation for the given text is
// currently cached. Instrumentation hook for tests and the stats endpoint.
func (e *Engine) CacheContains(text string) bool {
	return e.cache.contains(CacheKey(text))
}

// CacheLen reports the number of cached analyses.
func (e *Engine) CacheLen() int {
	return e.cache.len()
}
