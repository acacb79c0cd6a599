// In file: internal/pattern/indicators.go
package pattern

// =================================================================================
// Pattern Indicator Table
// =================================================================================
// This table is the entire domain-knowledge surface of the engine: every
// recommendation flows from these keyword lists, weights, and multipliers.
// There is exactly one canonical table. TOOL and WORKFLOW carry boosted weights
// and web/CRUD vocabulary so that ordinary web-app requirements resolve to
// them instead of drifting toward the AI-flavored patterns.
// =================================================================================

// DefaultIndicators returns the canonical indicator set, one entry per
// scorable pattern, in the declaration order used for score tie-breaking.
func DefaultIndicators() []Indicator {
	return []Indicator{
		{
			Pattern: TypeRAG,
			Keywords: []string{
				"search", "retrieval", "document", "knowledge base", "semantic",
				"embedding", "vector", "question answering", "corpus", "index",
				"relevant information", "similarity",
			},
			Weight: 1.0,
			ContextMultipliers: []ContextRule{
				{Trigger: "database", Multiplier: 1.2},
				{Trigger: "chroma", Multiplier: 1.3},
				{Trigger: "pinecone", Multiplier: 1.3},
				{Trigger: "chunk", Multiplier: 1.2},
			},
		},
		{
			Pattern: TypeAgent,
			Keywords: []string{
				"agent", "autonomous", "decision", "reasoning", "assistant",
				"conversation", "chat", "memory", "planning", "adaptive",
				"chain of thought",
			},
			Weight: 1.0,
			ContextMultipliers: []ContextRule{
				{Trigger: "tool", Multiplier: 1.2},
				{Trigger: "openai", Multiplier: 1.2},
				{Trigger: "intelligent", Multiplier: 1.15},
			},
		},
		{
			Pattern: TypeTool,
			// Boosted weight plus web/CRUD vocabulary: plain integration and
			// web-service requirements should land here.
			Keywords: []string{
				"integration", "api", "external", "webhook", "rest",
				"endpoint", "http", "crud", "service call", "third party",
				"client", "fetch",
			},
			Weight: 1.1,
			ContextMultipliers: []ContextRule{
				{Trigger: "auth", Multiplier: 1.2},
				{Trigger: "rest", Multiplier: 1.3},
				{Trigger: "webhook", Multiplier: 1.3},
			},
		},
		{
			Pattern: TypeWorkflow,
			// Boosted weight plus web/form vocabulary, same reasoning as TOOL.
			Keywords: []string{
				"workflow", "pipeline", "process", "step", "sequence",
				"stage", "approval", "automation", "orchestration", "form",
				"submit", "web app",
			},
			Weight: 1.1,
			ContextMultipliers: []ContextRule{
				{Trigger: "approval", Multiplier: 1.3},
				{Trigger: "checkpoint", Multiplier: 1.2},
				{Trigger: "status", Multiplier: 1.1},
			},
		},
		{
			Pattern: TypeMapReduce,
			Keywords: []string{
				"batch", "parallel", "dataset", "aggregate", "map",
				"reduce", "distributed", "bulk", "transform", "etl",
				"large volume",
			},
			Weight: 1.0,
			ContextMultipliers: []ContextRule{
				{Trigger: "scale", Multiplier: 1.3},
				{Trigger: "performance", Multiplier: 1.2},
			},
		},
		{
			Pattern: TypeMultiAgent,
			Keywords: []string{
				"multiple agents", "collaborate", "team", "coordination",
				"negotiate", "roles", "specialist", "delegate", "consensus",
				"multi-agent",
			},
			Weight: 1.0,
			ContextMultipliers: []ContextRule{
				{Trigger: "complex", Multiplier: 1.3},
				{Trigger: "orchestrat", Multiplier: 1.2},
			},
		},
		{
			Pattern: TypeStructuredOutput,
			Keywords: []string{
				"extract", "structured", "json", "schema", "parse",
				"fields", "validation", "format", "yaml", "report",
				"template",
			},
			Weight: 1.0,
			ContextMultipliers: []ContextRule{
				{Trigger: "pydantic", Multiplier: 1.3},
				{Trigger: "schema", Multiplier: 1.2},
			},
		},
	}
}

// DefaultContextRules returns the global context-rule table applied to every
// pattern on top of its own multipliers. Values below 1.0 de-emphasize,
// values above 1.0 amplify.
func DefaultContextRules() []ContextRule {
	return []ContextRule{
		{Trigger: "simple", Multiplier: 0.8},
		{Trigger: "basic", Multiplier: 0.85},
		{Trigger: "complex", Multiplier: 1.3},
		{Trigger: "enterprise", Multiplier: 1.4},
		{Trigger: "large", Multiplier: 1.2},
		{Trigger: "scalable", Multiplier: 1.25},
		{Trigger: "realtime", Multiplier: 1.3},
		{Trigger: "production", Multiplier: 1.15},
		{Trigger: "integrate", Multiplier: 1.2},
	}
}
