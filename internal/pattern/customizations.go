// In file: internal/pattern/customizations.go
package pattern

import (
	"strings"
)

// =================================================================================
// Template Customizations & Workflow Suggestions
// =================================================================================
// Everything in this file is table lookup plus cheap text hints: the
// pattern-specific configuration defaults stamped into generated templates,
// the utility and node-group suggestions, and the graduated complexity
// mapping from (tier x pattern) to a canonical architecture template.
// =================================================================================

// buildCustomizations derives the pattern-specific template configuration.
// Hints are read from the raw lowercased text, e.g. a "chroma" mention selects
// chromadb as the vector store.
func buildCustomizations(pattern Type, analysis Analysis) map[string]any {
	text := strings.ToLower(analysis.RawText)
	customizations := map[string]any{}

	switch pattern {
	case TypeRAG:
		switch {
		case strings.Contains(text, "chroma"):
			customizations["vector_database"] = "chromadb"
		case strings.Contains(text, "pinecone"):
			customizations["vector_database"] = "pinecone"
		default:
			customizations["vector_database"] = "faiss"
		}
		customizations["chunk_size"] = 1000
		customizations["similarity_threshold"] = 0.7
	case TypeAgent:
		if strings.Contains(text, "anthropic") || strings.Contains(text, "claude") {
			customizations["llm_provider"] = "anthropic"
		} else {
			customizations["llm_provider"] = "openai"
		}
		customizations["memory_enabled"] = strings.Contains(text, "conversation")
	case TypeTool:
		if strings.Contains(text, "webhook") && !strings.Contains(text, "rest") {
			customizations["integration_type"] = "webhook"
		} else {
			customizations["integration_type"] = "rest"
		}
		if strings.Contains(text, "oauth") {
			customizations["auth_scheme"] = "oauth"
		} else {
			customizations["auth_scheme"] = "api_key"
		}
	case TypeWorkflow:
		customizations["state_persistence"] = true
		customizations["approval_gates"] = strings.Contains(text, "approval")
	case TypeMapReduce:
		customizations["batch_size"] = 100
		customizations["parallel_workers"] = 4
	case TypeMultiAgent:
		customizations["coordination_style"] = "supervisor"
		customizations["agent_count"] = 3
	case TypeStructuredOutput:
		if strings.Contains(text, "yaml") {
			customizations["schema_format"] = "yaml"
		} else {
			customizations["schema_format"] = "json"
		}
		customizations["strict_validation"] = true
	}

	return customizations
}

// isEnterprise reports whether "enterprise" appears among the matched
// complexity indicators.
func isEnterprise(analysis Analysis) bool {
	for _, indicator := range analysis.ComplexityIndicators {
		if strings.Contains(indicator, "enterprise") {
			return true
		}
	}
	return false
}

// asyncHints flag the requirement for asynchronous processing.
var asyncHints = []string{"async", "concurrent", "parallel", "api", "external"}

// buildWorkflowSuggestions derives the structural metadata for the generated
// scaffold: node estimate, utility modules, async/error-handling hints, and
// pattern-specific node groups.
func buildWorkflowSuggestions(pattern Type, analysis Analysis, enterprise bool) map[string]any {
	estimatedNodes := 3 +
		2*len(analysis.ComplexityIndicators) +
		min(len(analysis.FunctionalRequirements), 5) +
		len(analysis.IntegrationNeeds)

	utilities := append([]string{}, patternUtilities[pattern]...)
	for _, req := range analysis.TechnicalRequirements {
		if strings.Contains(req, "api") {
			utilities = append(utilities, "api_client")
		}
		if strings.Contains(req, "database") {
			utilities = append(utilities, "database_connector")
		}
	}
	for _, indicator := range analysis.ComplexityIndicators {
		if strings.Contains(indicator, "performance") {
			utilities = append(utilities, "performance_monitor")
		}
	}
	utilities = dedupeCapped(utilities, 8)

	text := strings.ToLower(analysis.RawText)
	asyncProcessing := false
	for _, hint := range asyncHints {
		if strings.Contains(text, hint) {
			asyncProcessing = true
			break
		}
	}

	errorHandling := "basic"
	if enterprise {
		errorHandling = "comprehensive"
	}

	return map[string]any{
		"estimated_nodes":     estimatedNodes,
		"suggested_utilities": utilities,
		"async_processing":    asyncProcessing,
		"error_handling":      errorHandling,
		"node_groups":         patternNodeGroups[pattern],
	}
}

// dedupeCapped removes duplicates preserving first-seen order and caps the
// result length.
func dedupeCapped(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
		if len(result) == limit {
			break
		}
	}
	return result
}

// patternUtilities suggests utility module names per pattern.
var patternUtilities = map[Type][]string{
	TypeRAG:              {"vector_search", "document_processor", "embedding_generator"},
	TypeAgent:            {"llm_caller", "memory_store", "prompt_builder"},
	TypeTool:             {"http_client", "retry_handler", "response_parser"},
	TypeWorkflow:         {"state_manager", "step_executor", "notification_sender"},
	TypeMapReduce:        {"batch_splitter", "result_aggregator", "worker_pool"},
	TypeMultiAgent:       {"message_bus", "agent_registry", "coordinator"},
	TypeStructuredOutput: {"schema_validator", "output_formatter", "field_extractor"},
}

// patternNodeGroups suggests named node groups per pattern.
var patternNodeGroups = map[Type]map[string][]string{
	TypeRAG: {
		"preprocessing": {"ChunkDocuments", "EmbedChunks"},
		"retrieval":     {"RetrieveContext", "RankResults"},
		"generation":    {"GenerateAnswer", "FormatCitations"},
	},
	TypeAgent: {
		"perception": {"GatherContext"},
		"reasoning":  {"DecideAction"},
		"action":     {"ExecuteAction", "RecordOutcome"},
	},
	TypeTool: {
		"request":  {"BuildRequest", "CallService"},
		"response": {"ParseResponse", "HandleFailure"},
	},
	TypeWorkflow: {
		"intake":  {"ValidateInput"},
		"process": {"ExecuteSteps"},
		"finish":  {"PersistResult", "Notify"},
	},
	TypeMapReduce: {
		"map":    {"SplitBatches", "ProcessBatch"},
		"reduce": {"MergeResults"},
	},
	TypeMultiAgent: {
		"coordination": {"AssignRoles", "RouteMessages"},
		"execution":    {"RunAgents", "CollectDecisions"},
	},
	TypeStructuredOutput: {
		"extraction": {"ExtractFields"},
		"validation": {"ValidateSchema", "EmitOutput"},
	},
}

// =================================================================================
// Graduated Complexity Mapping
// =================================================================================

// GraduatedStructure is the canonical scaffold shape for one
// (complexity tier, pattern) cell.
type GraduatedStructure struct {
	NodeCount            int    `json:"node_count"`
	ArchitectureTemplate string `json:"architecture_template"`
	UtilitiesRequired    bool   `json:"utilities_required"`
	ComplexityLabel      string `json:"complexity_label"`
}

// graduatedNodeCounts is the fixed (tier x pattern) node-count table.
var graduatedNodeCounts = map[ComplexityLevel]map[Type]int{
	ComplexityLow: {
		TypeRAG: 4, TypeAgent: 4, TypeTool: 3, TypeWorkflow: 3,
		TypeMapReduce: 4, TypeMultiAgent: 5, TypeStructuredOutput: 3,
	},
	ComplexityMedium: {
		TypeRAG: 5, TypeAgent: 6, TypeTool: 5, TypeWorkflow: 6,
		TypeMapReduce: 6, TypeMultiAgent: 7, TypeStructuredOutput: 5,
	},
	ComplexityHigh: {
		TypeRAG: 7, TypeAgent: 8, TypeTool: 7, TypeWorkflow: 8,
		TypeMapReduce: 8, TypeMultiAgent: 10, TypeStructuredOutput: 6,
	},
}

// graduatedStructure looks up the canonical node count and template name for
// the tier/pattern cell. The mapping is a fixed table, never computed.
func graduatedStructure(level ComplexityLevel, pattern Type) GraduatedStructure {
	structure := GraduatedStructure{
		NodeCount:       graduatedNodeCounts[level][pattern],
		ComplexityLabel: level.Label(),
	}
	switch level {
	case ComplexityHigh:
		structure.ArchitectureTemplate = string(pattern) + "_SYSTEM"
		structure.UtilitiesRequired = true
	case ComplexityMedium:
		structure.ArchitectureTemplate = "ENHANCED_" + string(pattern)
		structure.UtilitiesRequired = true
	default:
		structure.ArchitectureTemplate = "SIMPLE_" + string(pattern)
	}
	return structure
}
