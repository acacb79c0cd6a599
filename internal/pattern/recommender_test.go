// In file: internal/pattern/recommender_test.go
package pattern

import (
	"math"
	"strings"
	"testing"
)

func newTestRecommender() *Recommender {
	return NewRecommender(NewCombinationDetector(DefaultCombinationRules(), 0))
}

func keywordBag(n int) []string {
	bag := make([]string, n)
	for i := range bag {
		bag[i] = "keyword"
	}
	return bag
}

func TestRecommendFallbackOnZeroScores(t *testing.T) {
	r := newTestRecommender()

	for _, scores := range [][]Score{nil, scoresFor(map[Type]float64{})} {
		rec := r.Recommend(scores, Analysis{})
		if rec.PrimaryPattern != TypeWorkflow {
			t.Errorf("fallback primary = %v, want WORKFLOW", rec.PrimaryPattern)
		}
		if rec.ConfidenceScore != 0.5 {
			t.Errorf("fallback confidence = %v, want exactly 0.5", rec.ConfidenceScore)
		}
		if len(rec.SecondaryPatterns) != 0 {
			t.Errorf("fallback secondaries = %v, want none", rec.SecondaryPatterns)
		}
		if !strings.Contains(rec.Rationale, "Defaulting to a general WORKFLOW") {
			t.Errorf("fallback rationale = %q", rec.Rationale)
		}
	}
}

func TestRecommendSecondaryThreshold(t *testing.T) {
	r := newTestRecommender()
	// AGENT clears 70% of the primary total, TOOL falls just short.
	scores := scoresFor(map[Type]float64{TypeRAG: 10.0, TypeAgent: 7.0, TypeTool: 6.9})
	analysis := Analysis{ExtractedKeywords: keywordBag(20)}

	rec := r.Recommend(scores, analysis)
	if rec.PrimaryPattern != TypeRAG {
		t.Fatalf("primary = %v, want RAG", rec.PrimaryPattern)
	}
	if len(rec.SecondaryPatterns) != 1 || rec.SecondaryPatterns[0] != TypeAgent {
		t.Fatalf("secondaries = %v, want exactly [AGENT]", rec.SecondaryPatterns)
	}
}

func TestRecommendConfidenceIsClamped(t *testing.T) {
	r := newTestRecommender()
	scores := scoresFor(map[Type]float64{TypeRAG: 100.0})
	analysis := Analysis{ExtractedKeywords: keywordBag(2)}

	rec := r.Recommend(scores, analysis)
	if rec.ConfidenceScore != 1.0 {
		t.Fatalf("confidence = %v, want clamp to 1.0", rec.ConfidenceScore)
	}
}

func TestRecommendClearWinnerBonus(t *testing.T) {
	r := newTestRecommender()
	// 3.0/(10*2) = 0.15, lead of 2.5 over the runner-up earns the 1.2x bonus.
	scores := scoresFor(map[Type]float64{TypeTool: 3.0, TypeWorkflow: 0.5})
	analysis := Analysis{ExtractedKeywords: keywordBag(10)}

	rec := r.Recommend(scores, analysis)
	if math.Abs(rec.ConfidenceScore-0.18) > 1e-9 {
		t.Fatalf("confidence = %v, want 0.18", rec.ConfidenceScore)
	}
}

func TestRecommendCombinationAttachment(t *testing.T) {
	r := newTestRecommender()
	scores := scoresFor(map[Type]float64{TypeRAG: 6.0, TypeAgent: 6.0})
	analysis := Analysis{ExtractedKeywords: keywordBag(10)}

	rec := r.Recommend(scores, analysis)

	if hybrid, ok := rec.TemplateCustomizations["hybrid_candidate"].(bool); !ok || !hybrid {
		t.Fatal("expected hybrid_candidate=true when a combination fires")
	}
	combos, ok := rec.TemplateCustomizations["combination_info"].(map[string]CombinationInfo)
	if !ok {
		t.Fatalf("combination_info missing or wrong type: %T", rec.TemplateCustomizations["combination_info"])
	}
	if _, ok := combos["intelligent_rag"]; !ok {
		t.Fatalf("expected intelligent_rag in %v", combos)
	}
	if !strings.HasPrefix(rec.Rationale, "Detected composite scenario:") {
		t.Errorf("rationale not prefixed: %q", rec.Rationale)
	}

	// Both members sit at the max, so the combination is robust: base
	// 6/(10*2)=0.30 plus the 0.05 bump. Tied totals earn no winner bonus.
	if math.Abs(rec.ConfidenceScore-0.35) > 1e-9 {
		t.Errorf("confidence = %v, want 0.35", rec.ConfidenceScore)
	}
}

func TestRecommendEnterpriseCustomizations(t *testing.T) {
	r := newTestRecommender()
	scores := scoresFor(map[Type]float64{TypeWorkflow: 4.0})
	analysis := Analysis{
		ExtractedKeywords:    keywordBag(10),
		ComplexityIndicators: []string{"enterprise"},
	}

	rec := r.Recommend(scores, analysis)
	if rec.TemplateCustomizations["logging_level"] != "detailed" {
		t.Error("enterprise requirement must set logging_level=detailed")
	}
	if rec.TemplateCustomizations["monitoring"] != true || rec.TemplateCustomizations["caching"] != true {
		t.Error("enterprise requirement must enable monitoring and caching")
	}
	if rec.WorkflowSuggestions["error_handling"] != "comprehensive" {
		t.Errorf("error_handling = %v, want comprehensive", rec.WorkflowSuggestions["error_handling"])
	}
}

func TestRecommendAttachesGraduatedStructure(t *testing.T) {
	r := newTestRecommender()
	scores := scoresFor(map[Type]float64{TypeRAG: 4.0})
	rec := r.Recommend(scores, Analysis{ExtractedKeywords: keywordBag(5)})

	structure, ok := rec.TemplateCustomizations["graduated_structure"].(GraduatedStructure)
	if !ok {
		t.Fatalf("graduated_structure missing or wrong type: %T", rec.TemplateCustomizations["graduated_structure"])
	}
	if structure.ArchitectureTemplate != "SIMPLE_RAG" || structure.NodeCount != 4 {
		t.Fatalf("low-tier RAG structure = %+v", structure)
	}
}

func TestGraduatedStructureTable(t *testing.T) {
	tests := []struct {
		level     ComplexityLevel
		pattern   Type
		nodes     int
		template  string
		utilities bool
	}{
		{ComplexityLow, TypeWorkflow, 3, "SIMPLE_WORKFLOW", false},
		{ComplexityMedium, TypeRAG, 5, "ENHANCED_RAG", true},
		{ComplexityHigh, TypeMultiAgent, 10, "MULTI_AGENT_SYSTEM", true},
		{ComplexityHigh, TypeStructuredOutput, 6, "STRUCTURED_OUTPUT_SYSTEM", true},
	}
	for _, tt := range tests {
		got := graduatedStructure(tt.level, tt.pattern)
		if got.NodeCount != tt.nodes || got.ArchitectureTemplate != tt.template || got.UtilitiesRequired != tt.utilities {
			t.Errorf("graduatedStructure(%v, %v) = %+v", tt.level, tt.pattern, got)
		}
	}
}

func TestBuildCustomizationsHints(t *testing.T) {
	tests := []struct {
		name    string
		pattern Type
		text    string
		key     string
		want    any
	}{
		{"rag chroma", TypeRAG, "index docs into chroma", "vector_database", "chromadb"},
		{"rag default", TypeRAG, "basic document search", "vector_database", "faiss"},
		{"agent claude", TypeAgent, "an assistant built on claude", "llm_provider", "anthropic"},
		{"agent default", TypeAgent, "an autonomous assistant", "llm_provider", "openai"},
		{"tool webhook", TypeTool, "receive webhook callbacks", "integration_type", "webhook"},
		{"tool rest wins", TypeTool, "webhook plus a rest api", "integration_type", "rest"},
		{"workflow approvals", TypeWorkflow, "manager approval required", "approval_gates", true},
		{"structured yaml", TypeStructuredOutput, "emit yaml reports", "schema_format", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildCustomizations(tt.pattern, Analysis{RawText: tt.text})
			if got[tt.key] != tt.want {
				t.Errorf("customizations[%q] = %v, want %v", tt.key, got[tt.key], tt.want)
			}
		})
	}
}

func TestBuildWorkflowSuggestions(t *testing.T) {
	analysis := Analysis{
		RawText:                "call the partner api and aggregate results",
		ComplexityIndicators:   []string{"scale", "performance"},
		TechnicalRequirements:  []string{"api", "database"},
		FunctionalRequirements: []string{"a", "b", "c"},
		IntegrationNeeds:       []string{"integrate with partner"},
	}

	got := buildWorkflowSuggestions(TypeMapReduce, analysis, false)

	// 3 base + 2*2 complexity + 3 functional + 1 integration.
	if got["estimated_nodes"] != 11 {
		t.Errorf("estimated_nodes = %v, want 11", got["estimated_nodes"])
	}
	utilities, _ := got["suggested_utilities"].([]string)
	for _, want := range []string{"batch_splitter", "api_client", "database_connector", "performance_monitor"} {
		found := false
		for _, u := range utilities {
			if u == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("suggested_utilities missing %q: %v", want, utilities)
		}
	}
	if got["async_processing"] != true {
		t.Error("api mention must flag async_processing")
	}
	if got["error_handling"] != "basic" {
		t.Errorf("error_handling = %v, want basic", got["error_handling"])
	}
	groups, _ := got["node_groups"].(map[string][]string)
	if _, ok := groups["reduce"]; !ok {
		t.Errorf("node_groups missing reduce group: %v", groups)
	}
}

func TestJustificationSections(t *testing.T) {
	r := newTestRecommender()
	scores := scoresFor(map[Type]float64{TypeRAG: 5.0, TypeAgent: 2.0})
	scores[0].MatchedIndicators = []string{"search", "vector"}
	scores[0].ConfidenceFactors = []string{"Context: database (x1.20)"}
	analysis := Analysis{
		ExtractedKeywords:     keywordBag(10),
		TechnicalRequirements: []string{"database"},
	}

	rec := r.Recommend(scores, analysis)
	for _, section := range []string{
		"## Primary Pattern",
		"## Matched Indicators",
		"## Confidence Factors",
		"## Alternatives Considered",
		"## Complexity Assessment",
		"## Technical Alignment",
		"## Implementation Recommendations",
	} {
		if !strings.Contains(rec.DetailedJustification, section) {
			t.Errorf("justification missing section %q", section)
		}
	}
}
