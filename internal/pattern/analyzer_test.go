// In file: internal/pattern/analyzer_test.go
package pattern

import (
	"reflect"
	"testing"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	a := NewAnalyzer()
	for _, input := range []string{"", "   ", "\n\t"} {
		analysis := a.Analyze(input)
		if len(analysis.ExtractedKeywords) != 0 {
			t.Errorf("Analyze(%q): expected no keywords, got %v", input, analysis.ExtractedKeywords)
		}
		if len(analysis.ComplexityIndicators) != 0 || len(analysis.TechnicalRequirements) != 0 ||
			len(analysis.FunctionalRequirements) != 0 || len(analysis.IntegrationNeeds) != 0 {
			t.Errorf("Analyze(%q): expected all empty families, got %+v", input, analysis)
		}
	}
}

func TestAnalyzeKeywordExtraction(t *testing.T) {
	a := NewAnalyzer()
	analysis := a.Analyze("The search engine must search the big document index")

	// Stopwords and short tokens are filtered; duplicates stay.
	want := []string{"search", "engine", "must", "search", "big", "document", "index"}
	if !reflect.DeepEqual(analysis.ExtractedKeywords, want) {
		t.Errorf("keywords = %v, want %v", analysis.ExtractedKeywords, want)
	}
}

func TestAnalyzeKeywordsAreLowercased(t *testing.T) {
	a := NewAnalyzer()
	analysis := a.Analyze("BATCH Processing PIPELINE")
	want := []string{"batch", "processing", "pipeline"}
	if !reflect.DeepEqual(analysis.ExtractedKeywords, want) {
		t.Errorf("keywords = %v, want %v", analysis.ExtractedKeywords, want)
	}
}

func TestAnalyzeComplexityIndicators(t *testing.T) {
	a := NewAnalyzer()
	analysis := a.Analyze("An enterprise multi-step pipeline that must scale")

	wantMatches := map[string]bool{"enterprise": false, "multi-step": false, "scale": false}
	for _, m := range analysis.ComplexityIndicators {
		if _, tracked := wantMatches[m]; tracked {
			wantMatches[m] = true
		}
	}
	for phrase, found := range wantMatches {
		if !found {
			t.Errorf("complexity indicators %v missing %q", analysis.ComplexityIndicators, phrase)
		}
	}
}

func TestAnalyzeTechnicalAndIntegration(t *testing.T) {
	a := NewAnalyzer()
	analysis := a.Analyze("The service must integrate with salesforce, store data in a postgres database, and expose a rest api")

	if len(analysis.TechnicalRequirements) == 0 {
		t.Fatal("expected technical requirements for api/database mentions")
	}
	if len(analysis.IntegrationNeeds) == 0 {
		t.Fatal("expected integration needs for 'integrate with salesforce'")
	}
}

func TestAnalyzeFunctionalSentences(t *testing.T) {
	a := NewAnalyzer()
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"need sentence kept", "We need a reporting dashboard for the sales team.", 1},
		{"short sentence dropped", "Must go. The archive viewer only displays items.", 0},
		{"sentence without need verb dropped", "The system parses uploaded files into records.", 0},
		{"multiple sentences", "Users must upload files. The system should validate each one. Done!", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := a.Analyze(tt.input)
			if got := len(analysis.FunctionalRequirements); got != tt.want {
				t.Errorf("functional requirements = %v (len %d), want len %d",
					analysis.FunctionalRequirements, got, tt.want)
			}
		})
	}
}

func TestAnalyzeIsPure(t *testing.T) {
	a := NewAnalyzer()
	const text = "Build a scalable batch pipeline that must integrate with stripe"
	first := a.Analyze(text)
	second := a.Analyze(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analyze is not deterministic:\nfirst  %+v\nsecond %+v", first, second)
	}
}
