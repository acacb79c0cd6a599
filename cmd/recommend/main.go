// In file: cmd/recommend/main.go

// Package main implements the offline recommendation CLI. It reads a
// requirements document from a file or stdin, runs the full analysis pipeline
// locally, and prints the recommendation either as JSON for downstream tooling
// or as a human-readable report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dileep-u-k/pattern-engine/internal/dispatch"
	"github.com/dileep-u-k/pattern-engine/internal/pattern"
	"gopkg.in/yaml.v3"
)

func main() {
	log.SetFlags(log.LstdFlags)

	var (
		inputPath   = flag.String("file", "", "Path to the requirements file (default: read stdin).")
		projectName = flag.String("project", "", "Project name to stamp onto the recommendation.")
		configPath  = flag.String("config", "", "Optional engine config.yaml overriding the built-in rule tables.")
		asJSON      = flag.Bool("json", false, "Print the full recommendation as JSON instead of a report.")
		forced      = flag.String("force-pattern", "", "Override the primary pattern (e.g. RAG, AGENT).")
		maxNodes    = flag.Int("max-nodes", 0, "Cap the estimated node count (0 = no cap).")
	)
	flag.Parse()

	text, err := readRequirements(*inputPath)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		log.Fatal("❌ FATAL: No requirement text provided.")
	}

	cfg, err := loadEngineConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}

	engine := pattern.NewEngine(cfg)
	rec := engine.AnalyzeAndRecommendProject(text, *projectName)

	override := dispatch.Override{
		ForcePattern:      pattern.Type(strings.ToUpper(*forced)),
		MaxEstimatedNodes: *maxNodes,
	}
	rec = override.Apply(rec)

	if *asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(rec); err != nil {
			log.Fatalf("❌ FATAL: Failed to encode recommendation: %v", err)
		}
		return
	}
	printReport(rec)
}

// readRequirements reads the requirement text from a file, or from stdin when
// no path is given.
func readRequirements(path string) (string, error) {
	if path == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(raw), nil
}

// loadEngineConfig parses the optional engine section of a config.yaml. An
// empty path selects the built-in defaults.
func loadEngineConfig(path string) (pattern.Config, error) {
	if path == "" {
		return pattern.Config{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return pattern.Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var file struct {
		Engine pattern.Config `yaml:"engine"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return pattern.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file.Engine, nil
}

// printReport renders the human-readable summary.
func printReport(rec pattern.Recommendation) {
	fmt.Printf("Primary pattern:  %s\n", rec.PrimaryPattern)
	fmt.Printf("Confidence:       %.2f\n", rec.ConfidenceScore)
	fmt.Printf("Complexity:       %s\n", rec.Complexity.Label())
	fmt.Printf("Target stage:     %s\n", dispatch.StageFor(rec))
	if rec.ProjectName != "" {
		fmt.Printf("Project:          %s\n", rec.ProjectName)
	}
	if len(rec.SecondaryPatterns) > 0 {
		names := make([]string, len(rec.SecondaryPatterns))
		for i, p := range rec.SecondaryPatterns {
			names[i] = string(p)
		}
		fmt.Printf("Also considered:  %s\n", strings.Join(names, ", "))
	}
	fmt.Printf("\n%s\n", rec.Rationale)
	fmt.Printf("\n%s", rec.DetailedJustification)
}
