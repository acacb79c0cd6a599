// In file: internal/dispatch/dispatch.go

// Package dispatch hands finished recommendations off to downstream
// generation stages. The stage is selected by a fixed pattern-to-stage
// mapping; handlers register themselves against a stage name and receive a
// structured payload, plug-and-play, without the dispatcher knowing what any
// stage does with it.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/dileep-u-k/pattern-engine/internal/pattern"
)

// Stage names a downstream process that consumes recommendations.
type Stage string

const (
	// StageDesignDocument renders the justification report into a design
	// document before any files are generated.
	StageDesignDocument Stage = "design-document"
	// StageStrategicPlanning runs a planning pass for coordination-heavy
	// architectures before generation.
	StageStrategicPlanning Stage = "strategic-planning"
	// StageFileGeneration generates scaffold files directly.
	StageFileGeneration Stage = "file-generation"
)

// Handoff is the structured payload delivered to a stage handler.
type Handoff struct {
	TargetStage    Stage                  `json:"target_stage"`
	Recommendation pattern.Recommendation `json:"recommendation"`
	PreparedAt     time.Time              `json:"prepared_at"`
}

// StageHandler is the interface every downstream stage implements.
type StageHandler interface {
	// Stage returns the stage name this handler serves.
	Stage() Stage
	// Handle consumes one hand-off payload.
	Handle(ctx context.Context, handoff Handoff) error
}

// Dispatcher holds a registry of stage handlers.
type Dispatcher struct {
	handlers map[Stage]StageHandler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Stage]StageHandler),
	}
}

// Register adds a stage handler to the registry.
func (d *Dispatcher) Register(handler StageHandler) {
	d.handlers[handler.Stage()] = handler
}

// HandlerCount returns the number of registered handlers.
func (d *Dispatcher) HandlerCount() int {
	return len(d.handlers)
}

// StageFor selects the downstream stage for a recommendation. The mapping is
// fixed: STRUCTURED_OUTPUT goes through the design-document stage,
// coordination-heavy patterns (MULTI_AGENT, MAPREDUCE, and anything flagged as
// a hybrid candidate) go through strategic planning, everything else goes
// straight to file generation.
func StageFor(rec pattern.Recommendation) Stage {
	if hybrid, ok := rec.TemplateCustomizations["hybrid_candidate"].(bool); ok && hybrid {
		return StageStrategicPlanning
	}
	switch rec.PrimaryPattern {
	case pattern.TypeStructuredOutput:
		return StageDesignDocument
	case pattern.TypeMultiAgent, pattern.TypeMapReduce:
		return StageStrategicPlanning
	default:
		return StageFileGeneration
	}
}

// Dispatch packages the recommendation and delivers it to the handler for its
// selected stage.
func (d *Dispatcher) Dispatch(ctx context.Context, rec pattern.Recommendation) (Handoff, error) {
	handoff := Handoff{
		TargetStage:    StageFor(rec),
		Recommendation: rec,
		PreparedAt:     time.Now(),
	}

	handler, ok := d.handlers[handoff.TargetStage]
	if !ok {
		return handoff, fmt.Errorf("no handler registered for stage '%s'", handoff.TargetStage)
	}
	if err := handler.Handle(ctx, handoff); err != nil {
		return handoff, fmt.Errorf("stage '%s' failed: %w", handoff.TargetStage, err)
	}
	return handoff, nil
}

// Override is the user-override layer applied after the engine has finished.
// The engine's output is treated as final: overrides rewrite fields in place,
// never re-score.
type Override struct {
	// ForcePattern replaces the primary pattern when non-empty.
	ForcePattern pattern.Type `yaml:"force_pattern"`
	// MaxEstimatedNodes caps workflow_suggestions["estimated_nodes"] when
	// positive.
	MaxEstimatedNodes int `yaml:"max_estimated_nodes"`
}

// Apply rewrites the recommendation with the override's values and returns the
// result.
func (o Override) Apply(rec pattern.Recommendation) pattern.Recommendation {
	if o.ForcePattern != "" {
		rec.PrimaryPattern = o.ForcePattern
		secondary := make([]pattern.Type, 0, len(rec.SecondaryPatterns))
		for _, t := range rec.SecondaryPatterns {
			if t != o.ForcePattern {
				secondary = append(secondary, t)
			}
		}
		rec.SecondaryPatterns = secondary
	}
	if o.MaxEstimatedNodes > 0 && rec.WorkflowSuggestions != nil {
		if nodes, ok := rec.WorkflowSuggestions["estimated_nodes"].(int); ok && nodes > o.MaxEstimatedNodes {
			// Copy before capping: the suggestions map may be shared with a
			// cached recommendation.
			suggestions := make(map[string]any, len(rec.WorkflowSuggestions))
			for k, v := range rec.WorkflowSuggestions {
				suggestions[k] = v
			}
			suggestions["estimated_nodes"] = o.MaxEstimatedNodes
			rec.WorkflowSuggestions = suggestions
		}
	}
	return rec
}
