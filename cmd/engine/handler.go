// In file: cmd/engine/handler.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dileep-u-k/pattern-engine/internal/cache"
	"github.com/dileep-u-k/pattern-engine/internal/dispatch"
	"github.com/dileep-u-k/pattern-engine/internal/pattern"
	"github.com/dileep-u-k/pattern-engine/internal/stats"
)

// =================================================================================
// Engine Handler
// =================================================================================
// The handler exposes the recommendation pipeline over HTTP. Request flow:
//
//   1. Check the shared Redis cache (when configured) for a finished
//      recommendation under the versioned key.
//   2. On a miss, run the in-process engine, which has its own LRU in front
//      of the pipeline.
//   3. Record usage stats fire-and-forget and populate the shared cache.
//
// Low-confidence recommendations are returned as-is with their rationale:
// the caller decides whether to intervene, the engine never blocks.
// =================================================================================

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	Requirements string `json:"requirements" binding:"required"`
	ProjectName  string `json:"project_name"`
}

// RecommendResponse wraps a recommendation with transport metadata.
type RecommendResponse struct {
	Recommendation pattern.Recommendation `json:"recommendation"`
	TargetStage    dispatch.Stage         `json:"target_stage"`
	CacheStatus    string                 `json:"cache_status"`
	LatencyMS      int64                  `json:"latency_ms"`
}

type EngineHandler struct {
	engine   *pattern.Engine
	store    *cache.Store    // nil when Redis is not configured
	profiler *stats.Profiler // nil when Redis is not configured
}

func NewEngineHandler(engine *pattern.Engine, store *cache.Store, profiler *stats.Profiler) *EngineHandler {
	return &EngineHandler{
		engine:   engine,
		store:    store,
		profiler: profiler,
	}
}

func (h *EngineHandler) HandleRecommend(c *gin.Context) {
	startTime := time.Now()
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	log.Printf("--- New Request (Project: %s, Requirements: '%.40s...') ---", req.ProjectName, req.Requirements)

	if h.store != nil {
		if rec, found := h.store.Check(c.Request.Context(), req.Requirements); found {
			log.Println("✅ Shared cache HIT")
			rec.ProjectName = req.ProjectName
			c.JSON(http.StatusOK, RecommendResponse{
				Recommendation: rec,
				TargetStage:    dispatch.StageFor(rec),
				CacheStatus:    "HIT",
				LatencyMS:      time.Since(startTime).Milliseconds(),
			})
			return
		}
		log.Println("⚠️ Shared cache MISS")
	}

	rec := h.engine.AnalyzeAndRecommendProject(req.Requirements, req.ProjectName)
	log.Printf("🎯 Recommended %s (confidence %.2f, complexity %s)",
		rec.PrimaryPattern, rec.ConfidenceScore, rec.Complexity)

	// Stats and shared-cache writes must not add latency to the response.
	if h.store != nil {
		go func(text string, rec pattern.Recommendation) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			h.store.Set(ctx, text, rec)
			h.profiler.Record(ctx, rec)
		}(req.Requirements, rec)
	}

	c.JSON(http.StatusOK, RecommendResponse{
		Recommendation: rec,
		TargetStage:    dispatch.StageFor(rec),
		CacheStatus:    "MISS",
		LatencyMS:      time.Since(startTime).Milliseconds(),
	})
}

// HandleStats reports per-pattern usage counters and local cache occupancy.
func (h *EngineHandler) HandleStats(c *gin.Context) {
	response := gin.H{
		"local_cache_entries": h.engine.CacheLen(),
	}
	if h.profiler == nil {
		response["pattern_stats"] = []stats.PatternStats{}
		response["note"] = "Redis not configured, usage stats are disabled."
		c.JSON(http.StatusOK, response)
		return
	}

	all, err := h.profiler.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	response["pattern_stats"] = all
	c.JSON(http.StatusOK, response)
}

// HandlePatterns lists the patterns the engine can recommend, with their
// indicator tables, for client-side display and debugging.
func (h *EngineHandler) HandlePatterns(c *gin.Context) {
	type patternInfo struct {
		Pattern            pattern.Type          `json:"pattern"`
		Weight             float64               `json:"weight"`
		Keywords           []string              `json:"keywords"`
		ContextMultipliers []pattern.ContextRule `json:"context_multipliers"`
	}

	indicators := pattern.DefaultIndicators()
	patterns := make([]patternInfo, 0, len(indicators))
	for _, ind := range indicators {
		patterns = append(patterns, patternInfo{
			Pattern:            ind.Pattern,
			Weight:             ind.Weight,
			Keywords:           ind.Keywords,
			ContextMultipliers: ind.ContextMultipliers,
		})
	}
	c.JSON(http.StatusOK, gin.H{"patterns": patterns})
}
