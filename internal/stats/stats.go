// In file: internal/stats/stats.go

// Package stats tracks per-pattern recommendation usage in Redis: how often
// each pattern wins, a smoothed confidence average, and when it was last
// recommended. The numbers feed the stats endpoint and make indicator-table
// tuning observable in production.
package stats

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/pattern-engine/internal/pattern"
)

// PatternStats holds the usage counters for one pattern.
type PatternStats struct {
	Pattern           pattern.Type `json:"pattern"`
	TotalRecommended  int64        `json:"total_recommended"`
	TotalFallbacks    int64        `json:"total_fallbacks"`
	AvgConfidence     float64      `json:"avg_confidence"`
	LastRecommendedAt time.Time    `json:"last_recommended_at"`
	HybridCandidates  int64        `json:"hybrid_candidates"`
}

// Profiler records and reads per-pattern usage counters.
type Profiler struct {
	rdb *redis.Client
}

// NewProfiler creates a profiler over an existing Redis client.
func NewProfiler(rdb *redis.Client) *Profiler {
	return &Profiler{rdb: rdb}
}

func (p *Profiler) statsKey(t pattern.Type) string {
	return fmt.Sprintf("patternstats:%s", t)
}

// Record updates the counters for one finished recommendation. The confidence
// average is an exponential moving average so recent behavior dominates.
// Errors are logged, never returned: stats must not fail a recommendation.
func (p *Profiler) Record(ctx context.Context, rec pattern.Recommendation) {
	key := p.statsKey(rec.PrimaryPattern)
	const alpha = 0.1

	err := p.rdb.Watch(ctx, func(tx *redis.Tx) error {
		currentStr, err := tx.HGet(ctx, key, "avg_confidence").Result()
		if err != nil && err != redis.Nil {
			return err
		}
		current, _ := strconv.ParseFloat(currentStr, 64)
		if current == 0 {
			current = rec.ConfidenceScore
		}
		smoothed := alpha*rec.ConfidenceScore + (1.0-alpha)*current
		_, err = tx.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "avg_confidence", smoothed)
			return nil
		})
		return err
	}, key)
	if err != nil {
		log.Printf("Error updating confidence average for %s: %v", rec.PrimaryPattern, err)
	}

	pipe := p.rdb.Pipeline()
	pipe.HIncrBy(ctx, key, "total_recommended", 1)
	if rec.ConfidenceScore == 0.5 && len(rec.SecondaryPatterns) == 0 {
		pipe.HIncrBy(ctx, key, "total_fallbacks", 1)
	}
	if hybrid, ok := rec.TemplateCustomizations["hybrid_candidate"].(bool); ok && hybrid {
		pipe.HIncrBy(ctx, key, "hybrid_candidates", 1)
	}
	pipe.HSet(ctx, key, "last_recommended_at", time.Now().Format(time.RFC3339Nano))
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error in stats update pipeline for %s: %v", rec.PrimaryPattern, err)
	}
}

// Get reads the counters for one pattern. A pattern never recommended yields
// zero-valued stats, not an error.
func (p *Profiler) Get(ctx context.Context, t pattern.Type) (PatternStats, error) {
	data, err := p.rdb.HGetAll(ctx, p.statsKey(t)).Result()
	if err != nil {
		return PatternStats{}, fmt.Errorf("failed to read stats for %s: %w", t, err)
	}

	stats := PatternStats{Pattern: t}
	stats.TotalRecommended, _ = strconv.ParseInt(data["total_recommended"], 10, 64)
	stats.TotalFallbacks, _ = strconv.ParseInt(data["total_fallbacks"], 10, 64)
	stats.HybridCandidates, _ = strconv.ParseInt(data["hybrid_candidates"], 10, 64)
	stats.AvgConfidence, _ = strconv.ParseFloat(data["avg_confidence"], 64)
	stats.LastRecommendedAt, _ = time.Parse(time.RFC3339Nano, data["last_recommended_at"])
	return stats, nil
}

// GetAll reads the counters for every known pattern.
func (p *Profiler) GetAll(ctx context.Context) ([]PatternStats, error) {
	all := make([]PatternStats, 0, len(pattern.AllTypes()))
	for _, t := range pattern.AllTypes() {
		stats, err := p.Get(ctx, t)
		if err != nil {
			return nil, err
		}
		all = append(all, stats)
	}
	return all, nil
}
