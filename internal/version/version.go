// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of the
// engine.
//
// Including these version strings in shared cache keys automatically
// invalidates stale cached recommendations whenever a piece of underlying
// logic changes. For example, adjusting a keyword weight in the indicator
// table and bumping Indicators from "v1.0" to "v1.1" means cache keys carrying
// the old version string no longer match, forcing fresh recommendations.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the engine's logical parts.
// Manually increment a version here before deploying a change to that
// component.
var ComponentVersions = struct {
	// Indicators should be updated whenever the pattern indicator table
	// changes: keywords, weights, or context multipliers.
	Indicators string

	// Scoring should be updated whenever the scoring, combination, or
	// complexity logic changes.
	Scoring string

	// Recommender should be updated whenever the recommendation assembly
	// changes: confidence calibration, customizations, or the graduated
	// structure tables.
	Recommender string
}{
	Indicators:  "v1.0",
	Scoring:     "v1.0",
	Recommender: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for the
// shared recommendation cache.
//
// It combines a prefix, a hash of the requirement text, and the current
// versions of all logical components, so a change to the text or to any
// component produces a new key.
//
// Example output: "recocache:a1b2c3d4...:iv1.0_sv1.0_rv1.0"
func GenerateVersionedCacheKey(prefix, text string) string {
	hasher := sha256.New()
	hasher.Write([]byte(text))
	textHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("iv%s_sv%s_rv%s",
		ComponentVersions.Indicators,
		ComponentVersions.Scoring,
		ComponentVersions.Recommender,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, textHash, versionString)
}
