// In file: internal/version/version_test.go
package version

import (
	"strings"
	"testing"
)

func TestGenerateVersionedCacheKey(t *testing.T) {
	key := GenerateVersionedCacheKey("recocache", "build a search engine")

	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		t.Fatalf("key = %q, want prefix:hash:versions", key)
	}
	if parts[0] != "recocache" {
		t.Errorf("prefix = %q", parts[0])
	}
	if len(parts[1]) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(parts[1]))
	}
	if parts[2] != "iv"+ComponentVersions.Indicators+"_sv"+ComponentVersions.Scoring+"_rv"+ComponentVersions.Recommender {
		t.Errorf("version segment = %q", parts[2])
	}

	if GenerateVersionedCacheKey("recocache", "build a search engine") != key {
		t.Error("key must be deterministic")
	}
	if GenerateVersionedCacheKey("recocache", "different text") == key {
		t.Error("distinct texts must not collide")
	}
}

func TestVersionBumpInvalidatesKey(t *testing.T) {
	key := GenerateVersionedCacheKey("recocache", "some requirement")

	old := ComponentVersions.Indicators
	ComponentVersions.Indicators = "v9.9"
	defer func() { ComponentVersions.Indicators = old }()

	if GenerateVersionedCacheKey("recocache", "some requirement") == key {
		t.Error("bumping a component version must change the key")
	}
}
