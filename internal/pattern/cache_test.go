// In file: internal/pattern/cache_test.go
package pattern

import "testing"

func TestCacheKeyNormalization(t *testing.T) {
	base := CacheKey("build a search engine")
	for _, variant := range []string{
		"  build a search engine  ",
		"Build a Search Engine",
		"\tBUILD A SEARCH ENGINE\n",
	} {
		if CacheKey(variant) != base {
			t.Errorf("CacheKey(%q) differs from normalized base", variant)
		}
	}
	if CacheKey("build a search engine!") == base {
		t.Error("distinct texts must not collide")
	}
	if len(base) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(base))
	}
}

func TestAnalysisCacheUpdateRefreshesEntry(t *testing.T) {
	cache := newAnalysisCache(2)
	cache.put("a", Recommendation{ProjectName: "a1"})
	cache.put("b", Recommendation{ProjectName: "b1"})

	// Re-putting an existing key overwrites in place and refreshes recency.
	cache.put("a", Recommendation{ProjectName: "a2"})
	cache.put("c", Recommendation{ProjectName: "c1"})

	if cache.contains("b") {
		t.Error("b was least recently used and must be evicted")
	}
	got, hit := cache.get("a")
	if !hit || got.ProjectName != "a2" {
		t.Errorf("get(a) = %+v, %v; want updated entry", got, hit)
	}
	if cache.len() != 2 {
		t.Errorf("len = %d, want 2", cache.len())
	}
}

func TestAnalysisCacheGetRefreshesRecency(t *testing.T) {
	cache := newAnalysisCache(2)
	cache.put("a", Recommendation{})
	cache.put("b", Recommendation{})
	cache.get("a")
	cache.put("c", Recommendation{})

	if cache.contains("b") || !cache.contains("a") {
		t.Error("get must refresh recency so b, not a, is evicted")
	}
}

func TestAnalysisCacheDefaultCapacity(t *testing.T) {
	cache := newAnalysisCache(0)
	if cache.capacity != DefaultCacheCapacity {
		t.Errorf("capacity = %d, want default %d", cache.capacity, DefaultCacheCapacity)
	}
}

func TestAnalysisCacheMiss(t *testing.T) {
	cache := newAnalysisCache(4)
	if _, hit := cache.get("absent"); hit {
		t.Error("miss must report hit=false")
	}
	if cache.contains("absent") {
		t.Error("contains must be false for absent key")
	}
}
