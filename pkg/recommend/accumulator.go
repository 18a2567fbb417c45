package recommend

import "ai-bookrec-be/pkg/store"

// DefaultReadyThreshold is the production readiness threshold. An earlier
// variant ran with 2; the value is configurable through the engine config.
const DefaultReadyThreshold = 3

// Accumulate appends each term to the session's keyword list in input order,
// skipping terms already present (exact string equality). Later synonyms or
// variants are not merged. Empty input is a no-op.
func Accumulate(session *store.Session, terms []string) {
	for _, term := range terms {
		if term == "" {
			continue
		}
		if containsExact(session.Keywords, term) {
			continue
		}
		session.Keywords = append(session.Keywords, term)
	}
}

// IsReady reports whether enough distinct interest terms have accumulated to
// attempt a recommendation.
func IsReady(session *store.Session, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultReadyThreshold
	}
	return len(session.Keywords) >= threshold
}

func containsExact(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
