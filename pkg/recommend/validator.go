package recommend

import "strings"

// ValidateCandidates filters backend-proposed titles against the canonical
// catalog titles. A candidate validates when it is a substring of at least one
// canonical title; the permissive match tolerates paraphrasing and truncation
// by the generation backend. Validated candidates keep their input order and
// their original string (display uses the candidate, lookup resolves against
// the catalog). Duplicates are kept once.
func ValidateCandidates(candidates []string, canonicalTitles []string) []string {
	var validated []string
	seen := make(map[string]bool)

	for _, candidate := range candidates {
		trimmed := strings.TrimSpace(candidate)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		for _, title := range canonicalTitles {
			if strings.Contains(title, trimmed) {
				validated = append(validated, trimmed)
				seen[trimmed] = true
				break
			}
		}
	}

	return validated
}
