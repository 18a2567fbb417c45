package rag

import (
	"encoding/json"
	"strings"
)

// TitleExtraction is the typed result of parsing candidate titles out of a
// generation response. Never produced by panicking or erroring: malformed
// output yields Present=false with a reason.
type TitleExtraction struct {
	Present bool
	Titles  []string
	Reason  string // why extraction failed, for logging
}

type titlesEnvelope struct {
	Titles []string `json:"titles"`
}

// ExtractTitles pulls a {"titles": [...]} object (or a bare JSON string array)
// out of free-form model output. The backend frequently wraps the structure in
// prose or markdown fences, so we scan for the embedded JSON instead of
// unmarshalling the whole response.
func ExtractTitles(raw string) TitleExtraction {
	cleaned := stripFences(strings.TrimSpace(raw))
	if cleaned == "" {
		return TitleExtraction{Reason: "empty response"}
	}

	// 1. Embedded object with a "titles" key
	if obj := scanBalanced(cleaned, '{', '}'); obj != "" {
		var env titlesEnvelope
		if err := json.Unmarshal([]byte(obj), &env); err == nil && len(env.Titles) > 0 {
			return TitleExtraction{Present: true, Titles: trimAll(env.Titles)}
		}
	} else if arr := scanBalanced(cleaned, '[', ']'); arr != "" {
		// 2. Bare JSON array of strings, only when no object is present so an
		// object under the wrong key is not mistaken for a title list
		var titles []string
		if err := json.Unmarshal([]byte(arr), &titles); err == nil && len(titles) > 0 {
			return TitleExtraction{Present: true, Titles: trimAll(titles)}
		}
	}

	return TitleExtraction{Reason: "no titles structure found"}
}

// stripFences removes a surrounding markdown code fence if present
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag on the opening fence
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// scanBalanced returns the first balanced open..close region of s, honoring
// JSON string literals so braces inside titles don't break matching.
func scanBalanced(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
