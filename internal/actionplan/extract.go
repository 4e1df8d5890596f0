package actionplan

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	envelopePrefix = regexp.MustCompile(`(?s)^.*?RunResponse.*?\{`)
	trailingMeta   = regexp.MustCompile(`(?s)content_type=.*$`)
	bracePattern   = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON pulls a key/value mapping out of whatever shape the agent
// handed back. Cases are attempted in order, first success wins:
// an existing mapping passes through, an SDK envelope has its prefix and
// trailing metadata stripped before a strict parse, and a plain string gets
// a strict parse followed by a scan for brace-delimited candidates.
//
// The candidate scan is greedy and best effort: text containing several
// JSON objects, or braces inside prose, can defeat it. Callers get nil and
// surface a generation failure rather than a crash.
func ExtractJSON(response any) map[string]any {
	switch v := response.(type) {
	case map[string]any:
		return v
	case string:
		return extractFromString(v)
	default:
		return nil
	}
}

func extractFromString(s string) map[string]any {
	// Envelope text: strip the wrapper up to the first brace and any
	// trailing metadata before the strict attempts below.
	if strings.Contains(s, "RunResponse") {
		s = envelopePrefix.ReplaceAllString(s, "{")
		s = trailingMeta.ReplaceAllString(s, "")
	}

	if m := parseStrict(s); m != nil {
		return m
	}

	// Greedy first-to-last brace span.
	if candidate := bracePattern.FindString(s); candidate != "" {
		if m := parseStrict(candidate); m != nil {
			return m
		}
	}

	// Depth-aware fallback: balanced object starting at each opening brace.
	for start := strings.Index(s, "{"); start != -1; {
		if end := matchBrace(s, start); end != -1 {
			if m := parseStrict(s[start : end+1]); m != nil {
				return m
			}
		}
		next := strings.Index(s[start+1:], "{")
		if next == -1 {
			break
		}
		start += 1 + next
	}

	return nil
}

func parseStrict(s string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &m); err != nil {
		return nil
	}
	return m
}

// matchBrace returns the index of the brace closing the object opened at
// start, or -1. String contents are skipped so braces inside values do not
// affect depth.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
