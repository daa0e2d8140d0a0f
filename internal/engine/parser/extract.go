package parser

import "strings"

// maxDepth bounds brace nesting; deeper candidates are abandoned.
const maxDepth = 32

// Extract returns the first balanced brace-delimited substring of s.
// Braces inside JSON string literals do not count toward nesting. A start
// brace that never balances (or nests deeper than maxDepth) is skipped and
// scanning resumes at the next opening brace.
func Extract(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		if end, ok := matchBrace(s, start); ok {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at start.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
			if depth > maxDepth {
				return 0, false
			}
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
