package compactor

import "unicode/utf8"

// Verbosity controls how much detail is retained after compaction.
type Verbosity int

const (
	Minimal  Verbosity = iota // short messages, no payloads
	Standard                  // moderate messages, payloads kept
	Full                      // retain everything
)

// PreviewRunes is how much of the user's input the processing notice echoes.
const PreviewRunes = 20

// ParseVerbosity maps "minimal", "standard" and "full"; anything else is Standard.
func ParseVerbosity(s string) Verbosity {
	switch s {
	case "minimal":
		return Minimal
	case "full":
		return Full
	default:
		return Standard
	}
}

// Compactor shortens log messages according to verbosity.
type Compactor struct {
	Verbosity Verbosity
}

// New creates a Compactor with the given verbosity level.
func New(v Verbosity) *Compactor {
	return &Compactor{Verbosity: v}
}

// Compact applies verbosity-based truncation to a log message.
func (c *Compactor) Compact(msg string) string {
	switch c.Verbosity {
	case Minimal:
		return truncate(msg, 200)
	case Standard:
		return truncate(msg, 2000)
	default:
		return msg
	}
}

// Preview returns the leading PreviewRunes runes of s followed by "...".
// The marker is always present, so short input reads the same as long input.
func Preview(s string) string {
	return head(s, PreviewRunes) + "..."
}

// head returns at most maxRunes leading runes of s.
func head(s string, maxRunes int) string {
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}

// truncate cuts s to at most maxRunes runes, appending "..." when it cuts.
func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
