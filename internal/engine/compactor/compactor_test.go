package compactor

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// --- truncate tests ---

func TestTruncateRuneSafety(t *testing.T) {
	// CJK characters are 3 bytes each in UTF-8.
	input := strings.Repeat("日本語", 100) // 300 runes, 900 bytes
	result := truncate(input, 10)

	if !utf8.ValidString(result) {
		t.Fatal("truncated string is not valid UTF-8")
	}
	// 10 runes + "..."
	if utf8.RuneCountInString(result) != 13 {
		t.Fatalf("expected 13 runes (10 + ...), got %d", utf8.RuneCountInString(result))
	}
	if !strings.HasSuffix(result, "...") {
		t.Fatal("expected ... suffix")
	}
}

func TestTruncateDevanagari(t *testing.T) {
	input := strings.Repeat("न्याय", 40)
	result := truncate(input, 7)

	if !utf8.ValidString(result) {
		t.Fatal("truncated string is not valid UTF-8")
	}
	if utf8.RuneCountInString(result) != 10 { // 7 + "..."
		t.Fatalf("expected 10 runes, got %d", utf8.RuneCountInString(result))
	}
}

func TestTruncateASCII(t *testing.T) {
	input := "hello world this is a test"
	result := truncate(input, 11)
	if result != "hello world..." {
		t.Fatalf("expected 'hello world...', got %q", result)
	}
}

func TestTruncateShortInput(t *testing.T) {
	input := "short"
	result := truncate(input, 100)
	if result != input {
		t.Fatalf("expected unchanged input, got %q", result)
	}
}

func TestTruncateExactLength(t *testing.T) {
	input := "exact"
	result := truncate(input, 5)
	if result != input {
		t.Fatalf("expected unchanged input at exact length, got %q", result)
	}
}

// --- Compact tests ---

func TestCompactByVerbosity(t *testing.T) {
	long := strings.Repeat("a", 3000)

	tests := []struct {
		verbosity Verbosity
		wantRunes int
	}{
		{Minimal, 203},
		{Standard, 2003},
		{Full, 3000},
	}
	for _, tt := range tests {
		got := New(tt.verbosity).Compact(long)
		if n := utf8.RuneCountInString(got); n != tt.wantRunes {
			t.Errorf("verbosity %d: got %d runes, want %d", tt.verbosity, n, tt.wantRunes)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("My landlord is threatening me"); got != "My landlord is threa..." {
		t.Fatalf("Preview() = %q", got)
	}
	if got := Preview("hi"); got != "hi..." {
		t.Fatalf("Preview() = %q, want marker on short input", got)
	}
	if got := Preview("ñññññññññññññññññññññ"); got != "ññññññññññññññññññññ..." {
		t.Fatalf("Preview() = %q, want 20 runes", got)
	}
}

func TestParseVerbosity(t *testing.T) {
	tests := map[string]Verbosity{
		"minimal":  Minimal,
		"standard": Standard,
		"full":     Full,
		"":         Standard,
		"verbose":  Standard,
	}
	for in, want := range tests {
		if got := ParseVerbosity(in); got != want {
			t.Errorf("ParseVerbosity(%q) = %d, want %d", in, got, want)
		}
	}
}
