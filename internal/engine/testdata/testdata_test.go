package testdata

import (
	"testing"
)

func TestLoadCorpus(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	if len(entries) == 0 {
		t.Fatal("corpus is empty")
	}
	t.Logf("Total entries: %d", len(entries))

	for i, e := range entries {
		if e.Description == "" {
			t.Errorf("entry[%d] has empty description", i)
		}
		if e.Envelope.Status == "" {
			t.Errorf("entry[%d] has empty envelope status", i)
		}
		if len(e.ExpectedSeverities) != len(e.Envelope.Logs) {
			t.Errorf("entry[%d] %q: %d expected severities for %d logs",
				i, e.Description, len(e.ExpectedSeverities), len(e.Envelope.Logs))
		}
		if e.ExpectedRefused && e.ExpectedReason == "" {
			t.Errorf("entry[%d] %q: refused entry without expected reason", i, e.Description)
		}
	}
}

func TestCorpusCoverage(t *testing.T) {
	entries, err := LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus() error: %v", err)
	}

	var refused, answered int
	for _, e := range entries {
		if e.ExpectedRefused {
			refused++
		} else {
			answered++
		}
	}
	if refused < 2 {
		t.Errorf("corpus has %d refused envelopes, want at least 2", refused)
	}
	if answered < 2 {
		t.Errorf("corpus has %d answered envelopes, want at least 2", answered)
	}
}
