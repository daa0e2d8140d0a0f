package testdata

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/crimson-sun/neurallink/internal/model"
)

//go:embed corpus.json
var corpusJSON []byte

// CorpusEntry is a backend envelope labeled with its expected interpretation.
type CorpusEntry struct {
	Description        string                 `json:"description"`
	Envelope           model.Envelope         `json:"envelope"`
	ExpectedSnapshot   model.ConfidenceVector `json:"expected_snapshot"`
	ExpectedSeverities []model.Severity       `json:"expected_severities"`
	ExpectedRefused    bool                   `json:"expected_refused"`
	ExpectedReason     string                 `json:"expected_reason,omitempty"`
}

// LoadCorpus parses the embedded corpus.json and returns all entries.
func LoadCorpus() ([]CorpusEntry, error) {
	var entries []CorpusEntry
	if err := json.Unmarshal(corpusJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus.json: %w", err)
	}
	return entries, nil
}
