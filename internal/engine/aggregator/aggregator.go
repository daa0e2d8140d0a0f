// Package aggregator folds one turn's parsed agent payloads into a
// ConfidenceVector.
package aggregator

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/crimson-sun/neurallink/internal/model"
)

// Axis values assigned by the Legal and Risk rules.
const (
	LegalWithSections    = 90
	LegalWithoutSections = 40

	RiskHigh   = 30
	RiskMedium = 60
	RiskLow    = 90
)

// Aggregator holds the vector for the turn being folded.
// Not safe for concurrent use; the engine creates one per envelope.
type Aggregator struct {
	current model.ConfidenceVector
	fold    cases.Caser
}

// New creates an Aggregator positioned at the turn defaults.
func New() *Aggregator {
	a := &Aggregator{fold: cases.Fold()}
	a.Reset()
	return a
}

// Reset returns the vector to the turn defaults.
func (a *Aggregator) Reset() {
	a.current = model.TurnDefaults()
}

// Observe applies one entry. Later entries override earlier ones on the
// same axis. Ethics vetoes do not touch the vector; they are the detector's.
func (a *Aggregator) Observe(agent model.Agent, payload model.Payload) {
	switch agent {
	case model.AgentLegal:
		lv, ok := payload.(model.LegalView)
		if !ok {
			return
		}
		if len(lv.Sections) > 0 {
			a.current.Legal = LegalWithSections
		} else {
			a.current.Legal = LegalWithoutSections
		}
	case model.AgentRisk:
		var severity string
		if rv, ok := payload.(model.RiskView); ok && rv.Severity != nil {
			severity = *rv.Severity
		}
		a.current.Risk = a.riskScore(severity)
	case model.AgentConfidence:
		cv, ok := payload.(model.ConfidenceView)
		if !ok || cv.Score == nil {
			return
		}
		a.current.Confidence = model.ClampScore(*cv.Score)
	}
}

// Snapshot returns the folded vector with every axis in [0,100].
func (a *Aggregator) Snapshot() model.ConfidenceVector {
	return a.current.Clamped()
}

// Aggregate folds a whole batch from the turn defaults.
func Aggregate(lines []Observation) model.ConfidenceVector {
	a := New()
	for _, l := range lines {
		a.Observe(l.Agent, l.Payload)
	}
	return a.Snapshot()
}

// Observation pairs an agent with its parsed payload.
type Observation struct {
	Agent   model.Agent
	Payload model.Payload
}

// riskScore buckets a free-form severity. "high" wins over "medium" when
// both appear.
func (a *Aggregator) riskScore(severity string) float64 {
	folded := a.fold.String(severity)
	switch {
	case strings.Contains(folded, "high"):
		return RiskHigh
	case strings.Contains(folded, "medium"):
		return RiskMedium
	default:
		return RiskLow
	}
}
