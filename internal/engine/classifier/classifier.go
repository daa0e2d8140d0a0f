package classifier

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/crimson-sun/neurallink/internal/model"
)

// vetoMarker is the plain-text veto notice the coordinator emits for Ethics.
const vetoMarker = "veto"

// Classifier assigns a display severity to an interpreted agent line.
type Classifier struct {
	fold cases.Caser
}

// New creates a Classifier.
func New() *Classifier {
	return &Classifier{fold: cases.Fold()}
}

// Classify returns the severity for one line. Ethics vetoes are errors, high
// risk and confidence-driven refusals are warnings, everything else is info.
func (c *Classifier) Classify(agent model.Agent, raw string, payload model.Payload) model.Severity {
	switch agent {
	case model.AgentEthics:
		if ev, ok := payload.(model.EthicsView); ok && ev.Vetoed() {
			return model.SeverityError
		}
		if _, ok := payload.(model.RawText); ok && strings.Contains(c.fold.String(raw), vetoMarker) {
			return model.SeverityError
		}
	case model.AgentRisk:
		if rv, ok := payload.(model.RiskView); ok && rv.Severity != nil &&
			strings.Contains(c.fold.String(*rv.Severity), "high") {
			return model.SeverityWarning
		}
	case model.AgentConfidence:
		if cv, ok := payload.(model.ConfidenceView); ok && cv.RefusalTriggered != nil && *cv.RefusalTriggered {
			return model.SeverityWarning
		}
	}
	return model.SeverityInfo
}
