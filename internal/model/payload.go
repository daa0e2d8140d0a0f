package model

// PayloadKind discriminates the parsed view of an agent message.
type PayloadKind string

const (
	KindRawText    PayloadKind = "raw_text"
	KindLegal      PayloadKind = "legal"
	KindRisk       PayloadKind = "risk"
	KindEthics     PayloadKind = "ethics"
	KindConfidence PayloadKind = "confidence"
)

// Payload is the structured view extracted from one agent message.
// The set of implementations is closed: RawText, LegalView, RiskView,
// EthicsView and ConfidenceView.
type Payload interface {
	Kind() PayloadKind
	sealed()
}

// RawText wraps a message that carried no usable structure.
type RawText struct {
	Text string `json:"text"`
}

// LegalView holds the recognized fields of a Legal agent payload.
type LegalView struct {
	Sections  []string `json:"sections,omitempty"`
	Reasoning *string  `json:"reasoning,omitempty"`
	Advice    *string  `json:"advice,omitempty"`
}

// RiskView holds the recognized fields of a Risk agent payload.
// Concerns is always a list, even when the backend sent a single string.
type RiskView struct {
	Severity *string  `json:"severity,omitempty"`
	Concerns []string `json:"concerns,omitempty"`
}

// EthicsView holds the recognized fields of an Ethics agent payload.
type EthicsView struct {
	Veto   *bool   `json:"veto,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// Vetoed reports whether the payload carries veto == true.
func (e EthicsView) Vetoed() bool {
	return e.Veto != nil && *e.Veto
}

// ConfidenceView holds the recognized fields of a Confidence agent payload.
// Score is already clamped to [0,100].
type ConfidenceView struct {
	Score            *float64 `json:"score,omitempty"`
	Reasoning        *string  `json:"reasoning,omitempty"`
	RefusalTriggered *bool    `json:"refusal_triggered,omitempty"`
}

func (RawText) Kind() PayloadKind        { return KindRawText }
func (LegalView) Kind() PayloadKind      { return KindLegal }
func (RiskView) Kind() PayloadKind       { return KindRisk }
func (EthicsView) Kind() PayloadKind     { return KindEthics }
func (ConfidenceView) Kind() PayloadKind { return KindConfidence }

func (RawText) sealed()        {}
func (LegalView) sealed()      {}
func (RiskView) sealed()       {}
func (EthicsView) sealed()     {}
func (ConfidenceView) sealed() {}
