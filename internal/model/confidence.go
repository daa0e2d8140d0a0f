package model

// ConfidenceVector is the four-axis snapshot shown on the confidence radar.
// Every axis is kept within [0,100].
type ConfidenceVector struct {
	Legal      float64 `json:"legal"`
	Risk       float64 `json:"risk"`
	Ethics     float64 `json:"ethics"`
	Confidence float64 `json:"confidence"`
}

// TurnDefaults is the vector every turn starts from. Ethics starts fully
// approved and is only overridden by an explicit veto.
func TurnDefaults() ConfidenceVector {
	return ConfidenceVector{Legal: 0, Risk: 0, Ethics: 100, Confidence: 0}
}

// Clamped returns a copy with every axis forced into [0,100].
func (v ConfidenceVector) Clamped() ConfidenceVector {
	return ConfidenceVector{
		Legal:      ClampScore(v.Legal),
		Risk:       ClampScore(v.Risk),
		Ethics:     ClampScore(v.Ethics),
		Confidence: ClampScore(v.Confidence),
	}
}

// ClampScore forces s into [0,100]. NaN maps to 0.
func ClampScore(s float64) float64 {
	switch {
	case s != s:
		return 0
	case s < 0:
		return 0
	case s > 100:
		return 100
	default:
		return s
	}
}
