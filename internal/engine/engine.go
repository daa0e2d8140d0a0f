package engine

import (
	"github.com/crimson-sun/neurallink/internal/engine/aggregator"
	"github.com/crimson-sun/neurallink/internal/engine/classifier"
	"github.com/crimson-sun/neurallink/internal/engine/detector"
	"github.com/crimson-sun/neurallink/internal/engine/parser"
	"github.com/crimson-sun/neurallink/internal/model"
)

// Engine parses each line, classifies it, folds the snapshot and then checks for a refusal.
// It holds no session state; applying a Result is the session's job.
type Engine struct {
	classifier *classifier.Classifier
}

// New creates an Engine with the provided classifier.
func New(cls *classifier.Classifier) *Engine {
	return &Engine{classifier: cls}
}

// Line is one interpreted backend log line, ready to append.
type Line struct {
	Agent    model.Agent
	Message  string
	Severity model.Severity
	Payload  model.Payload
}

// Result is everything one envelope contributes to the session.
type Result struct {
	Lines    []Line
	Snapshot model.ConfidenceVector
	Refusal  *model.Refusal
	Reply    string // assistant text for a normal answer; empty when refused
}

// Process interprets a single raw log line.
func (e *Engine) Process(raw model.RawLine) Line {
	agent := model.ParseAgent(raw.Agent)
	payload := parser.Parse(agent, raw.Msg)
	return Line{
		Agent:    agent,
		Message:  raw.Msg,
		Severity: e.classifier.Classify(agent, raw.Msg, payload),
		Payload:  payload,
	}
}

// Interpret processes the whole envelope. The snapshot is folded from the
// turn defaults over every line in arrival order and returned only once
// complete.
func (e *Engine) Interpret(env model.Envelope) Result {
	res := Result{Lines: make([]Line, 0, len(env.Logs))}

	agg := aggregator.New()
	observed := make([]detector.Line, 0, len(env.Logs))
	for _, raw := range env.Logs {
		l := e.Process(raw)
		res.Lines = append(res.Lines, l)
		agg.Observe(l.Agent, l.Payload)
		observed = append(observed, detector.Line{Agent: l.Agent, Payload: l.Payload})
	}
	res.Snapshot = agg.Snapshot()

	if r, ok := detector.Detect(env, observed); ok {
		res.Refusal = &r
		return res
	}
	res.Reply = env.ResponseText()
	return res
}
