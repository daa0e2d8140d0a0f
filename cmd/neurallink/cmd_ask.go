package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/backend"
	"github.com/crimson-sun/neurallink/internal/model"
	"github.com/crimson-sun/neurallink/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask <text>...",
	Short: "Run turns headlessly and print the chat and confidence snapshot",
	Long: `Starts a session, submits each argument as one chat turn in order, then
prints the chat history, the final confidence snapshot and any refusal.
Log entries go to the configured output (NEURALLINK_OUTPUT).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := a.session
	s.Start()
	var refusals []model.Refusal
	for _, text := range args {
		turnCtx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
		err := s.SubmitTurn(turnCtx, text)
		cancel()
		if err != nil {
			return fmt.Errorf("turn %q: %w", text, err)
		}
		if r, ok := s.TakeRefusal(); ok {
			refusals = append(refusals, r)
		}
	}

	w := cmd.ErrOrStderr()
	if !outputsToStdout(cfg) {
		w = cmd.OutOrStdout()
	}
	printTranscript(w, s, refusals)

	s.End()
	if r, ok := a.backend.(backend.Resetter); ok {
		if err := r.Reset(ctx); err != nil {
			logger.Warn("backend reset failed", zap.Error(err))
		}
	}
	return nil
}

// printTranscript writes the human-readable summary. When NDJSON goes to
// stdout the summary is sent to stderr instead.
func printTranscript(w io.Writer, s *session.Session, refusals []model.Refusal) {
	for _, t := range s.History() {
		fmt.Fprintf(w, "%-9s %s\n", t.Role+":", t.Text)
	}
	v := s.Snapshot()
	fmt.Fprintf(w, "\nconfidence: legal=%.0f risk=%.0f ethics=%.0f confidence=%.0f\n",
		v.Legal, v.Risk, v.Ethics, v.Confidence)
	for _, r := range refusals {
		fmt.Fprintf(w, "refused (%s): %s\n", r.Source, r.Reason)
	}
	if len(refusals) == 0 {
		fmt.Fprintln(w, "refused: no")
	}
}
