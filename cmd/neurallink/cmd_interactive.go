package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/cmd/neurallink/ui"
	"github.com/crimson-sun/neurallink/internal/backend"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp(cfg, logger, true)
	if err != nil {
		return err
	}
	defer a.Close()

	m := ui.New(a.session, a.backend, cfg.Backend.Timeout, logger.Named("ui"))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("interactive session: %w", err)
	}

	// Leave the backend clean if the user quit mid-session.
	if a.session.IsActive() {
		a.session.End()
		if r, ok := a.backend.(backend.Resetter); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.Reset(ctx); err != nil {
				logger.Warn("backend reset failed", zap.Error(err))
			}
		}
	}
	return nil
}
