package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/neurallink/internal/backend"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the configured backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := backend.New(cfg.Backend.Provider, backend.Config{
			Endpoint:   cfg.Backend.Endpoint,
			APIKey:     cfg.Backend.APIKey,
			Timeout:    cfg.Backend.Timeout,
			MaxRetries: cfg.Backend.MaxRetries,
			ScriptPath: cfg.Backend.ScriptPath,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		h, ok := b.(backend.HealthChecker)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: no health check, assuming ok\n", cfg.Backend.Provider)
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Backend.Timeout)
		defer cancel()
		if err := h.Health(ctx); err != nil {
			return fmt.Errorf("%w: %w", errUnhealthy, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s backend ok (%s)\n", cfg.Backend.Provider, target(cfg.Backend.Provider))
		return nil
	},
}

func target(provider string) string {
	if provider == "replay" {
		return cfg.Backend.ScriptPath
	}
	return cfg.Backend.Endpoint
}
