package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/neurallink/internal/config"
	"github.com/crimson-sun/neurallink/internal/logging"

	// Register backend implementations.
	_ "github.com/crimson-sun/neurallink/internal/backend/http"
	_ "github.com/crimson-sun/neurallink/internal/backend/replay"
)

var (
	// Global flags
	configPath string
	endpoint   string
	backendArg string
	scriptPath string
	verbose    bool

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "neurallink",
	Short: "Chat with the agent council and watch its Neural Link telemetry",
	Long: `neurallink sends chat turns to a multi-agent analysis backend and shows,
next to the conversation, the log each agent emits (Legal, Risk, Ethics,
Confidence) together with a confidence radar and refusal alerts.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		// The TUI owns the terminal: log only when a file sink is configured.
		interactive := cmd == cmd.Root()
		if interactive && cfg.Log.File == "" {
			return nil
		}
		level := logging.ParseLevel(cfg.Log.Level)
		if verbose {
			level = logging.ParseLevel("debug")
		}
		logger, err = logging.Init(outputsToStdout(cfg), level, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (env vars override it)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Backend base URL (or set NEURALLINK_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&backendArg, "backend", "", "Backend provider: http or replay (or set NEURALLINK_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&scriptPath, "script", "", "Replay script for the replay backend (or set NEURALLINK_SCRIPT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(healthCmd)
}

// loadConfig layers defaults, the optional config file, env vars and flags.
func loadConfig() (config.Config, error) {
	var c config.Config
	if configPath != "" {
		var err error
		if c, err = config.LoadFile(configPath); err != nil {
			return config.Config{}, err
		}
	} else {
		c = config.Load()
	}
	if endpoint != "" {
		c.Backend.Endpoint = endpoint
	}
	if scriptPath != "" {
		c.Backend.ScriptPath = scriptPath
		if backendArg == "" {
			c.Backend.Provider = "replay"
		}
	}
	if backendArg != "" {
		c.Backend.Provider = backendArg
	}
	if err := c.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
