package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all Neural Link configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// BackendConfig selects and configures the analysis backend.
type BackendConfig struct {
	Provider   string        `yaml:"provider"` // "http" or "replay"
	Endpoint   string        `yaml:"endpoint"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"` // health/reset only
	ScriptPath string        `yaml:"script"`
}

// OutputConfig holds the entry tap settings.
type OutputConfig struct {
	Format     string `yaml:"format"` // "none", "stdout", "file", "webhook", or a comma-separated mix
	Path       string `yaml:"path"`
	Pretty     bool   `yaml:"pretty"`    // console lines instead of NDJSON on stdout
	Verbosity  string `yaml:"verbosity"` // "minimal", "standard", "full"
	MaxSize    int64  `yaml:"max_size"`
	WebhookURL string `yaml:"webhook_url"`

	// WebhookAgents limits the webhook to a comma-separated list of agents.
	WebhookAgents string `yaml:"webhook_agents"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var (
	validProviders = []string{"http", "replay"}
	validFormats   = []string{"none", "stdout", "file", "webhook"}
	validVerbosity = []string{"minimal", "standard", "full"}
	validLevels    = []string{"debug", "info", "warn", "error"}
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			Provider: "http",
			Endpoint: "http://127.0.0.1:8000",
			Timeout:  60 * time.Second,
		},
		Output: OutputConfig{
			Format:    "none",
			Path:      "neurallink.ndjson",
			Verbosity: "standard",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Default()
	cfg.applyEnvOverrides()
	return cfg
}

// LoadFile layers a YAML file over the defaults, then applies environment
// overrides and validates the result. A missing file yields the env-only config.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Backend.Provider = getenv("NEURALLINK_BACKEND", c.Backend.Provider)
	c.Backend.Endpoint = getenv("NEURALLINK_ENDPOINT", c.Backend.Endpoint)
	c.Backend.APIKey = getenv("NEURALLINK_API_KEY", c.Backend.APIKey)
	c.Backend.Timeout = getenvDuration("NEURALLINK_TIMEOUT", c.Backend.Timeout)
	c.Backend.MaxRetries = getenvInt("NEURALLINK_MAX_RETRIES", c.Backend.MaxRetries)
	c.Backend.ScriptPath = getenv("NEURALLINK_SCRIPT", c.Backend.ScriptPath)

	c.Output.Format = getenv("NEURALLINK_OUTPUT", c.Output.Format)
	c.Output.Path = getenv("NEURALLINK_OUTPUT_PATH", c.Output.Path)
	c.Output.Pretty = getenvBool("NEURALLINK_OUTPUT_PRETTY", c.Output.Pretty)
	c.Output.Verbosity = getenv("NEURALLINK_VERBOSITY", c.Output.Verbosity)
	c.Output.MaxSize = int64(getenvInt("NEURALLINK_OUTPUT_MAX_SIZE", int(c.Output.MaxSize)))
	c.Output.WebhookURL = getenv("NEURALLINK_WEBHOOK_URL", c.Output.WebhookURL)
	c.Output.WebhookAgents = getenv("NEURALLINK_WEBHOOK_AGENTS", c.Output.WebhookAgents)

	c.Log.Level = getenv("NEURALLINK_LOG_LEVEL", c.Log.Level)
	c.Log.File = getenv("NEURALLINK_LOG_FILE", c.Log.File)
}

// Validate checks the configuration for values the rest of the program
// cannot act on.
func (c Config) Validate() error {
	var errs []error
	if !oneOf(c.Backend.Provider, validProviders) {
		errs = append(errs, fmt.Errorf("invalid backend %q (valid: %v)", c.Backend.Provider, validProviders))
	}
	if c.Backend.Provider == "http" && c.Backend.Endpoint == "" {
		errs = append(errs, errors.New("backend endpoint is required for the http backend"))
	}
	if c.Backend.Provider == "replay" && c.Backend.ScriptPath == "" {
		errs = append(errs, errors.New("NEURALLINK_SCRIPT is required for the replay backend"))
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("backend timeout must be positive, got %v", c.Backend.Timeout))
	}
	if c.Backend.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max retries must not be negative, got %d", c.Backend.MaxRetries))
	}
	for _, f := range c.Output.Formats() {
		if !oneOf(f, validFormats) {
			errs = append(errs, fmt.Errorf("invalid output %q (valid: %v)", f, validFormats))
		}
		if strings.EqualFold(f, "file") && c.Output.Path == "" {
			errs = append(errs, errors.New("output path is required for file output"))
		}
		if strings.EqualFold(f, "webhook") && c.Output.WebhookURL == "" {
			errs = append(errs, errors.New("NEURALLINK_WEBHOOK_URL is required for webhook output"))
		}
	}
	if !oneOf(c.Output.Verbosity, validVerbosity) {
		errs = append(errs, fmt.Errorf("invalid verbosity %q (valid: %v)", c.Output.Verbosity, validVerbosity))
	}
	if c.Output.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("output max size must not be negative, got %d", c.Output.MaxSize))
	}
	if !oneOf(c.Log.Level, validLevels) {
		errs = append(errs, fmt.Errorf("invalid log level %q (valid: %v)", c.Log.Level, validLevels))
	}
	return errors.Join(errs...)
}

// Formats splits Format into its lower-cased, trimmed parts, dropping "none".
// Unknown names are kept so Validate can report them.
func (o OutputConfig) Formats() []string {
	var out []string
	for _, f := range strings.Split(o.Format, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || f == "none" {
			continue
		}
		out = append(out, f)
	}
	return out
}

func oneOf(v string, valid []string) bool {
	for _, s := range valid {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
