package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/hints"
)

// envPrefix marks every environment variable read by deckgen.
const envPrefix = "DECKGEN_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DECKGEN_CONFIG: config file name or path
	Style      string        // DECKGEN_STYLE: theme name, CSS path or CSS
	Timeout    time.Duration // DECKGEN_TIMEOUT: per-deck generation timeout
	OutputDir  string        // DECKGEN_OUTPUT_DIR: default output directory
	Format     string        // DECKGEN_FORMAT: pptx or pdf
	Workers    int           // DECKGEN_WORKERS: concurrent generations
	Addr       string        // DECKGEN_ADDR: serve listen address
}

// knownEnvVars lists valid DECKGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DECKGEN_CONFIG":     true,
	"DECKGEN_STYLE":      true,
	"DECKGEN_TIMEOUT":    true,
	"DECKGEN_OUTPUT_DIR": true,
	"DECKGEN_FORMAT":     true,
	"DECKGEN_WORKERS":    true,
	"DECKGEN_ADDR":       true,
	"DECKGEN_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable or non-positive durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DECKGEN_CONFIG"),
		Style:      os.Getenv("DECKGEN_STYLE"),
		OutputDir:  os.Getenv("DECKGEN_OUTPUT_DIR"),
		Format:     os.Getenv("DECKGEN_FORMAT"),
		Addr:       os.Getenv("DECKGEN_ADDR"),
	}

	if timeout := os.Getenv("DECKGEN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("DECKGEN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized DECKGEN_* variable.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Format != "" {
		cfg.Output.Format = env.Format
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.Timeout > 0 {
		cfg.Capture.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Capture.Workers = env.Workers
	}
}

// loadConfig resolves the config file (flag, then DECKGEN_CONFIG), loads it
// and applies environment overrides.
func loadConfig(flagPath string, env *envConfig) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, configHint(err, path))
		}
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// configHint suggests where a missing config file could live.
func configHint(err error, path string) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	if strings.ContainsAny(path, "/\\") {
		return hints.ForConfigNotFound(nil)
	}
	return hints.ForConfigNotFound(config.SearchPaths(path))
}

// resolveTimeout picks the generation timeout.
// Priority: flag > config (already merged with DECKGEN_TIMEOUT) > none.
// Zero means no timeout beyond the command's own context.
func resolveTimeout(flagValue string, cfgValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return cfgValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrInvalidFlag, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidFlag, d)
	}
	return d, nil
}
