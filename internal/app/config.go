package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds everything an App instance needs to run.
type Config struct {
	DefinitionsDir string // yaml definition documents
	GeneratorsDir  string // hcl generator manifests
	OutputDir      string
	// ConstantsDir, when set, replaces the output directory with a copy of
	// this tree before generation.
	ConstantsDir string

	LogFormat string
	LogLevel  string
	FailFast  bool
	DryRun    bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DefinitionsDir == "" {
		return nil, errors.New("DefinitionsDir is a required configuration field and cannot be empty")
	}
	if cfg.GeneratorsDir == "" {
		return nil, errors.New("GeneratorsDir is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" && !cfg.DryRun {
		return nil, errors.New("OutputDir is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
