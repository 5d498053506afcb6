// Package config provides configuration loading and validation for the CLI.
// All thresholds, delays and sheet names live here and are injected into each
// component explicitly; there are no ambient globals.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config is the pipeline configuration, loadable from a JSON file. Missing
// values use defaults or must be provided via CLI flags.
type Config struct {
	// Workbook and sheet names
	Workbook       string `json:"workbook,omitempty"`
	MasterSheet    string `json:"master_sheet,omitempty"`
	SelectionSheet string `json:"selection_sheet,omitempty"`
	StateSheet     string `json:"state_sheet,omitempty"`

	// Job description input (mutually exclusive)
	JDFile string `json:"jd_file,omitempty"`
	JDURL  string `json:"jd_url,omitempty" validate:"omitempty,url"`

	// Assembly thresholds
	InclusionThreshold float64 `json:"inclusion_threshold" validate:"gte=0,lte=1"`
	MaxBulletsPerItem  int     `json:"max_bullets_per_item,omitempty" validate:"gte=0"`
	MaxHighlights      int     `json:"max_highlights,omitempty" validate:"gte=0"`
	MaxBulletColumns   int     `json:"max_bullet_columns,omitempty" validate:"gte=0"`

	// LLM behavior
	Provider         string `json:"provider,omitempty" validate:"omitempty,oneof=gemini anthropic"`
	APIKey           string `json:"api_key,omitempty"`
	InterCallDelayMS int    `json:"inter_call_delay_ms,omitempty" validate:"gte=0"`

	// Rendering
	Template string `json:"template,omitempty"`
	Output   string `json:"output,omitempty"`

	// Persistence and diagnostics
	DatabaseURL string `json:"database_url,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		MasterSheet:        "Master Resume",
		SelectionSheet:     "Selection",
		StateSheet:         "Pipeline State",
		InclusionThreshold: 0.3,
		MaxBulletsPerItem:  4,
		MaxHighlights:      5,
		MaxBulletColumns:   10,
		Provider:           "gemini",
		InterCallDelayMS:   1000,
	}
}

// LoadConfig loads configuration from a JSON file and overlays it on the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks structural constraints and that referenced files exist.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.JDFile != "" && c.JDURL != "" {
		return fmt.Errorf("config error: 'jd_file' and 'jd_url' are mutually exclusive")
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	if c.JDFile != "" {
		if _, err := os.Stat(c.JDFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: job description file not found: %s", c.JDFile)
		}
	}

	return nil
}

// ResolveAPIKey returns the configured key, falling back to the provider's
// conventional environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}
