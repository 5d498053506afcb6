package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Master Resume", cfg.MasterSheet)
	assert.Equal(t, "Selection", cfg.SelectionSheet)
	assert.Equal(t, "Pipeline State", cfg.StateSheet)
	assert.InDelta(t, 0.3, cfg.InclusionThreshold, 0.0001)
	assert.Equal(t, 4, cfg.MaxBulletsPerItem)
	assert.Equal(t, 5, cfg.MaxHighlights)
	assert.Equal(t, 10, cfg.MaxBulletColumns)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, 1000, cfg.InterCallDelayMS)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"workbook": "resume.xlsx",
		"inclusion_threshold": 0.5,
		"provider": "anthropic"
	}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "resume.xlsx", cfg.Workbook)
	assert.InDelta(t, 0.5, cfg.InclusionThreshold, 0.0001)
	assert.Equal(t, "anthropic", cfg.Provider)
	// Untouched keys keep their defaults.
	assert.Equal(t, "Master Resume", cfg.MasterSheet)
	assert.Equal(t, 4, cfg.MaxBulletsPerItem)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.InclusionThreshold = 1.5 },
			wantErr: "config error",
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.InclusionThreshold = -0.1 },
			wantErr: "config error",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "openai" },
			wantErr: "config error",
		},
		{
			name:    "bad jd url",
			mutate:  func(c *Config) { c.JDURL = "not a url" },
			wantErr: "config error",
		},
		{
			name: "jd file and url both set",
			mutate: func(c *Config) {
				c.JDFile = "jd.txt"
				c.JDURL = "https://example.com/posting"
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing template file",
			mutate:  func(c *Config) { c.Template = "/definitely/not/here.tex" },
			wantErr: "template file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_ResolveAPIKey(t *testing.T) {
	cfg := Default()
	cfg.APIKey = "explicit"
	assert.Equal(t, "explicit", cfg.ResolveAPIKey())

	cfg.APIKey = ""
	t.Setenv("GEMINI_API_KEY", "from-env")
	assert.Equal(t, "from-env", cfg.ResolveAPIKey())

	cfg.Provider = "anthropic"
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-env")
	assert.Equal(t, "anthropic-env", cfg.ResolveAPIKey())
}
