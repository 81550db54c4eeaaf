// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultOutDir is where results are written when no directory is configured.
const DefaultOutDir = "out"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume   string   `json:"resume,omitempty"`    // Resume file (.pdf or text)
	JobFiles []string `json:"job_files,omitempty"` // Job description text files
	Template string   `json:"template,omitempty"`  // LaTeX template override
	OutDir   string   `json:"out_dir,omitempty"`   // Output directory

	// Job posting URLs
	JobURLs []string `json:"job_urls,omitempty" validate:"dive,url"`

	// SearxNG instance for web research
	SearxURL string `json:"searx_url,omitempty" validate:"omitempty,url"`

	// Model
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=anthropic openai google gemini proxy"`
	Model    string `json:"model,omitempty"`

	// Behavior
	Highlight bool `json:"highlight,omitempty"` // Render change markers in HTML output
	PDF       bool `json:"pdf,omitempty"`       // Export PDFs with headless Chrome
	Verbose   bool `json:"verbose,omitempty"`   // Print detailed debug information
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", jsonName(fe.StructField()), fe.Tag()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	for _, job := range c.JobFiles {
		if _, err := os.Stat(job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", job)
		}
	}

	return nil
}

// jsonName maps a struct field name to its JSON key for error messages.
// Element indexes such as "JobURLs[0]" are dropped.
func jsonName(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	switch field {
	case "JobURLs":
		return "job_urls"
	case "SearxURL":
		return "searx_url"
	default:
		return strings.ToLower(field)
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.SearxURL == "" {
		result.SearxURL = defaults.SearxURL
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.OutDir == "" {
		result.OutDir = DefaultOutDir
	}

	// Slice fields: use default if empty
	if len(result.JobURLs) == 0 {
		result.JobURLs = defaults.JobURLs
	}
	if len(result.JobFiles) == 0 {
		result.JobFiles = defaults.JobFiles
	}

	// Bool fields: either source can switch a feature on
	result.Highlight = result.Highlight || defaults.Highlight
	result.PDF = result.PDF || defaults.PDF
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
