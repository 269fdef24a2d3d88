package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits. Header/footer text ends up on the renderer's command line,
// so it is kept well under typical argument length limits.
const (
	MaxPathLength = 4096
	MaxTextLength = 500
	MaxWorkers    = 64
)

// appDir is the directory name under the user config directory.
const appDir = "go-html2pdf"

// Config holds all configuration for HTML to PDF conversion.
type Config struct {
	Renderer RendererConfig `yaml:"renderer"`
	Document DocumentConfig `yaml:"document"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Workers  int            `yaml:"workers"` // 0 = auto
}

// RendererConfig defines how the external renderer is invoked.
type RendererConfig struct {
	Path    string `yaml:"path"`    // Empty = probe install locations
	TempDir string `yaml:"tempDir"` // Empty = system temp directory
	Timeout string `yaml:"timeout"` // Go duration, e.g. "90s" (empty = 60s)
	Debug   bool   `yaml:"debug"`   // Let renderer output reach the terminal
}

// DocumentConfig defines header and footer decorations applied to every document.
type DocumentConfig struct {
	HeaderHTML   string `yaml:"headerHTML"`
	FooterHTML   string `yaml:"footerHTML"`
	HeaderLeft   string `yaml:"headerLeft"`
	HeaderCenter string `yaml:"headerCenter"`
	HeaderRight  string `yaml:"headerRight"`
	FooterLeft   string `yaml:"footerLeft"`
	FooterCenter string `yaml:"footerCenter"`
	FooterRight  string `yaml:"footerRight"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
}

// DefaultConfig returns a configuration with every field unset, so that
// environment variables and flags decide.
func DefaultConfig() *Config {
	return &Config{}
}

// TimeoutDuration parses Timeout. An empty value yields zero, which callers
// treat as "use the library default".
func (r RendererConfig) TimeoutDuration() (time.Duration, error) {
	if r.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: renderer.timeout %q: %v", ErrInvalidValue, r.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: renderer.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and value ranges.
// Called by LoadConfig, and by the CLI after flags and env vars are merged.
func (c *Config) Validate() error {
	paths := []struct{ name, value string }{
		{"renderer.path", c.Renderer.Path},
		{"renderer.tempDir", c.Renderer.TempDir},
		{"document.headerHTML", c.Document.HeaderHTML},
		{"document.footerHTML", c.Document.FooterHTML},
		{"input.defaultDir", c.Input.DefaultDir},
		{"output.defaultDir", c.Output.DefaultDir},
	}
	for _, f := range paths {
		if err := validateFieldLength(f.name, f.value, MaxPathLength); err != nil {
			return err
		}
	}

	texts := []struct{ name, value string }{
		{"document.headerLeft", c.Document.HeaderLeft},
		{"document.headerCenter", c.Document.HeaderCenter},
		{"document.headerRight", c.Document.HeaderRight},
		{"document.footerLeft", c.Document.FooterLeft},
		{"document.footerCenter", c.Document.FooterCenter},
		{"document.footerRight", c.Document.FooterRight},
	}
	for _, f := range texts {
		if err := validateFieldLength(f.name, f.value, MaxTextLength); err != nil {
			return err
		}
	}

	if _, err := c.Renderer.TimeoutDuration(); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// current directory then ~/.config/go-html2pdf/, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}

	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
