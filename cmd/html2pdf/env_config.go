package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envPrefix marks the variables this tool reads.
const envPrefix = "HTML2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // HTML2PDF_CONFIG: config file name or path
	Renderer   string        // HTML2PDF_RENDERER: wkhtmltopdf executable
	TempDir    string        // HTML2PDF_TEMP_DIR: temporary PDF directory
	Timeout    time.Duration // HTML2PDF_TIMEOUT: per-document timeout
	Debug      bool          // HTML2PDF_DEBUG: renderer output on terminal
	InputDir   string        // HTML2PDF_INPUT_DIR: default input directory
	OutputDir  string        // HTML2PDF_OUTPUT_DIR: default output directory
	HeaderHTML string        // HTML2PDF_HEADER_HTML: header file
	FooterHTML string        // HTML2PDF_FOOTER_HTML: footer file
	Workers    int           // HTML2PDF_WORKERS: parallel renderers
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":      true,
	"HTML2PDF_RENDERER":    true,
	"HTML2PDF_TEMP_DIR":    true,
	"HTML2PDF_TIMEOUT":     true,
	"HTML2PDF_DEBUG":       true,
	"HTML2PDF_INPUT_DIR":   true,
	"HTML2PDF_OUTPUT_DIR":  true,
	"HTML2PDF_HEADER_HTML": true,
	"HTML2PDF_FOOTER_HTML": true,
	"HTML2PDF_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numeric, duration or boolean values are reported and ignored.
func loadEnvConfig(getenv func(string) string, logger *log.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("HTML2PDF_CONFIG"),
		Renderer:   getenv("HTML2PDF_RENDERER"),
		TempDir:    getenv("HTML2PDF_TEMP_DIR"),
		InputDir:   getenv("HTML2PDF_INPUT_DIR"),
		OutputDir:  getenv("HTML2PDF_OUTPUT_DIR"),
		HeaderHTML: getenv("HTML2PDF_HEADER_HTML"),
		FooterHTML: getenv("HTML2PDF_FOOTER_HTML"),
	}

	if timeout := getenv("HTML2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			logger.Warn("ignoring invalid environment variable", "name", "HTML2PDF_TIMEOUT", "value", timeout)
		}
	}

	if workers := getenv("HTML2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			logger.Warn("ignoring invalid environment variable", "name", "HTML2PDF_WORKERS", "value", workers)
		}
	}

	if debug := getenv("HTML2PDF_DEBUG"); debug != "" {
		if b, err := strconv.ParseBool(debug); err == nil {
			cfg.Debug = b
		} else {
			logger.Warn("ignoring invalid environment variable", "name", "HTML2PDF_DEBUG", "value", debug)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PDF_* variables.
// Helps catch typos like HTML2PDF_TIMOUT.
func warnUnknownEnvVars(environ []string, logger *log.Logger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied afterwards
// by mergeFlags, giving: flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Renderer != "" {
		cfg.Renderer.Path = env.Renderer
	}
	if env.TempDir != "" {
		cfg.Renderer.TempDir = env.TempDir
	}
	if env.Timeout > 0 {
		cfg.Renderer.Timeout = env.Timeout.String()
	}
	if env.Debug {
		cfg.Renderer.Debug = true
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.HeaderHTML != "" {
		cfg.Document.HeaderHTML = env.HeaderHTML
	}
	if env.FooterHTML != "" {
		cfg.Document.FooterHTML = env.FooterHTML
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
