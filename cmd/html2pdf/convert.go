package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input file")
	ErrReadCSS            = errors.New("failed to read CSS file")
	ErrCreateOutputDir    = errors.New("failed to create output directory")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrURLNeedsOutput     = errors.New("--url requires --output <file>.pdf or --stdout")
	ErrInvalidURL         = errors.New("--url must be an http, https or file URL")
	ErrStdoutSingleInput  = errors.New("--stdout needs exactly one input")
	ErrOutputFileForBatch = errors.New("output must be a directory when converting several inputs")
)

// Converter is what the CLI needs from the library. *html2pdf.Pool and
// *html2pdf.Converter both satisfy it.
type Converter interface {
	Convert(ctx context.Context, doc html2pdf.Document, out html2pdf.Output) error
}

// Compile-time interface implementation checks.
var (
	_ Converter = (*html2pdf.Pool)(nil)
	_ Converter = (*html2pdf.Converter)(nil)
)

// runConvertCmd parses flags, runs the conversion and returns an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	logger := newLogger(env.Stderr, logLevel(flags.common))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, logger); err != nil {
		logger.Error(err.Error() + hintFor(err, flags.common.config))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment, logger *log.Logger) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv, logger)
	warnUnknownEnvVars(env.Environ(), logger)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if flags.printConfig {
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	renderEnv, err := rendererEnvironment(cfg)
	if err != nil {
		return err
	}

	files, err := resolveFiles(positional, flags, cfg)
	if err != nil {
		return err
	}
	if flags.stdout && len(files) != 1 {
		return fmt.Errorf("%w: got %d", ErrStdoutSingleInput, len(files))
	}

	template := documentTemplate(cfg)

	if flags.printCommand {
		printCommands(env, renderEnv, template, files)
		return nil
	}

	css, err := readCSS(flags.css)
	if err != nil {
		return err
	}

	workers := html2pdf.ResolvePoolSize(cfg.Workers)
	logger.Debug("starting conversion", "files", len(files), "workers", workers, "renderer", renderEnv.ExecutablePath)

	params := &conversionParams{
		template: template,
		css:      css,
		markdown: newMarkdownConverter(),
	}
	if flags.stdout {
		params.stdout = env.Stdout
	}

	conv := env.NewConverter(renderEnv, logger, workers)
	results := convertBatch(ctx, conv, workers, files, params)

	return reportResults(results, logger)
}

// loadConfig loads the config named by the flag, falling back to
// HTML2PDF_CONFIG. With neither set, defaults are used.
func loadConfig(flagName string, envCfg *envConfig) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Renderer flags
	if flags.renderer.path != "" {
		cfg.Renderer.Path = flags.renderer.path
	}
	if flags.renderer.tempDir != "" {
		cfg.Renderer.TempDir = flags.renderer.tempDir
	}
	if flags.renderer.timeout != "" {
		cfg.Renderer.Timeout = flags.renderer.timeout
	}
	if flags.renderer.debug {
		cfg.Renderer.Debug = true
	}

	// Decoration flags
	d := flags.decoration
	setIfNotEmpty(&cfg.Document.HeaderHTML, d.headerHTML)
	setIfNotEmpty(&cfg.Document.FooterHTML, d.footerHTML)
	setIfNotEmpty(&cfg.Document.HeaderLeft, d.headerLeft)
	setIfNotEmpty(&cfg.Document.HeaderCenter, d.headerCenter)
	setIfNotEmpty(&cfg.Document.HeaderRight, d.headerRight)
	setIfNotEmpty(&cfg.Document.FooterLeft, d.footerLeft)
	setIfNotEmpty(&cfg.Document.FooterCenter, d.footerCenter)
	setIfNotEmpty(&cfg.Document.FooterRight, d.footerRight)

	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// rendererEnvironment builds the library environment from config.
// Unset fields keep the probed defaults.
func rendererEnvironment(cfg *config.Config) (html2pdf.Environment, error) {
	env := html2pdf.DefaultEnvironment()

	if cfg.Renderer.Path != "" {
		env.ExecutablePath = cfg.Renderer.Path
	}
	if cfg.Renderer.TempDir != "" {
		env.TempDir = cfg.Renderer.TempDir
	}
	timeout, err := cfg.Renderer.TimeoutDuration()
	if err != nil {
		return env, err
	}
	if timeout > 0 {
		env.Timeout = timeout
	}
	env.Debug = cfg.Renderer.Debug

	return env, nil
}

// documentTemplate holds the decorations shared by every document in a batch.
func documentTemplate(cfg *config.Config) html2pdf.Document {
	return html2pdf.Document{
		HeaderHTML:   cfg.Document.HeaderHTML,
		FooterHTML:   cfg.Document.FooterHTML,
		HeaderLeft:   cfg.Document.HeaderLeft,
		HeaderCenter: cfg.Document.HeaderCenter,
		HeaderRight:  cfg.Document.HeaderRight,
		FooterLeft:   cfg.Document.FooterLeft,
		FooterCenter: cfg.Document.FooterCenter,
		FooterRight:  cfg.Document.FooterRight,
	}
}

// printCommands writes the renderer invocation for each file without
// running anything.
func printCommands(env *Environment, renderEnv html2pdf.Environment, template html2pdf.Document, files []FileToConvert) {
	for _, f := range files {
		doc := template
		doc.Source = html2pdf.StdinSource
		if f.URL != "" {
			doc.Source = f.URL
		}
		outputPath := f.OutputPath
		if outputPath == "" {
			outputPath = "<temp>.pdf"
		}
		args := html2pdf.BuildArguments(doc, outputPath)
		fmt.Fprintf(env.Stdout, "%s %s\n", renderEnv.ExecutablePath, html2pdf.FormatCommandLine(args))
	}
}

// readCSS loads the stylesheet injected into every document.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	var timeoutErr *html2pdf.TimeoutError
	switch {
	case errors.Is(err, html2pdf.ErrRendererNotInstalled):
		return hints.ForRendererNotInstalled(runtime.GOOS)
	case errors.As(err, &timeoutErr) && !timeoutErr.Canceled():
		return hints.ForTimeout()
	case errors.Is(err, html2pdf.ErrRendererFailed):
		return hints.ForRendererFailed()
	case errors.Is(err, config.ErrConfigNotFound) && configName != "":
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	}
	return ""
}
