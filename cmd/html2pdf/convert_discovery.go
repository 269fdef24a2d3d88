package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// ErrInvalidExtension rejects explicit input files the converter cannot read.
var ErrInvalidExtension = errors.New("file must have .html, .htm, .md or .markdown extension")

// inputExtensions are the file types convert accepts. Markdown is rendered
// to HTML first.
var inputExtensions = map[string]bool{
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// FileToConvert represents a single conversion job: a local file or a URL.
type FileToConvert struct {
	InputPath  string
	URL        string
	OutputPath string // empty when streaming to stdout
}

// Label names the job in logs and results.
func (f FileToConvert) Label() string {
	if f.URL != "" {
		return f.URL
	}
	return f.InputPath
}

// resolveFiles turns positional args, --url and config defaults into jobs.
func resolveFiles(positional []string, flags *convertFlags, cfg *config.Config) ([]FileToConvert, error) {
	output := flags.output
	if output == "" {
		output = cfg.Output.DefaultDir
	}

	if flags.url != "" {
		if !fileutil.IsURL(flags.url) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidURL, flags.url)
		}
		if flags.stdout {
			return []FileToConvert{{URL: flags.url}}, nil
		}
		if output == "" || !strings.HasSuffix(output, ".pdf") {
			return nil, ErrURLNeedsOutput
		}
		return []FileToConvert{{URL: flags.url, OutputPath: output}}, nil
	}

	inputs := positional
	if len(inputs) == 0 {
		if cfg.Input.DefaultDir == "" {
			return nil, ErrNoInput
		}
		inputs = []string{cfg.Input.DefaultDir}
	}

	var files []FileToConvert
	for _, in := range inputs {
		found, err := discoverFiles(in, output)
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no HTML or Markdown files in %s", ErrNoInput, strings.Join(inputs, ", "))
	}
	if len(files) > 1 && strings.HasSuffix(output, ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrOutputFileForBatch, output)
	}
	if flags.stdout {
		for i := range files {
			files[i].OutputPath = ""
		}
	}
	return files, nil
}

// discoverFiles finds all convertible files under inputPath.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !inputExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the PDF output path for an input file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), ".pdf")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if strings.HasSuffix(outputDir, ".pdf") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateInputExtension checks that an explicit file is HTML or Markdown.
func validateInputExtension(path string) error {
	ext := filepath.Ext(path)
	if !inputExtensions[strings.ToLower(ext)] {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// isMarkdown reports whether path must be rendered to HTML first.
func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}
