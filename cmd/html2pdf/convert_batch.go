package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/pipeline"
)

// dirPermissions is used for output directories: rwxr-x---.
const dirPermissions = 0o750

// conversionParams groups parameters shared across a batch.
type conversionParams struct {
	template html2pdf.Document
	css      string
	markdown pipeline.MarkdownConverter
	stdout   io.Writer // set with --stdout
}

func newMarkdownConverter() pipeline.MarkdownConverter {
	return pipeline.NewGoldmarkConverter()
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Label      string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch runs files through conv with at most workers in flight.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv Converter, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(files))

	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{Label: files[idx].Label(), Err: err}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	wg.Wait()
	return results
}

// convertFile converts a single job and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{Label: f.Label(), OutputPath: f.OutputPath}
	defer func() { result.Duration = time.Since(start) }()

	doc, err := buildDocument(ctx, f, params)
	if err != nil {
		result.Err = err
		return result
	}

	out := html2pdf.Output{FilePath: f.OutputPath, Writer: params.stdout}
	if f.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrCreateOutputDir, err)
			return result
		}
	}

	result.Err = conv.Convert(ctx, doc, out)
	return result
}

// buildDocument fills the batch template with the job's source. Local files
// go to the renderer on stdin, rendered from Markdown when needed.
func buildDocument(ctx context.Context, f FileToConvert, params *conversionParams) (html2pdf.Document, error) {
	doc := params.template
	if f.URL != "" {
		doc.Source = f.URL
		return doc, nil
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return doc, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	html := string(content)
	if isMarkdown(f.InputPath) {
		title := strings.TrimSuffix(filepath.Base(f.InputPath), filepath.Ext(f.InputPath))
		html, err = params.markdown.ToHTML(ctx, html, title)
		if err != nil {
			return doc, fmt.Errorf("converting %s: %w", f.InputPath, err)
		}
	}
	if strings.TrimSpace(html) == "" {
		return doc, fmt.Errorf("%w: %s is empty", html2pdf.ErrMissingHTML, f.InputPath)
	}

	doc.Source = html2pdf.StdinSource
	doc.HTML = pipeline.InjectCSS(html, params.css)
	return doc, nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// reportResults logs each result and returns an error wrapping the first
// failure, so the exit code reflects its cause.
func reportResults(results []ConversionResult, logger *log.Logger) error {
	summary := countResults(results)

	var first error
	for _, r := range results {
		if r.Err != nil {
			logger.Error("conversion failed", "input", r.Label, "err", r.Err)
			if first == nil {
				first = r.Err
			}
			continue
		}
		if r.OutputPath == "" {
			logger.Debug("streamed", "input", r.Label, "duration", r.Duration.Round(time.Millisecond))
			continue
		}
		logger.Info("created", "output", r.OutputPath, "duration", r.Duration.Round(time.Millisecond))
	}

	if len(results) > 1 {
		logger.Info("done", "succeeded", summary.Succeeded, "failed", summary.Failed)
	}

	if first != nil {
		return fmt.Errorf("%d conversion(s) failed: %w", summary.Failed, first)
	}
	return nil
}
