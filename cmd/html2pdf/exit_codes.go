package main

import (
	"errors"
	"os"

	"github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Exit codes for html2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error, including interruption
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitRenderer = 4 // Renderer missing or failed
	ExitTimeout  = 5 // Renderer exceeded its timeout
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Timeouts (exit 5). Interruption is not a timeout.
	var timeoutErr *html2pdf.TimeoutError
	if errors.As(err, &timeoutErr) {
		if timeoutErr.Canceled() {
			return ExitGeneral
		}
		return ExitTimeout
	}

	// Renderer errors (exit 4)
	var procErr *html2pdf.ProcessError
	if errors.As(err, &procErr) ||
		errors.Is(err, html2pdf.ErrRendererNotInstalled) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, html2pdf.ErrDelivery) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, html2pdf.ErrMissingHTML) ||
		errors.Is(err, html2pdf.ErrEmptySource) ||
		errors.Is(err, html2pdf.ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrURLNeedsOutput) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrStdoutSingleInput) ||
		errors.Is(err, ErrOutputFileForBatch) {
		return ExitUsage
	}

	return ExitGeneral
}
