// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForRendererNotInstalled returns hints for a missing wkhtmltopdf executable.
func ForRendererNotInstalled(goos string) string {
	var hints []string

	if os.Getenv("HTML2PDF_RENDERER") == "" {
		hints = append(hints, "set HTML2PDF_RENDERER or pass --renderer /path/to/wkhtmltopdf")
	}

	switch {
	case IsInContainer():
		hints = append(hints, "install the renderer in the image (apt-get install wkhtmltopdf)")
	case goos == "windows":
		hints = append(hints, "install wkhtmltopdf under %ProgramFiles%\\wkhtmltopdf")
	case goos == "darwin":
		hints = append(hints, "install with: brew install --cask wkhtmltopdf")
	default:
		hints = append(hints, "install with your package manager (e.g. apt install wkhtmltopdf)")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for large documents or slow URLs, raise --timeout")
}

// ForRendererFailed points at debug mode, which lets renderer output through.
func ForRendererFailed() string {
	return format("rerun with --debug to see renderer output on the terminal")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-html2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-html2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
