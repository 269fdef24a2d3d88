// Package locate finds the wkhtmltopdf executable from well-known install
// locations. Resolution never fails: when nothing is installed it returns the
// last candidate, and the converter reports the missing file at invocation.
package locate

import (
	"path/filepath"
	"strings"
)

// ExecutableName is the renderer's base name on non-windows platforms.
const ExecutableName = "wkhtmltopdf"

// fallbackDirs are searched after PATH on non-windows platforms.
var fallbackDirs = []string{
	"/usr/local/bin",
	"/usr/bin",
	"/opt/wkhtmltopdf/bin",
}

// Candidates returns the ordered list of paths to probe on goos.
// getenv is usually os.Getenv.
func Candidates(goos string, getenv func(string) string) []string {
	if goos == "windows" {
		return windowsCandidates(getenv)
	}

	var out []string
	for _, dir := range filepath.SplitList(getenv("PATH")) {
		if dir == "" {
			continue
		}
		out = append(out, filepath.Join(dir, ExecutableName))
	}
	for _, dir := range fallbackDirs {
		out = append(out, filepath.Join(dir, ExecutableName))
	}
	return dedupe(out)
}

// windowsCandidates mirrors the installer layout: the 64-bit and 32-bit
// program directories, then their bin/ variants.
func windowsCandidates(getenv func(string) string) []string {
	roots := []string{getenv("ProgramFiles"), getenv("ProgramFiles(x86)")}
	layouts := [][]string{
		{"wkhtmltopdf", "wkhtmltopdf.exe"},
		{"wkhtmltopdf", "bin", "wkhtmltopdf.exe"},
	}

	var out []string
	for _, layout := range layouts {
		for _, root := range roots {
			if strings.TrimSpace(root) == "" {
				continue
			}
			out = append(out, filepath.Join(append([]string{root}, layout...)...))
		}
	}
	return out
}

// Resolve returns the first candidate for which exists reports true, or the
// last candidate as a best guess. It returns ExecutableName when there are no
// candidates at all.
func Resolve(goos string, getenv func(string) string, exists func(string) bool) string {
	candidates := Candidates(goos, getenv)
	if len(candidates) == 0 {
		return ExecutableName
	}
	for _, c := range candidates {
		if exists(c) {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
