package html2pdf

import "strings"

// Margins applied when a header or footer HTML file is set, in millimeters.
const (
	decorationMargin  = "25"
	decorationSpacing = "5"
)

// quotedFlags take free text, so FormatCommandLine quotes their values.
var quotedFlags = map[string]bool{
	"--header-left":   true,
	"--header-center": true,
	"--header-right":  true,
	"--footer-left":   true,
	"--footer-center": true,
	"--footer-right":  true,
}

// BuildArguments returns the renderer's argument list for doc writing to
// outputPath. Order is fixed: page size, header file, footer file, the six
// text decorations, source, output.
func BuildArguments(doc Document, outputPath string) []string {
	args := []string{"--page-size", "A4"}

	if doc.HeaderHTML != "" {
		args = append(args,
			"--header-html", doc.HeaderHTML,
			"--margin-top", decorationMargin,
			"--header-spacing", decorationSpacing)
	}
	if doc.FooterHTML != "" {
		args = append(args,
			"--footer-html", doc.FooterHTML,
			"--margin-bottom", decorationMargin,
			"--footer-spacing", decorationSpacing)
	}

	texts := []struct {
		flag, value string
	}{
		{"--header-left", doc.HeaderLeft},
		{"--header-center", doc.HeaderCenter},
		{"--header-right", doc.HeaderRight},
		{"--footer-left", doc.FooterLeft},
		{"--footer-center", doc.FooterCenter},
		{"--footer-right", doc.FooterRight},
	}
	for _, t := range texts {
		if t.value != "" {
			args = append(args, t.flag, t.value)
		}
	}

	return append(args, doc.Source, outputPath)
}

// FormatCommandLine renders args from BuildArguments as a single command
// string. Text values and the trailing source and output are wrapped in
// double quotes; nothing is escaped.
func FormatCommandLine(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch {
		case i >= len(args)-2:
			parts[i] = quote(a)
		case i > 0 && quotedFlags[args[i-1]]:
			parts[i] = quote(a)
		default:
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	return `"` + s + `"`
}
