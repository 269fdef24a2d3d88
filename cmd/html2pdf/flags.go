package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// rendererFlags holds renderer invocation flags.
type rendererFlags struct {
	path    string
	tempDir string
	timeout string
	debug   bool
}

// decorationFlags holds header and footer flags.
type decorationFlags struct {
	headerHTML   string
	footerHTML   string
	headerLeft   string
	headerCenter string
	headerRight  string
	footerLeft   string
	footerCenter string
	footerRight  string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common       commonFlags
	renderer     rendererFlags
	decoration   decorationFlags
	output       string
	workers      int
	url          string
	css          string
	stdout       bool
	printCommand bool
	printConfig  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show renderer commands and timing")
}

// addRendererFlags adds renderer flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.path, "renderer", "", "path to the wkhtmltopdf executable")
	fs.StringVar(&f.tempDir, "temp-dir", "", "directory for temporary PDF files")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.debug, "debug", false, "let renderer output reach the terminal")
}

// addDecorationFlags adds header and footer flags to a FlagSet.
func addDecorationFlags(fs *flag.FlagSet, f *decorationFlags) {
	fs.StringVar(&f.headerHTML, "header-html", "", "HTML file rendered as page header")
	fs.StringVar(&f.footerHTML, "footer-html", "", "HTML file rendered as page footer")
	fs.StringVar(&f.headerLeft, "header-left", "", "header text, left")
	fs.StringVar(&f.headerCenter, "header-center", "", "header text, center")
	fs.StringVar(&f.headerRight, "header-right", "", "header text, right")
	fs.StringVar(&f.footerLeft, "footer-left", "", "footer text, left")
	fs.StringVar(&f.footerCenter, "footer-center", "", "footer text, center")
	fs.StringVar(&f.footerRight, "footer-right", "", "footer text, right")
}

// newConvertFlagSet registers every convert flag on a new FlagSet bound to f.
// Completion scripts are generated from the same FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renderers (0 = auto)")
	fs.StringVar(&f.url, "url", "", "render a URL instead of local files")
	fs.StringVar(&f.css, "css", "", "CSS file injected into every document")
	fs.BoolVar(&f.stdout, "stdout", false, "write the PDF to standard output")
	fs.BoolVar(&f.printCommand, "print-command", false, "print renderer command lines and exit")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration as YAML and exit")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRendererFlags(fs, &f.renderer)
	addDecorationFlags(fs, &f.decoration)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
