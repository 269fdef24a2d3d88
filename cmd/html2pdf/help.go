package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML or Markdown files, or a URL, to PDF")
	fmt.Fprintln(w, "  doctor     Check that wkhtmltopdf is installed and usable")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf convert <input...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML or Markdown files to PDF with wkhtmltopdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .html/.htm/.md file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --url <url>           Render a URL instead of local files")
	fmt.Fprintln(w, "      --stdout              Write the PDF to standard output")
	fmt.Fprintln(w, "      --css <path>          CSS file injected into every document")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renderers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "      --renderer <path>     wkhtmltopdf executable")
	fmt.Fprintln(w, "      --temp-dir <path>     Directory for temporary PDFs")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (default 60s)")
	fmt.Fprintln(w, "      --debug               Show renderer output on the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Header/Footer:")
	fmt.Fprintln(w, "      --header-html <path>  HTML file rendered as page header")
	fmt.Fprintln(w, "      --footer-html <path>  HTML file rendered as page footer")
	fmt.Fprintln(w, "      --header-left <s>     Header text (also -center, -right)")
	fmt.Fprintln(w, "      --footer-left <s>     Footer text (also -center, -right)")
	fmt.Fprintln(w, "                            Variables: [page] [topage] [date] [title]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inspection:")
	fmt.Fprintln(w, "      --print-command       Print renderer command lines and exit")
	fmt.Fprintln(w, "      --print-config        Print effective configuration as YAML and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show renderer commands and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PDF_CONFIG, HTML2PDF_RENDERER, HTML2PDF_TEMP_DIR, HTML2PDF_TIMEOUT,")
	fmt.Fprintln(w, "  HTML2PDF_DEBUG, HTML2PDF_INPUT_DIR, HTML2PDF_OUTPUT_DIR,")
	fmt.Fprintln(w, "  HTML2PDF_HEADER_HTML, HTML2PDF_FOOTER_HTML, HTML2PDF_WORKERS")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report the resolved renderer, its version and temp directory access.")
	fmt.Fprintln(w, "Exits 1 when conversion cannot work.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
