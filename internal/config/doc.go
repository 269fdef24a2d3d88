// Package config loads YAML configuration for the html2pdf CLI.
//
// A config file covers the renderer invocation (executable path, temp
// directory, timeout, debug mode), default header/footer decorations, and
// input/output directories:
//
//	renderer:
//	  path: /usr/local/bin/wkhtmltopdf
//	  timeout: 90s
//	document:
//	  footerCenter: "[page]/[topage]"
//	output:
//	  defaultDir: exports
//
// Unknown keys are rejected.
package config
