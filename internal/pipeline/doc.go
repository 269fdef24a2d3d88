// Package pipeline prepares HTML bodies for the renderer when the CLI is
// given something other than ready-made HTML.
//
//   - Markdown files are converted to standalone HTML via Goldmark (GFM,
//     footnotes, chroma syntax highlighting with inline styles).
//   - An optional user stylesheet is injected as a <style> block.
//
// The library converter never imports this package: it only sees the
// resulting HTML string.
package pipeline
