package html2pdf

// StdinSource tells the renderer to read the document from standard input
// rather than fetch a URL.
const StdinSource = "-"

// Document describes one conversion: where the renderer reads the page from,
// and the optional header and footer decorations.
//
// Text fields accept the renderer's substitution variables such as [page]
// and [topage]. State is never read by the converter; it is handed back to
// Output.Callback untouched.
type Document struct {
	// Source is a URL or StdinSource.
	Source string
	// HTML is written to the renderer's stdin. Required when Source is StdinSource.
	HTML string

	HeaderHTML string // path to an HTML file rendered as page header
	FooterHTML string // path to an HTML file rendered as page footer

	HeaderLeft   string
	HeaderCenter string
	HeaderRight  string
	FooterLeft   string
	FooterCenter string
	FooterRight  string

	State any
}

// NewHTMLDocument returns a Document that feeds html to the renderer on stdin.
func NewHTMLDocument(html string) Document {
	return Document{Source: StdinSource, HTML: html}
}

// Validate checks the document's preconditions.
func (d Document) Validate() error {
	if d.Source == "" {
		return ErrEmptySource
	}
	if d.Source == StdinSource && d.HTML == "" {
		return ErrMissingHTML
	}
	return nil
}
