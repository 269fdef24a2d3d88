package html2pdf

import "io"

// copyBufferSize is the chunk size used when streaming a PDF to Output.Writer.
const copyBufferSize = 32 * 1024

// Output says where a finished PDF goes. Any combination may be set.
//
// When FilePath is empty the converter writes to a generated path under the
// environment's temp dir and removes it once Writer and Callback have run.
// An explicit FilePath is left in place.
type Output struct {
	FilePath string
	Writer   io.Writer
	Callback func(doc Document, pdf []byte) error
}

// AutoGenerated reports whether the converter will pick the output path.
func (o Output) AutoGenerated() bool {
	return o.FilePath == ""
}
