// Package html2pdf converts HTML documents to PDF by supervising an external
// renderer process (wkhtmltopdf).
//
// # Quick Start
//
//	conv := html2pdf.NewConverter()
//	err := conv.Convert(ctx, html2pdf.NewHTMLDocument("<h1>Invoice</h1>"), html2pdf.Output{
//	    FilePath: "invoice.pdf",
//	})
//
// The HTML is written to the renderer's standard input. To render a page the
// renderer fetches itself, set Document.Source to its URL and leave HTML empty.
//
// # Environment
//
// DefaultEnvironment probes well-known install locations once per process.
// Pass a different Environment to use another binary, temp directory or
// timeout:
//
//	env := html2pdf.DefaultEnvironment()
//	env.Timeout = 2 * time.Minute
//	conv := html2pdf.NewConverter(html2pdf.WithEnvironment(env))
//
// # Output
//
// Output accepts a file path, an io.Writer, a callback, or any mix. Without a
// file path the PDF goes to a generated file in the environment's temp
// directory, which is removed once the writer and callback have run:
//
//	var buf bytes.Buffer
//	err := conv.Convert(ctx, doc, html2pdf.Output{Writer: &buf})
//
// # Errors
//
// Failures are typed so callers can react to the cause:
//
//   - *ConfigError: a precondition failed and nothing was started
//     (ErrMissingHTML, ErrEmptySource, ErrRendererNotInstalled, ErrInvalidTimeout).
//   - *TimeoutError: the renderer exceeded the timeout or ctx was canceled;
//     the renderer and its children have been killed.
//   - *ProcessError: the renderer exited without writing the PDF
//     (ErrRendererFailed, ErrOutputNotFound).
//
// Delivery failures from Output.Writer or Output.Callback wrap ErrDelivery.
// Nothing is retried.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. Pool caps how many renderer
// processes run at once:
//
//	pool := html2pdf.NewPool(conv, html2pdf.ResolvePoolSize(0))
//	err := pool.Convert(ctx, doc, out)
package html2pdf
