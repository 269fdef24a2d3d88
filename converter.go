package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// lineTerminator follows the HTML written to the renderer's stdin.
const lineTerminator = "\n"

// Converter runs the renderer for each conversion. It holds no per-call
// state, so one Converter may serve many goroutines.
type Converter struct {
	env      Environment
	logger   *log.Logger
	starter  processStarter
	tempPath func(dir string) string
	lookPath func(path string) (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithEnvironment sets the renderer environment. Without it the converter
// uses DefaultEnvironment().
func WithEnvironment(env Environment) Option {
	return func(c *Converter) {
		c.env = env
	}
}

// WithLogger sets the logger for launch, exit and cleanup events.
// A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewConverter creates a Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		env:      DefaultEnvironment(),
		logger:   log.New(io.Discard),
		starter:  execStarter{},
		tempPath: fileutil.TempPDFPath,
		lookPath: lookPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Environment returns the converter's environment.
func (c *Converter) Environment() Environment {
	return c.env
}

// Convert renders doc to PDF and delivers it to out.
//
// Precondition failures return *ConfigError before anything is started.
// A renderer that outlives the environment's timeout, or whose ctx is
// canceled, is killed and reported as *TimeoutError. A renderer that exits
// without writing its output file is reported as *ProcessError. Generated
// output files are removed before Convert returns, whatever the outcome.
func (c *Converter) Convert(ctx context.Context, doc Document, out Output) error {
	env := c.env
	if err := env.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	if err := doc.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	exe, err := c.lookPath(env.ExecutablePath)
	if err != nil {
		return &ConfigError{Err: fmt.Errorf("%w: %s", ErrRendererNotInstalled, env.ExecutablePath)}
	}
	if err := ctx.Err(); err != nil {
		return &TimeoutError{Source: doc.Source, Timeout: env.timeout(), Err: err}
	}

	outputPath := out.FilePath
	if out.AutoGenerated() {
		outputPath = c.tempPath(env.tempDir())
		defer c.cleanup(outputPath)
	}

	if err := c.render(ctx, env, exe, doc, outputPath); err != nil {
		return err
	}
	return c.deliver(doc, out, outputPath)
}

// render runs the renderer once and checks that it produced outputPath.
func (c *Converter) render(ctx context.Context, env Environment, exe string, doc Document, outputPath string) error {
	args := BuildArguments(doc, outputPath)
	c.logger.Debug("launching renderer", "exe", exe, "args", FormatCommandLine(args))

	runCtx, cancel := context.WithTimeout(ctx, env.timeout())
	defer cancel()

	start := time.Now()
	proc, err := c.starter.start(exe, args, env.Debug)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, exec.ErrNotFound) {
			return &ConfigError{Err: fmt.Errorf("%w: %v", ErrRendererNotInstalled, err)}
		}
		return &ProcessError{Source: doc.Source, ExitCode: -1, Output: err.Error(), Err: ErrRendererFailed}
	}

	stop := context.AfterFunc(runCtx, proc.kill)
	defer stop()

	c.writeInput(proc.stdin(), doc.HTML)

	exitCode, waitErr := proc.wait()
	if !stop() {
		// The context ended first and the renderer was killed.
		c.logger.Warn("renderer killed", "source", doc.Source, "timeout", env.timeout(), "reason", runCtx.Err())
		return &TimeoutError{Source: doc.Source, Timeout: env.timeout(), Err: runCtx.Err()}
	}
	c.logger.Debug("renderer exited", "code", exitCode, "duration", time.Since(start).Round(time.Millisecond))

	if fileutil.FileExists(outputPath) {
		return nil
	}

	if exitCode != 0 {
		msg := proc.stderr()
		if env.Debug || msg == "" {
			msg = "exit code " + strconv.Itoa(exitCode)
		}
		return &ProcessError{Source: doc.Source, ExitCode: exitCode, Output: msg, Err: ErrRendererFailed}
	}
	if waitErr != nil {
		return &ProcessError{Source: doc.Source, ExitCode: exitCode, Output: waitErr.Error(), Err: ErrRendererFailed}
	}
	return &ProcessError{
		Source: doc.Source,
		Output: fmt.Sprintf("output file %s not found", outputPath),
		Err:    ErrOutputNotFound,
	}
}

// writeInput sends html followed by a line terminator, then closes stdin so
// the renderer sees end of input. Write errors are only logged: a renderer
// that exits early closes the pipe, and its exit status decides the outcome.
func (c *Converter) writeInput(stdin io.WriteCloser, html string) {
	if html != "" {
		if _, err := io.WriteString(stdin, html+lineTerminator); err != nil {
			c.logger.Debug("writing renderer stdin", "err", err)
		}
	}
	if err := stdin.Close(); err != nil {
		c.logger.Debug("closing renderer stdin", "err", err)
	}
}

// deliver hands the PDF at path to the caller's sinks.
func (c *Converter) deliver(doc Document, out Output, path string) error {
	if out.Writer != nil {
		if err := copyToWriter(out.Writer, path); err != nil {
			return fmt.Errorf("%w: %w", ErrDelivery, err)
		}
	}
	if out.Callback != nil {
		data, err := os.ReadFile(path) // #nosec G304 -- path was produced by this conversion
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDelivery, err)
		}
		if err := out.Callback(doc, data); err != nil {
			return fmt.Errorf("%w: %w", ErrDelivery, err)
		}
	}
	return nil
}

func copyToWriter(w io.Writer, path string) error {
	f, err := os.Open(path) // #nosec G304 -- path was produced by this conversion
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.CopyBuffer(w, f, make([]byte, copyBufferSize))
	return err
}

func (c *Converter) cleanup(path string) {
	if err := fileutil.RemoveIfExists(path); err != nil {
		c.logger.Warn("removing temporary output", "path", path, "err", err)
	}
}

// lookPath resolves bare names through PATH and checks that explicit paths
// point at a file.
func lookPath(path string) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}
	if filepath.Base(path) == path {
		return exec.LookPath(path)
	}
	if !fileutil.FileExists(path) {
		return "", os.ErrNotExist
	}
	return path, nil
}

// Convert renders doc with env and delivers the PDF to out. A nil env uses
// DefaultEnvironment().
func Convert(ctx context.Context, doc Document, env *Environment, out Output) error {
	e := DefaultEnvironment()
	if env != nil {
		e = *env
	}
	return NewConverter(WithEnvironment(e)).Convert(ctx, doc, out)
}
