package html2pdf

// Notes:
// - Most tests drive the converter through fakeStarter, which records the
//   order of start/write/close/wait/kill and plays the renderer's part.
// - TestConvert_StubRenderer runs real shell scripts in place of wkhtmltopdf.
//   Those tests are unix-only and not parallel: writing an executable while
//   another test forks can fail with ETXTBSY.
// - execProcess.kill on windows (taskkill) is not exercised here.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"
)

const sampleHTML = "<html><body><h1>Facture n° 42</h1></body></html>"

// ---------------------------------------------------------------------------
// TestConvert - Input delivery
// ---------------------------------------------------------------------------

func TestConvert_WritesAndClosesStdinBeforeWait(t *testing.T) {
	t.Parallel()

	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, t.TempDir())

	if err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"start", "write", "close", "wait"}
	if got := s.recorded(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestConvert_URLSourceClosesStdinWithoutWriting(t *testing.T) {
	t.Parallel()

	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, t.TempDir())

	doc := Document{Source: "https://example.com/invoice/42"}
	if err := conv.Convert(context.Background(), doc, Output{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"start", "close", "wait"}
	if got := s.recorded(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
	args := s.calls()[0]
	if args[len(args)-2] != doc.Source {
		t.Errorf("source arg = %q, want %q", args[len(args)-2], doc.Source)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Preconditions
// ---------------------------------------------------------------------------

func TestConvert_ConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      Document
		env      func(*Environment)
		lookPath func(string) (string, error)
		startErr error
		wantErr  error
	}{
		{
			name:    "stdin source without HTML",
			doc:     Document{Source: StdinSource},
			wantErr: ErrMissingHTML,
		},
		{
			name:    "empty source",
			doc:     Document{HTML: sampleHTML},
			wantErr: ErrEmptySource,
		},
		{
			name:    "negative timeout",
			doc:     NewHTMLDocument(sampleHTML),
			env:     func(e *Environment) { e.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:     "executable missing on disk",
			doc:      NewHTMLDocument(sampleHTML),
			lookPath: func(string) (string, error) { return "", os.ErrNotExist },
			wantErr:  ErrRendererNotInstalled,
		},
		{
			name:     "executable vanished before start",
			doc:      NewHTMLDocument(sampleHTML),
			startErr: &os.PathError{Op: "fork/exec", Path: "/opt/wkhtmltopdf", Err: os.ErrNotExist},
			wantErr:  ErrRendererNotInstalled,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &fakeStarter{produce: true, startErr: tt.startErr}
			var opts []func(*Environment)
			if tt.env != nil {
				opts = append(opts, tt.env)
			}
			conv := newFakeConverter(s, t.TempDir(), opts...)
			if tt.lookPath != nil {
				conv.lookPath = tt.lookPath
			}

			err := conv.Convert(context.Background(), tt.doc, Output{})

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %T %v, want *ConfigError", err, err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(s.calls()) != 0 {
				t.Error("renderer should not have been started")
			}
		})
	}
}

func TestConvert_RealLookPathRejectsMissingExecutable(t *testing.T) {
	t.Parallel()

	env := Environment{ExecutablePath: filepath.Join(t.TempDir(), "wkhtmltopdf"), TempDir: t.TempDir()}
	err := NewConverter(WithEnvironment(env)).Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{})

	if !errors.Is(err, ErrRendererNotInstalled) {
		t.Errorf("error = %v, want ErrRendererNotInstalled", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Timeout and cancellation
// ---------------------------------------------------------------------------

func TestConvert_TimeoutKillsRendererAndRemovesTempFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := &fakeStarter{hang: true, touchOnStart: true}
	conv := newFakeConverter(s, dir, func(e *Environment) { e.Timeout = 50 * time.Millisecond })

	err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{})

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %T %v, want *TimeoutError", err, err)
	}
	if timeoutErr.Canceled() {
		t.Error("Canceled() = true for a deadline")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded: %v", err)
	}
	if timeoutErr.Timeout != 50*time.Millisecond {
		t.Errorf("Timeout = %v, want 50ms", timeoutErr.Timeout)
	}
	if got := s.recorded(); got[len(got)-1] != "kill" {
		t.Errorf("events = %v, want trailing kill", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("temp dir should be empty after timeout, has %d entries", len(entries))
	}
}

func TestConvert_CancelReportsCanceledTimeout(t *testing.T) {
	t.Parallel()

	s := &fakeStarter{hang: true}
	conv := newFakeConverter(s, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := conv.Convert(ctx, NewHTMLDocument(sampleHTML), Output{})

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %T %v, want *TimeoutError", err, err)
	}
	if !timeoutErr.Canceled() || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want canceled", err)
	}
}

func TestConvert_AlreadyCanceledContextStartsNothing(t *testing.T) {
	t.Parallel()

	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := conv.Convert(ctx, NewHTMLDocument(sampleHTML), Output{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(s.calls()) != 0 {
		t.Error("renderer should not have been started")
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Exit classification
// ---------------------------------------------------------------------------

func TestConvert_ExitClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		exitCode     int
		stderr       string
		produce      bool
		debug        bool
		wantErr      error
		wantContains string
	}{
		{
			name:         "exit zero without output",
			exitCode:     0,
			wantErr:      ErrOutputNotFound,
			wantContains: "not found",
		},
		{
			name:         "non-zero exit carries stderr",
			exitCode:     2,
			stderr:       "boom",
			wantErr:      ErrRendererFailed,
			wantContains: "boom",
		},
		{
			name:         "non-zero exit in debug mode",
			exitCode:     2,
			stderr:       "ignored",
			debug:        true,
			wantErr:      ErrRendererFailed,
			wantContains: "exit code 2",
		},
		{
			name:     "non-zero exit with output is success",
			exitCode: 1,
			stderr:   "warning: font missing",
			produce:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &fakeStarter{exitCode: tt.exitCode, stderrText: tt.stderr, produce: tt.produce}
			conv := newFakeConverter(s, t.TempDir(), func(e *Environment) { e.Debug = tt.debug })

			err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{})

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var procErr *ProcessError
			if !errors.As(err, &procErr) {
				t.Fatalf("error = %T %v, want *ProcessError", err, err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q should contain %q", err, tt.wantContains)
			}
			if procErr.ExitCode != tt.exitCode {
				t.Errorf("ExitCode = %d, want %d", procErr.ExitCode, tt.exitCode)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Delivery and cleanup
// ---------------------------------------------------------------------------

func TestConvert_StreamsPDFToWriter(t *testing.T) {
	t.Parallel()

	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, t.TempDir())

	var buf bytes.Buffer
	if err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{Writer: &buf}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), sampleHTML+"\n"; got != want {
		t.Errorf("streamed = %q, want %q", got, want)
	}
}

func TestConvert_CallbackReceivesDocumentAndBytes(t *testing.T) {
	t.Parallel()

	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, t.TempDir())

	doc := NewHTMLDocument(sampleHTML)
	doc.State = 42

	var gotState any
	var gotPDF []byte
	out := Output{Callback: func(d Document, pdf []byte) error {
		gotState, gotPDF = d.State, pdf
		return nil
	}}

	if err := conv.Convert(context.Background(), doc, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotState != 42 {
		t.Errorf("State = %v, want 42", gotState)
	}
	if string(gotPDF) != sampleHTML+"\n" {
		t.Errorf("pdf = %q", gotPDF)
	}
}

func TestConvert_DeliveryErrors(t *testing.T) {
	t.Parallel()

	sinkErr := errors.New("disk full")
	tests := []struct {
		name string
		out  Output
	}{
		{"writer", Output{Writer: failingWriter{err: sinkErr}}},
		{"callback", Output{Callback: func(Document, []byte) error { return sinkErr }}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			conv := newFakeConverter(&fakeStarter{produce: true}, dir)

			err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), tt.out)
			if !errors.Is(err, ErrDelivery) || !errors.Is(err, sinkErr) {
				t.Errorf("error = %v, want ErrDelivery wrapping %v", err, sinkErr)
			}
			if entries, _ := os.ReadDir(dir); len(entries) != 0 {
				t.Error("generated output should be removed after a delivery failure")
			}
		})
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestConvert_GeneratedPathRemovedOnSuccess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, dir)

	if err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	args := s.calls()[0]
	generated := args[len(args)-1]
	if filepath.Dir(generated) != dir || filepath.Ext(generated) != ".pdf" {
		t.Errorf("generated path = %q, want <dir>/<uuid>.pdf", generated)
	}
	if _, err := os.Stat(generated); !os.IsNotExist(err) {
		t.Errorf("generated file should be removed, stat err = %v", err)
	}
}

func TestConvert_ExplicitPathSurvives(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "invoice.pdf")
	conv := newFakeConverter(&fakeStarter{produce: true}, t.TempDir())

	var buf bytes.Buffer
	if err := conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{FilePath: dest, Writer: &buf}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("explicit output should survive: %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Error("file and stream contents differ")
	}
}

func TestConvert_ConcurrentCallsUseDistinctTempNames(t *testing.T) {
	t.Parallel()

	const n = 100
	s := &fakeStarter{produce: true}
	conv := newFakeConverter(s, t.TempDir())

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- conv.Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	seen := make(map[string]bool, n)
	for _, args := range s.calls() {
		seen[args[len(args)-1]] = true
	}
	if len(seen) != n {
		t.Errorf("got %d distinct output paths, want %d", len(seen), n)
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Package-level function
// ---------------------------------------------------------------------------

func TestConvertFunc_UsesGivenEnvironment(t *testing.T) {
	t.Parallel()

	env := Environment{ExecutablePath: filepath.Join(t.TempDir(), "absent"), Timeout: time.Second}
	err := Convert(context.Background(), NewHTMLDocument(sampleHTML), &env, Output{})
	if !errors.Is(err, ErrRendererNotInstalled) {
		t.Errorf("error = %v, want ErrRendererNotInstalled", err)
	}
}

func TestConvertFunc_ValidatesBeforeLookup(t *testing.T) {
	t.Parallel()

	err := Convert(context.Background(), Document{Source: StdinSource}, nil, Output{})
	if !errors.Is(err, ErrMissingHTML) {
		t.Errorf("error = %v, want ErrMissingHTML", err)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_StubRenderer - Real processes (unix only, not parallel)
// ---------------------------------------------------------------------------

func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wkhtmltopdf")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { // #nosec G306 -- test stub must be executable
		t.Fatal(err)
	}
	return path
}

func TestConvert_StubRenderer(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a unix shell")
	}

	tests := []struct {
		name         string
		script       string
		timeout      time.Duration
		wantErr      error
		wantContains string
		wantStream   string
	}{
		{
			name:       "copies stdin to output",
			script:     `for last; do :; done; cat > "$last"`,
			wantStream: sampleHTML + "\n",
		},
		{
			name:         "exit zero without output",
			script:       `cat >/dev/null; exit 0`,
			wantErr:      ErrOutputNotFound,
			wantContains: "not found",
		},
		{
			name:         "failure with stderr",
			script:       `cat >/dev/null; echo boom >&2; exit 2`,
			wantErr:      ErrRendererFailed,
			wantContains: "boom",
		},
		{
			name:    "hangs past timeout",
			script:  `sleep 10`,
			timeout: 200 * time.Millisecond,
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			env := Environment{
				ExecutablePath: writeStub(t, tt.script),
				TempDir:        dir,
				Timeout:        tt.timeout,
			}
			if env.Timeout == 0 {
				env.Timeout = 10 * time.Second
			}

			var buf bytes.Buffer
			start := time.Now()
			err := NewConverter(WithEnvironment(env)).Convert(context.Background(), NewHTMLDocument(sampleHTML), Output{Writer: &buf})

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if buf.String() != tt.wantStream {
					t.Errorf("streamed = %q, want %q", buf.String(), tt.wantStream)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantContains != "" && !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q should contain %q", err, tt.wantContains)
			}
			if tt.timeout > 0 && time.Since(start) > 5*time.Second {
				t.Errorf("timeout took %v, renderer was not killed promptly", time.Since(start))
			}
			if entries, _ := os.ReadDir(dir); len(entries) != 0 {
				t.Errorf("temp dir should be empty, has %d entries", len(entries))
			}
		})
	}
}
