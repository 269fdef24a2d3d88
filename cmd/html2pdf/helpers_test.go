package main

// Notes:
// - Shared fakes for CLI tests. fakeConverter replaces the library pool via
//   Environment.NewConverter, so no renderer is needed.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf"
)

// fakePDF is what fakeConverter writes for every document.
const fakePDF = "%PDF-1.4 fake"

// fakeConverter records each call and writes fakePDF to the output sinks.
type fakeConverter struct {
	err error

	mu      sync.Mutex
	docs    []html2pdf.Document
	outputs []html2pdf.Output
	env     html2pdf.Environment
	workers int
}

func (f *fakeConverter) Convert(_ context.Context, doc html2pdf.Document, out html2pdf.Output) error {
	f.mu.Lock()
	f.docs = append(f.docs, doc)
	f.outputs = append(f.outputs, out)
	f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if out.FilePath != "" {
		if err := os.WriteFile(out.FilePath, []byte(fakePDF), 0o600); err != nil {
			return err
		}
	}
	if out.Writer != nil {
		if _, err := out.Writer.Write([]byte(fakePDF)); err != nil {
			return err
		}
	}
	return nil
}

// sortedDocs returns recorded documents ordered by HTML, since batch order
// is not deterministic.
func (f *fakeConverter) sortedDocs() []html2pdf.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := append([]html2pdf.Document(nil), f.docs...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].HTML < docs[j].HTML })
	return docs
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *fakeConverter
}

// newTestEnv returns an Environment backed by buffers, a fake converter and
// the given environment variables.
func newTestEnv(vars map[string]string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &fakeConverter{},
	}
	te.Environment = &Environment{
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			var out []string
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
		NewConverter: func(env html2pdf.Environment, _ *log.Logger, workers int) Converter {
			te.conv.mu.Lock()
			te.conv.env, te.conv.workers = env, workers
			te.conv.mu.Unlock()
			return te.conv
		},
	}
	return te
}

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output missing %q:\n%s", want, got)
	}
}
