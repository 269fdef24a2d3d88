package html2pdf

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// fakeStarter stands in for the renderer. It records the order in which the
// converter touches the process and can play the renderer's part by copying
// stdin to the output path (the last argument).
type fakeStarter struct {
	// Behavior.
	exitCode     int
	stderrText   string
	produce      bool          // write stdin to the output path on wait
	touchOnStart bool          // create the output file as soon as the process starts
	hang         bool          // wait blocks until kill
	delay        time.Duration // wait sleeps this long before returning
	startErr     error

	mu     sync.Mutex
	events []string
	args   [][]string

	active    atomic.Int32
	maxActive atomic.Int32
}

func (s *fakeStarter) record(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *fakeStarter) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func (s *fakeStarter) calls() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string(nil), s.args...)
}

func (s *fakeStarter) start(_ string, args []string, _ bool) (renderProcess, error) {
	if s.startErr != nil {
		return nil, s.startErr
	}
	s.mu.Lock()
	s.args = append(s.args, args)
	s.mu.Unlock()
	s.record("start")

	outputPath := args[len(args)-1]
	if s.touchOnStart {
		if err := os.WriteFile(outputPath, []byte("%PDF-partial"), 0o600); err != nil {
			return nil, err
		}
	}

	n := s.active.Add(1)
	for {
		m := s.maxActive.Load()
		if n <= m || s.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	return &fakeProcess{
		s:          s,
		outputPath: outputPath,
		in:         &fakeStdin{s: s},
		killed:     make(chan struct{}),
	}, nil
}

type fakeProcess struct {
	s          *fakeStarter
	outputPath string
	in         *fakeStdin
	killOnce   sync.Once
	killed     chan struct{}
}

func (p *fakeProcess) stdin() io.WriteCloser { return p.in }

func (p *fakeProcess) wait() (int, error) {
	p.s.record("wait")
	defer p.s.active.Add(-1)

	if p.s.hang {
		<-p.killed
		return -1, nil
	}
	if p.s.delay > 0 {
		time.Sleep(p.s.delay)
	}
	if p.s.produce {
		if err := os.WriteFile(p.outputPath, p.in.buf.Bytes(), 0o600); err != nil {
			return 1, err
		}
	}
	return p.s.exitCode, nil
}

func (p *fakeProcess) kill() {
	p.killOnce.Do(func() {
		p.s.record("kill")
		close(p.killed)
	})
}

func (p *fakeProcess) stderr() string { return p.s.stderrText }

type fakeStdin struct {
	s   *fakeStarter
	buf bytes.Buffer
}

func (w *fakeStdin) Write(b []byte) (int, error) {
	w.s.record("write")
	return w.buf.Write(b)
}

func (w *fakeStdin) Close() error {
	w.s.record("close")
	return nil
}

// newFakeConverter returns a converter wired to s, with env rooted in dir.
func newFakeConverter(s *fakeStarter, dir string, opts ...func(*Environment)) *Converter {
	env := Environment{
		ExecutablePath: "/opt/wkhtmltopdf/bin/wkhtmltopdf",
		TempDir:        dir,
		Timeout:        5 * time.Second,
	}
	for _, o := range opts {
		o(&env)
	}
	c := NewConverter(WithEnvironment(env))
	c.starter = s
	c.lookPath = func(p string) (string, error) { return p, nil }
	return c
}
