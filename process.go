package html2pdf

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-html2pdf/internal/process"
)

// waitDelay bounds how long Wait keeps draining stderr after the renderer
// exits, in case a forked helper still holds the pipe open.
const waitDelay = 2 * time.Second

// processStarter launches the renderer. Tests replace it with a fake.
type processStarter interface {
	start(path string, args []string, debug bool) (renderProcess, error)
}

// renderProcess is a running renderer.
type renderProcess interface {
	// stdin is the renderer's standard input. It must be closed before wait.
	stdin() io.WriteCloser
	// wait blocks until the renderer exits and returns its exit code.
	wait() (exitCode int, err error)
	// kill terminates the renderer and its process group. Safe to call
	// more than once and after exit.
	kill()
	// stderr returns captured diagnostics. Empty in debug mode.
	stderr() string
}

// execStarter runs the renderer as a real child process.
type execStarter struct{}

func (execStarter) start(path string, args []string, debug bool) (renderProcess, error) {
	cmd := exec.Command(path, args...) // #nosec G204 -- renderer path is operator configuration
	process.Configure(cmd, !debug)
	cmd.WaitDelay = waitDelay

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	p := &execProcess{cmd: cmd, in: stdin}
	if debug {
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &p.errBuf
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

type execProcess struct {
	cmd      *exec.Cmd
	in       io.WriteCloser
	errBuf   bytes.Buffer
	killOnce sync.Once
}

func (p *execProcess) stdin() io.WriteCloser { return p.in }

func (p *execProcess) wait() (int, error) {
	err := p.cmd.Wait()
	if p.cmd.ProcessState == nil {
		return -1, err
	}
	return p.cmd.ProcessState.ExitCode(), err
}

func (p *execProcess) kill() {
	p.killOnce.Do(func() {
		process.KillProcessGroup(p.cmd.Process.Pid)
		_ = p.cmd.Process.Kill()
	})
}

// stderr is only read after wait returns, when the copying goroutine is done.
func (p *execProcess) stderr() string {
	return strings.TrimSpace(p.errBuf.String())
}
