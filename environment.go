package html2pdf

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/locate"
)

// DefaultTimeout bounds a single renderer run when the environment sets none.
const DefaultTimeout = 60 * time.Second

// Environment tells the converter which renderer to run and how.
type Environment struct {
	// ExecutablePath is the renderer binary. It is checked at conversion
	// time, not when the environment is built.
	ExecutablePath string
	// TempDir receives auto-generated output files. Empty means os.TempDir().
	TempDir string
	// Timeout bounds each renderer run. Zero means DefaultTimeout.
	Timeout time.Duration
	// Debug lets the renderer write to the terminal's stderr and, on
	// windows, show its console window.
	Debug bool
}

var defaultEnvironment = sync.OnceValue(func() Environment {
	return Environment{
		ExecutablePath: locate.Resolve(runtime.GOOS, os.Getenv, fileutil.FileExists),
		TempDir:        os.TempDir(),
		Timeout:        DefaultTimeout,
	}
})

// DefaultEnvironment returns the environment probed from well-known install
// locations. Probing happens once per process; each call returns a copy.
func DefaultEnvironment() Environment {
	return defaultEnvironment()
}

// Validate rejects settings no conversion could honor.
func (e Environment) Validate() error {
	if e.Timeout < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, e.Timeout)
	}
	return nil
}

func (e Environment) timeout() time.Duration {
	if e.Timeout == 0 {
		return DefaultTimeout
	}
	return e.Timeout
}

func (e Environment) tempDir() string {
	if e.TempDir == "" {
		return os.TempDir()
	}
	return e.TempDir
}
