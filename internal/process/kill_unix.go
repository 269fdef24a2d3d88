//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Configure places the child in its own process group so KillProcessGroup
// reaches every helper the renderer forks. hideWindow has no effect outside
// windows: there is no console window to suppress.
func Configure(cmd *exec.Cmd, hideWindow bool) {
	_ = hideWindow
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; callers also kill the process handle directly.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
