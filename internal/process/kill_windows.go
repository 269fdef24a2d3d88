//go:build windows

package process

import (
	"os/exec"
	"strconv"
	"syscall"
)

// Process creation flags from the Win32 API.
const (
	createNewProcessGroup = 0x00000200
	createNoWindow        = 0x08000000
)

// Configure starts the child in a new process group and, unless hideWindow
// is false (debug runs), without a console window.
func Configure(cmd *exec.Cmd, hideWindow bool) {
	attr := &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
	if hideWindow {
		attr.HideWindow = true
		attr.CreationFlags |= createNoWindow
	}
	cmd.SysProcAttr = attr
}

// KillProcessGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
