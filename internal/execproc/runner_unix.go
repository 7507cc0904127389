//go:build unix

package execproc

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// configureProcessAttributes places the child in its own process group so the
// whole group can be signalled on cancellation.
func configureProcessAttributes(executable *exec.Cmd) {
	executable.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateProcess kills the child's process group, covering grandchildren
// spawned by shell-mediated invocations. Signalling the direct child remains
// the fallback when the group signal fails.
func terminateProcess(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}

	groupKillError := unix.Kill(-executable.Process.Pid, unix.SIGKILL)
	if groupKillError == nil || errors.Is(groupKillError, unix.ESRCH) {
		return nil
	}

	fallbackKillError := executable.Process.Kill()
	if fallbackKillError == nil || errors.Is(fallbackKillError, os.ErrProcessDone) {
		return nil
	}
	return fallbackKillError
}
