//go:build windows

package execproc

import (
	"errors"
	"os"
	"os/exec"
)

// configureProcessAttributes is a no-op on Windows, where process groups are
// not used for termination.
func configureProcessAttributes(executable *exec.Cmd) {}

// terminateProcess kills the child process handle.
func terminateProcess(executable *exec.Cmd) error {
	if executable.Process == nil {
		return nil
	}

	killError := executable.Process.Kill()
	if killError == nil || errors.Is(killError, os.ErrProcessDone) {
		return nil
	}
	return killError
}
