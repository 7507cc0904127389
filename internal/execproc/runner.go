package execproc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	descriptorDrainWaitDelayConstant       = 5 * time.Second
)

// ProcessRunner represents the ability to launch a resolved invocation and
// report its outcome.
type ProcessRunner interface {
	Run(executionContext context.Context, invocation Invocation) (ExecutionResult, error)
}

// OSProcessRunner launches invocations using operating system facilities.
//
// ForwardedStandardOutput and ForwardedStandardError receive child output for
// streams whose capture is disabled; nil selects the runner process streams.
type OSProcessRunner struct {
	ForwardedStandardOutput io.Writer
	ForwardedStandardError  io.Writer
}

// NewOSProcessRunner constructs a runner backed by os/exec.
func NewOSProcessRunner() *OSProcessRunner {
	return &OSProcessRunner{}
}

// Run executes the invocation and reports the captured outcome.
//
// The child starts in its own process group on POSIX platforms so that
// cancellation terminates shell-spawned grandchildren as well. A started
// process that exits never surfaces an error; its exit code lands in the
// result, with -1 reported for signal deaths.
func (runner *OSProcessRunner) Run(executionContext context.Context, invocation Invocation) (ExecutionResult, error) {
	commandArguments := append([]string{}, invocation.Arguments...)
	executable := exec.CommandContext(executionContext, invocation.Program, commandArguments...)

	if len(invocation.Options.WorkingDirectory) > 0 {
		executable.Dir = invocation.Options.WorkingDirectory
	}

	if len(invocation.Options.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range invocation.Options.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout, executable.Stderr = runner.streamDestinations(invocation.Options, &standardOutputBuffer, &standardErrorBuffer)

	if len(invocation.Options.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(invocation.Options.StandardInput)
	}

	configureProcessAttributes(executable)
	executable.Cancel = func() error {
		return terminateProcess(executable)
	}
	executable.WaitDelay = descriptorDrainWaitDelayConstant

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		if errors.Is(runError, exec.ErrWaitDelay) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       executable.ProcessState.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

// streamDestinations wires each child stream to its capture buffer or forward
// target. Merged capture assigns one shared buffer to both streams, which
// os/exec serializes; interleaving remains best-effort.
func (runner *OSProcessRunner) streamDestinations(options InvocationOptions, standardOutputBuffer *bytes.Buffer, standardErrorBuffer *bytes.Buffer) (io.Writer, io.Writer) {
	if options.MergeStreams {
		return standardOutputBuffer, standardOutputBuffer
	}

	standardOutputDestination := runner.forwardedStandardOutput()
	if options.CaptureStandardOutput {
		standardOutputDestination = standardOutputBuffer
	}

	standardErrorDestination := runner.forwardedStandardError()
	if options.CaptureStandardError {
		standardErrorDestination = standardErrorBuffer
	}

	return standardOutputDestination, standardErrorDestination
}

func (runner *OSProcessRunner) forwardedStandardOutput() io.Writer {
	if runner.ForwardedStandardOutput != nil {
		return runner.ForwardedStandardOutput
	}
	return os.Stdout
}

func (runner *OSProcessRunner) forwardedStandardError() io.Writer {
	if runner.ForwardedStandardError != nil {
		return runner.ForwardedStandardError
	}
	return os.Stderr
}
