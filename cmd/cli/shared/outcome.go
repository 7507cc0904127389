package shared

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/temirov/invoke/internal/execproc"
	"github.com/temirov/invoke/internal/playbook"
)

const (
	exitStatusErrorTemplateConstant        = "process exited with status %d"
	invocationTimeoutErrorTemplateConstant = "process timed out after %s"
)

// Conventional shell exit codes reported for invocation failures.
const (
	ExitCodeSuccess       = 0
	ExitCodeFailure       = 1
	ExitCodeTimeout       = 124
	ExitCodeSpawnFailure  = 126
	ExitCodeLookupFailure = 127
)

// ExitStatusError carries a child process's non-zero exit status to the
// process exit-code mapping.
type ExitStatusError struct {
	ExitCode int
}

// Error describes the exit status.
func (statusError ExitStatusError) Error() string {
	return fmt.Sprintf(exitStatusErrorTemplateConstant, statusError.ExitCode)
}

// InvocationTimeoutError reports an invocation terminated by its timeout budget.
type InvocationTimeoutError struct {
	Timeout time.Duration
}

// Error describes the exceeded budget.
func (timeoutError InvocationTimeoutError) Error() string {
	return fmt.Sprintf(invocationTimeoutErrorTemplateConstant, timeoutError.Timeout)
}

// Kind identifies the failure classification.
func (timeoutError InvocationTimeoutError) Kind() execproc.InvocationErrorKind {
	return execproc.InvocationErrorKindTimeout
}

// ExecutionOutcomeError converts a finished invocation into the error consumed
// by the exit-code mapping: nil for a zero exit, a timeout error for timed-out
// results, and an exit status error otherwise.
func ExecutionOutcomeError(options execproc.InvocationOptions, executionResult execproc.ExecutionResult) error {
	if executionResult.TimedOut {
		return InvocationTimeoutError{Timeout: options.Timeout}
	}
	if executionResult.ExitCode != 0 {
		return ExitStatusError{ExitCode: executionResult.ExitCode}
	}
	return nil
}

// WriteCapturedOutput replays captured child output on the command streams
// once the invocation completes. Forwarded streams already received their
// output while the child ran.
func WriteCapturedOutput(command *cobra.Command, options execproc.InvocationOptions, executionResult execproc.ExecutionResult) {
	if command == nil {
		return
	}
	if (options.CaptureStandardOutput || options.MergeStreams) && len(executionResult.StandardOutput) > 0 {
		fmt.Fprint(command.OutOrStdout(), executionResult.StandardOutput)
	}
	if options.CaptureStandardError && !options.MergeStreams && len(executionResult.StandardError) > 0 {
		fmt.Fprint(command.ErrOrStderr(), executionResult.StandardError)
	}
}

// ExitCodeForError maps command failures to the exit code reported by the
// invoke process. Child exit statuses propagate verbatim, lookup failures
// report 127, spawn failures 126, and timeouts 124.
func ExitCodeForError(executionError error) int {
	if executionError == nil {
		return ExitCodeSuccess
	}

	var exitStatusError ExitStatusError
	if errors.As(executionError, &exitStatusError) {
		return exitStatusError.ExitCode
	}

	var stepFailure playbook.StepFailure
	if errors.As(executionError, &stepFailure) {
		if stepFailure.ExitCode != 0 {
			return stepFailure.ExitCode
		}
		if mappedExitCode, kindMapped := exitCodeForInvocationErrorKind(stepFailure.Kind); kindMapped {
			return mappedExitCode
		}
	}

	if errorKind, classified := execproc.ClassifyInvocationError(executionError); classified {
		if mappedExitCode, kindMapped := exitCodeForInvocationErrorKind(errorKind); kindMapped {
			return mappedExitCode
		}
	}

	return ExitCodeFailure
}

func exitCodeForInvocationErrorKind(errorKind execproc.InvocationErrorKind) (int, bool) {
	switch errorKind {
	case execproc.InvocationErrorKindExecutableNotFound, execproc.InvocationErrorKindShellNotFound:
		return ExitCodeLookupFailure, true
	case execproc.InvocationErrorKindSpawnFailed:
		return ExitCodeSpawnFailure, true
	case execproc.InvocationErrorKindTimeout:
		return ExitCodeTimeout, true
	default:
		return 0, false
	}
}
