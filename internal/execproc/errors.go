package execproc

import (
	"errors"
	"fmt"
)

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	processRunnerNotConfiguredMessageConstant   = "process runner not configured"
	programNameMissingMessageConstant           = "program name missing"
	executableNotFoundTemplateConstant          = "executable %s not found"
	executableNotFoundWithCauseTemplateConstant = "executable %s not found: %v"
	shellNotFoundTemplateConstant               = "shell %s unavailable"
	shellNotFoundWithCauseTemplateConstant      = "shell %s unavailable: %v"
	spawnFailedTemplateConstant                 = "unable to start %s"
	spawnFailedWithCauseTemplateConstant        = "unable to start %s: %v"
	executableNotFoundKindNameConstant          = "executable_not_found"
	shellNotFoundKindNameConstant               = "shell_not_found"
	spawnFailedKindNameConstant                 = "spawn_failed"
	timeoutKindNameConstant                     = "timeout"
	unknownKindNameConstant                     = ""
)

// Sentinel errors reported during executor construction and input validation.
var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrProcessRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrProcessRunnerNotConfigured = errors.New(processRunnerNotConfiguredMessageConstant)
	// ErrProgramNameMissing indicates a command specification without a program name.
	ErrProgramNameMissing = errors.New(programNameMissingMessageConstant)
)

// InvocationErrorKind classifies invocation failures for logging and exit-code mapping.
type InvocationErrorKind string

// Invocation failure classifications. The timeout kind classifies timed-out
// results, which surface in-band through ExecutionResult rather than as errors.
const (
	InvocationErrorKindExecutableNotFound InvocationErrorKind = InvocationErrorKind(executableNotFoundKindNameConstant)
	InvocationErrorKindShellNotFound      InvocationErrorKind = InvocationErrorKind(shellNotFoundKindNameConstant)
	InvocationErrorKindSpawnFailed        InvocationErrorKind = InvocationErrorKind(spawnFailedKindNameConstant)
	InvocationErrorKindTimeout            InvocationErrorKind = InvocationErrorKind(timeoutKindNameConstant)
)

// ExecutableNotFoundError reports a program name that failed platform executable search.
type ExecutableNotFoundError struct {
	Program string
	Cause   error
}

// Error describes the failed lookup.
func (lookupError ExecutableNotFoundError) Error() string {
	if lookupError.Cause == nil {
		return fmt.Sprintf(executableNotFoundTemplateConstant, lookupError.Program)
	}
	return fmt.Sprintf(executableNotFoundWithCauseTemplateConstant, lookupError.Program, lookupError.Cause)
}

// Unwrap exposes the underlying lookup error.
func (lookupError ExecutableNotFoundError) Unwrap() error {
	return lookupError.Cause
}

// Kind identifies the failure classification.
func (lookupError ExecutableNotFoundError) Kind() InvocationErrorKind {
	return InvocationErrorKindExecutableNotFound
}

// ShellNotFoundError reports a requested or default shell that is unavailable.
type ShellNotFoundError struct {
	Shell string
	Cause error
}

// Error describes the unavailable shell.
func (shellError ShellNotFoundError) Error() string {
	if shellError.Cause == nil {
		return fmt.Sprintf(shellNotFoundTemplateConstant, shellError.Shell)
	}
	return fmt.Sprintf(shellNotFoundWithCauseTemplateConstant, shellError.Shell, shellError.Cause)
}

// Unwrap exposes the underlying lookup error.
func (shellError ShellNotFoundError) Unwrap() error {
	return shellError.Cause
}

// Kind identifies the failure classification.
func (shellError ShellNotFoundError) Kind() InvocationErrorKind {
	return InvocationErrorKindShellNotFound
}

// SpawnFailedError reports an operating-system level failure to start a located program.
type SpawnFailedError struct {
	Program string
	Cause   error
}

// Error describes the spawn failure.
func (spawnError SpawnFailedError) Error() string {
	if spawnError.Cause == nil {
		return fmt.Sprintf(spawnFailedTemplateConstant, spawnError.Program)
	}
	return fmt.Sprintf(spawnFailedWithCauseTemplateConstant, spawnError.Program, spawnError.Cause)
}

// Unwrap exposes the underlying spawn error.
func (spawnError SpawnFailedError) Unwrap() error {
	return spawnError.Cause
}

// Kind identifies the failure classification.
func (spawnError SpawnFailedError) Kind() InvocationErrorKind {
	return InvocationErrorKindSpawnFailed
}

// ClassifyInvocationError reports the failure classification when the error carries one.
func ClassifyInvocationError(candidateError error) (InvocationErrorKind, bool) {
	var kindCarrier interface{ Kind() InvocationErrorKind }
	if errors.As(candidateError, &kindCarrier) {
		return kindCarrier.Kind(), true
	}
	return InvocationErrorKind(unknownKindNameConstant), false
}
