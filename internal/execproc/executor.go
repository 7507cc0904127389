package execproc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	invocationStartedMessageConstant     = "process invocation started"
	invocationCompletedMessageConstant   = "process invocation completed"
	invocationTimedOutMessageConstant    = "process invocation timed out"
	invocationFailedMessageConstant      = "process invocation failed"
	logFieldInvocationIdentifierConstant = "invocation_id"
	logFieldInvocationKindConstant       = "invocation_kind"
	logFieldProgramConstant              = "program"
	logFieldArgumentsConstant            = "arguments"
	logFieldCommandLineConstant          = "command_line"
	logFieldShellConstant                = "shell"
	logFieldWorkingDirectoryConstant     = "working_directory"
	logFieldExitCodeConstant             = "exit_code"
	logFieldTimedOutConstant             = "timed_out"
	logFieldDurationMillisecondsConstant = "duration_ms"
	logFieldErrorKindConstant            = "error_kind"
)

// ProcessExecutor coordinates validation, shell resolution, timeout
// enforcement, structured logging, and observer notification around a
// ProcessRunner. Executors hold no per-invocation state and are safe for
// concurrent use.
type ProcessExecutor struct {
	logger    *zap.Logger
	runner    ProcessRunner
	observers []InvocationEventObserver
}

// NewProcessExecutor validates collaborators and assembles an executor.
func NewProcessExecutor(logger *zap.Logger, runner ProcessRunner, observers ...InvocationEventObserver) (*ProcessExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrProcessRunnerNotConfigured
	}

	configuredObservers := make([]InvocationEventObserver, 0, len(observers))
	for _, candidateObserver := range observers {
		if candidateObserver != nil {
			configuredObservers = append(configuredObservers, candidateObserver)
		}
	}
	if len(configuredObservers) == 0 {
		configuredObservers = append(configuredObservers, noopInvocationEventObserver{})
	}

	return &ProcessExecutor{logger: logger, runner: runner, observers: configuredObservers}, nil
}

// ExecuteCommand runs the program directly with its argument vector, without
// shell interpretation. Shell builtins have no standalone executable and fail
// with ExecutableNotFoundError.
func (executor *ProcessExecutor) ExecuteCommand(executionContext context.Context, specification CommandSpec, options InvocationOptions) (ExecutionResult, error) {
	invocation, buildError := buildCommandInvocation(specification, options)
	if buildError != nil {
		return ExecutionResult{}, buildError
	}
	return executor.execute(executionContext, invocation)
}

// ExecuteShell runs the opaque command line through the requested or default
// shell, leaving tokenization entirely to the shell.
func (executor *ProcessExecutor) ExecuteShell(executionContext context.Context, specification ShellCommandSpec, options InvocationOptions) (ExecutionResult, error) {
	invocation, buildError := buildShellInvocation(specification, options)
	if buildError != nil {
		return ExecutionResult{}, buildError
	}
	return executor.execute(executionContext, invocation)
}

func buildCommandInvocation(specification CommandSpec, options InvocationOptions) (Invocation, error) {
	if validationError := specification.Validate(); validationError != nil {
		return Invocation{}, validationError
	}

	return Invocation{
		Identifier: uuid.NewString(),
		Kind:       InvocationKindDirect,
		Program:    specification.Program,
		Arguments:  append([]string{}, specification.Arguments...),
		Options:    options,
	}, nil
}

func buildShellInvocation(specification ShellCommandSpec, options InvocationOptions) (Invocation, error) {
	shellSelection, resolutionError := ResolveShell(specification.Shell)
	if resolutionError != nil {
		return Invocation{}, resolutionError
	}

	shellPath, lookupError := exec.LookPath(shellSelection.Executable)
	if lookupError != nil {
		return Invocation{}, ShellNotFoundError{Shell: shellSelection.Executable, Cause: lookupError}
	}

	shellArguments := append([]string{}, shellSelection.CommandArguments...)
	shellArguments = append(shellArguments, specification.CommandLine)

	return Invocation{
		Identifier:  uuid.NewString(),
		Kind:        InvocationKindShell,
		Program:     shellPath,
		Arguments:   shellArguments,
		CommandLine: specification.CommandLine,
		Shell:       shellSelection.Identity,
		Options:     options,
	}, nil
}

func (executor *ProcessExecutor) execute(executionContext context.Context, invocation Invocation) (ExecutionResult, error) {
	executor.notifyStarted(invocation)
	executor.logger.Info(invocationStartedMessageConstant, executor.startLogFields(invocation)...)

	runContext := executionContext
	if invocation.Options.Timeout > 0 {
		timeoutContext, cancelTimeout := context.WithTimeout(executionContext, invocation.Options.Timeout)
		defer cancelTimeout()
		runContext = timeoutContext
	}

	startTime := time.Now()
	executionResult, runError := executor.runner.Run(runContext, invocation)
	elapsedDuration := time.Since(startTime)

	if runError != nil {
		classifiedError := classifyRunError(invocation, runError)
		executor.notifyExecutionFailed(invocation, classifiedError)
		executor.logger.Error(invocationFailedMessageConstant, executor.failureLogFields(invocation, classifiedError, elapsedDuration)...)
		return ExecutionResult{}, classifiedError
	}

	if invocation.Options.Timeout > 0 && errors.Is(runContext.Err(), context.DeadlineExceeded) {
		executionResult.TimedOut = true
	}

	executor.notifyCompleted(invocation, executionResult)
	executor.logCompletion(invocation, executionResult, elapsedDuration)
	return executionResult, nil
}

func classifyRunError(invocation Invocation, runError error) error {
	if errors.Is(runError, exec.ErrNotFound) || errors.Is(runError, os.ErrNotExist) {
		if invocation.Kind == InvocationKindShell {
			return ShellNotFoundError{Shell: invocation.Program, Cause: runError}
		}
		return ExecutableNotFoundError{Program: invocation.Program, Cause: runError}
	}
	return SpawnFailedError{Program: invocation.Program, Cause: runError}
}

func (executor *ProcessExecutor) logCompletion(invocation Invocation, executionResult ExecutionResult, elapsedDuration time.Duration) {
	completionFields := executor.completionLogFields(invocation, executionResult, elapsedDuration)
	switch {
	case executionResult.TimedOut:
		executor.logger.Warn(invocationTimedOutMessageConstant, completionFields...)
	case executionResult.ExitCode == 0:
		executor.logger.Info(invocationCompletedMessageConstant, completionFields...)
	default:
		executor.logger.Warn(invocationCompletedMessageConstant, completionFields...)
	}
}

func (executor *ProcessExecutor) startLogFields(invocation Invocation) []zap.Field {
	startFields := []zap.Field{
		zap.String(logFieldInvocationIdentifierConstant, invocation.Identifier),
		zap.String(logFieldInvocationKindConstant, string(invocation.Kind)),
		zap.String(logFieldProgramConstant, invocation.Program),
		zap.Strings(logFieldArgumentsConstant, invocation.Arguments),
	}
	if invocation.Kind == InvocationKindShell {
		startFields = append(startFields,
			zap.String(logFieldShellConstant, string(invocation.Shell)),
			zap.String(logFieldCommandLineConstant, invocation.CommandLine),
		)
	}
	if len(invocation.Options.WorkingDirectory) > 0 {
		startFields = append(startFields, zap.String(logFieldWorkingDirectoryConstant, invocation.Options.WorkingDirectory))
	}
	return startFields
}

func (executor *ProcessExecutor) completionLogFields(invocation Invocation, executionResult ExecutionResult, elapsedDuration time.Duration) []zap.Field {
	return []zap.Field{
		zap.String(logFieldInvocationIdentifierConstant, invocation.Identifier),
		zap.String(logFieldProgramConstant, invocation.Program),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		zap.Bool(logFieldTimedOutConstant, executionResult.TimedOut),
		zap.Int64(logFieldDurationMillisecondsConstant, elapsedDuration.Milliseconds()),
	}
}

func (executor *ProcessExecutor) failureLogFields(invocation Invocation, classifiedError error, elapsedDuration time.Duration) []zap.Field {
	failureFields := []zap.Field{
		zap.String(logFieldInvocationIdentifierConstant, invocation.Identifier),
		zap.String(logFieldProgramConstant, invocation.Program),
		zap.Int64(logFieldDurationMillisecondsConstant, elapsedDuration.Milliseconds()),
		zap.Error(classifiedError),
	}
	if errorKind, kindKnown := ClassifyInvocationError(classifiedError); kindKnown {
		failureFields = append(failureFields, zap.String(logFieldErrorKindConstant, string(errorKind)))
	}
	return failureFields
}

func (executor *ProcessExecutor) notifyStarted(invocation Invocation) {
	for _, configuredObserver := range executor.observers {
		configuredObserver.InvocationStarted(invocation)
	}
}

func (executor *ProcessExecutor) notifyCompleted(invocation Invocation, executionResult ExecutionResult) {
	for _, configuredObserver := range executor.observers {
		configuredObserver.InvocationCompleted(invocation, executionResult)
	}
}

func (executor *ProcessExecutor) notifyExecutionFailed(invocation Invocation, failure error) {
	for _, configuredObserver := range executor.observers {
		configuredObserver.InvocationExecutionFailed(invocation, failure)
	}
}
