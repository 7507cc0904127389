package execproc

import (
	"context"
)

// ProcessHandle tracks one asynchronous invocation. The underlying process is
// already running when the handle is returned; Wait collects its result and
// Cancel terminates it.
type ProcessHandle struct {
	identifier        string
	cancelInvocation  context.CancelFunc
	completionChannel chan struct{}
	executionResult   ExecutionResult
	executionError    error
}

// StartCommand launches the program asynchronously and returns a handle for
// the running invocation. Validation failures surface immediately while spawn
// failures surface from Wait.
func (executor *ProcessExecutor) StartCommand(executionContext context.Context, specification CommandSpec, options InvocationOptions) (*ProcessHandle, error) {
	invocation, buildError := buildCommandInvocation(specification, options)
	if buildError != nil {
		return nil, buildError
	}
	return executor.start(executionContext, invocation), nil
}

// StartShell launches the shell command asynchronously and returns a handle
// for the running invocation. Shell resolution failures surface immediately
// while spawn failures surface from Wait.
func (executor *ProcessExecutor) StartShell(executionContext context.Context, specification ShellCommandSpec, options InvocationOptions) (*ProcessHandle, error) {
	invocation, buildError := buildShellInvocation(specification, options)
	if buildError != nil {
		return nil, buildError
	}
	return executor.start(executionContext, invocation), nil
}

func (executor *ProcessExecutor) start(executionContext context.Context, invocation Invocation) *ProcessHandle {
	invocationContext, cancelInvocation := context.WithCancel(executionContext)
	handle := &ProcessHandle{
		identifier:        invocation.Identifier,
		cancelInvocation:  cancelInvocation,
		completionChannel: make(chan struct{}),
	}

	go func() {
		defer cancelInvocation()
		handle.executionResult, handle.executionError = executor.execute(invocationContext, invocation)
		close(handle.completionChannel)
	}()

	return handle
}

// Identifier reports the correlation identifier assigned to the invocation.
func (handle *ProcessHandle) Identifier() string {
	return handle.identifier
}

// Wait blocks until the invocation completes or waitContext is done. When
// waitContext expires the invocation keeps running and Wait may be called
// again.
func (handle *ProcessHandle) Wait(waitContext context.Context) (ExecutionResult, error) {
	select {
	case <-handle.completionChannel:
		return handle.executionResult, handle.executionError
	case <-waitContext.Done():
		return ExecutionResult{}, waitContext.Err()
	}
}

// Cancel terminates the running process and blocks until its resources are
// released. Cancelling a finished invocation has no effect.
func (handle *ProcessHandle) Cancel() {
	handle.cancelInvocation()
	<-handle.completionChannel
}
