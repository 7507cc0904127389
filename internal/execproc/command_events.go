package execproc

// InvocationEventObserver receives lifecycle notifications for process invocations.
type InvocationEventObserver interface {
	// InvocationStarted notifies observers that an invocation is beginning.
	InvocationStarted(invocation Invocation)
	// InvocationCompleted notifies observers that an invocation finished and supplies the result.
	InvocationCompleted(invocation Invocation, result ExecutionResult)
	// InvocationExecutionFailed reports lookup or spawn failures that produced no result.
	InvocationExecutionFailed(invocation Invocation, failure error)
}

// noopInvocationEventObserver discards all invocation events.
type noopInvocationEventObserver struct{}

// InvocationStarted implements InvocationEventObserver for the no-op observer.
func (noopInvocationEventObserver) InvocationStarted(Invocation) {}

// InvocationCompleted implements InvocationEventObserver for the no-op observer.
func (noopInvocationEventObserver) InvocationCompleted(Invocation, ExecutionResult) {}

// InvocationExecutionFailed implements InvocationEventObserver for the no-op observer.
func (noopInvocationEventObserver) InvocationExecutionFailed(Invocation, error) {}
