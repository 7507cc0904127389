package execproc

import "time"

// InvocationOptions configures stream handling, timeout, and process
// environment for a single invocation.
//
// MergeStreams captures standard error into the standard output buffer;
// interleaving of the merged streams is best-effort, not guaranteed. A
// disabled capture forwards the corresponding stream to the parent process. A
// zero Timeout disables timeout enforcement. EnvironmentVariables merge over
// the inherited environment with override semantics; a nil map inherits the
// parent environment unchanged.
type InvocationOptions struct {
	CaptureStandardOutput bool
	CaptureStandardError  bool
	MergeStreams          bool
	Timeout               time.Duration
	WorkingDirectory      string
	EnvironmentVariables  map[string]string
	StandardInput         []byte
}

// DefaultInvocationOptions returns options capturing both streams separately
// with no timeout and an inherited environment.
func DefaultInvocationOptions() InvocationOptions {
	return InvocationOptions{
		CaptureStandardOutput: true,
		CaptureStandardError:  true,
	}
}
