package execproc

import "strings"

const (
	directInvocationKindNameConstant = "direct"
	shellInvocationKindNameConstant  = "shell"
)

// InvocationKind distinguishes direct program launches from shell-mediated ones.
type InvocationKind string

// Supported invocation kinds.
const (
	InvocationKindDirect InvocationKind = InvocationKind(directInvocationKindNameConstant)
	InvocationKindShell  InvocationKind = InvocationKind(shellInvocationKindNameConstant)
)

// CommandSpec identifies a program and the exact argument vector it receives.
//
// Arguments keep their order and reach the child process as indivisible
// tokens; the library never joins, quotes, or re-splits them.
type CommandSpec struct {
	Program   string
	Arguments []string
}

// Validate confirms the specification names a program.
func (specification CommandSpec) Validate() error {
	if len(strings.TrimSpace(specification.Program)) == 0 {
		return ErrProgramNameMissing
	}
	return nil
}

// ShellCommandSpec carries an opaque command line and an optional shell identity override.
//
// CommandLine is never parsed, validated, or re-tokenized; it reaches the
// selected shell verbatim as the argument to its execute-a-string flag, so
// quoting and line-continuation conventions remain the caller's
// responsibility and differ between shells.
type ShellCommandSpec struct {
	CommandLine string
	Shell       ShellIdentity
}

// Invocation describes one resolved process launch. The same value flows to
// the process runner and to lifecycle observers.
type Invocation struct {
	Identifier  string
	Kind        InvocationKind
	Program     string
	Arguments   []string
	CommandLine string
	Shell       ShellIdentity
	Options     InvocationOptions
}

// ExecutionResult captures the observable outcome of a finished invocation.
//
// Results are created once per invocation and owned by the caller. A non-zero
// ExitCode is not an error; callers decide how to treat it.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
	TimedOut       bool
}
