// Package execproc provides structured helpers for invoking external
// processes.
//
// It wraps os/exec with logging, timeouts, and output capture via
// ProcessExecutor, exposes OSProcessRunner for default process execution, and
// distinguishes direct program invocation from shell-mediated command lines so
// that callers never depend on implicit tokenization.
package execproc
