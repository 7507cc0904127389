// Package playbook loads and executes YAML-defined sequences of process
// invocations.
//
// A playbook names ordered steps that either launch a program directly or
// hand a command line to a shell interpreter. Consecutive steps sharing a
// group label run concurrently; everything else runs sequentially. Step
// failures carry the invocation error taxonomy so callers can map them to
// exit codes.
package playbook
