package flags

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	// WorkingDirectoryFlagName exposes the shared working directory flag name.
	WorkingDirectoryFlagName = "workdir"
	// WorkingDirectoryFlagUsage describes the shared working directory flag purpose.
	WorkingDirectoryFlagUsage = "Working directory for the launched process"
	// EnvironmentFlagName exposes the shared environment assignment flag name.
	EnvironmentFlagName = "env"
	// EnvironmentFlagUsage describes the shared environment assignment flag purpose.
	EnvironmentFlagUsage = "Environment assignment NAME=value (repeatable)"
	// TimeoutFlagName exposes the shared timeout flag name.
	TimeoutFlagName = "timeout"
	// TimeoutFlagUsage describes the shared timeout flag purpose.
	TimeoutFlagUsage = "Maximum duration before the process is terminated"
	// ShellFlagName exposes the shared shell selection flag name.
	ShellFlagName = "shell"
	// CaptureStandardOutputFlagName exposes the standard output capture flag name.
	CaptureStandardOutputFlagName = "capture-stdout"
	// CaptureStandardOutputFlagUsage describes the standard output capture flag purpose.
	CaptureStandardOutputFlagUsage = "Capture standard output instead of forwarding it"
	// CaptureStandardErrorFlagName exposes the standard error capture flag name.
	CaptureStandardErrorFlagName = "capture-stderr"
	// CaptureStandardErrorFlagUsage describes the standard error capture flag purpose.
	CaptureStandardErrorFlagUsage = "Capture standard error instead of forwarding it"
	// MergeStreamsFlagName exposes the stream merge flag name.
	MergeStreamsFlagName = "merge-streams"
	// MergeStreamsFlagUsage describes the stream merge flag purpose.
	MergeStreamsFlagUsage = "Interleave standard error into the standard output capture"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview playbook steps without launching processes"
	// PlaybookFileFlagName exposes the shared playbook file flag name.
	PlaybookFileFlagName = "file"
	// PlaybookFileFlagUsage describes the shared playbook file flag purpose.
	PlaybookFileFlagUsage = "Playbook file to execute"
)

// InvocationFlagDefinition captures configuration for a single invocation context flag.
type InvocationFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// InvocationFlagDefinitions groups invocation context flag definitions.
type InvocationFlagDefinitions struct {
	WorkingDirectory InvocationFlagDefinition
	Environment      InvocationFlagDefinition
	Timeout          InvocationFlagDefinition
}

// InvocationFlagValues stores invocation context flag values.
type InvocationFlagValues struct {
	WorkingDirectory       string
	EnvironmentAssignments []string
	Timeout                time.Duration
}

// BindInvocationFlags attaches invocation context flags to the provided command.
func BindInvocationFlags(command *cobra.Command, defaults InvocationFlagValues, definitions InvocationFlagDefinitions) *InvocationFlagValues {
	values := InvocationFlagValues{
		WorkingDirectory:       defaults.WorkingDirectory,
		EnvironmentAssignments: append([]string{}, defaults.EnvironmentAssignments...),
		Timeout:                defaults.Timeout,
	}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	if definitions.WorkingDirectory.Enabled && len(definitions.WorkingDirectory.Name) > 0 {
		flagSet.StringVar(&values.WorkingDirectory, definitions.WorkingDirectory.Name, defaults.WorkingDirectory, definitions.WorkingDirectory.Usage)
	}
	if definitions.Environment.Enabled && len(definitions.Environment.Name) > 0 {
		flagSet.StringArrayVar(&values.EnvironmentAssignments, definitions.Environment.Name, values.EnvironmentAssignments, definitions.Environment.Usage)
	}
	if definitions.Timeout.Enabled && len(definitions.Timeout.Name) > 0 {
		flagSet.DurationVar(&values.Timeout, definitions.Timeout.Name, defaults.Timeout, definitions.Timeout.Usage)
	}

	return &values
}

// ShellFlagDefinition captures configuration for the shell selection flag.
type ShellFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// ShellFlagValues stores shell selection flag values.
type ShellFlagValues struct {
	Identity string
}

// BindShellFlag attaches the shell selection flag to the provided command.
func BindShellFlag(command *cobra.Command, defaults ShellFlagValues, definition ShellFlagDefinition) *ShellFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.Flags().StringVar(&values.Identity, definition.Name, defaults.Identity, definition.Usage)
	return &values
}

// PlaybookFileFlagDefinition captures configuration for the playbook file flag.
type PlaybookFileFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// PlaybookFileFlagValues stores the playbook file flag value.
type PlaybookFileFlagValues struct {
	Path string
}

// BindPlaybookFileFlag attaches the playbook file flag to the provided command.
func BindPlaybookFileFlag(command *cobra.Command, defaults PlaybookFileFlagValues, definition PlaybookFileFlagDefinition) *PlaybookFileFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.Flags().StringVar(&values.Path, definition.Name, defaults.Path, definition.Usage)
	return &values
}
