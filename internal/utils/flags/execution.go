// Package flags provides helpers for binding standardized invocation flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CaptureDefaults describes default output capture flag values shared across commands.
type CaptureDefaults struct {
	CaptureStandardOutput bool
	CaptureStandardError  bool
	MergeStreams          bool
}

// CaptureFlagDefinition captures a single capture flag's configuration.
type CaptureFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// CaptureFlagDefinitions groups capture flag definitions.
type CaptureFlagDefinitions struct {
	CaptureStandardOutput CaptureFlagDefinition
	CaptureStandardError  CaptureFlagDefinition
	MergeStreams          CaptureFlagDefinition
}

// CaptureFlagValues stores capture flag values bound to a command.
type CaptureFlagValues struct {
	CaptureStandardOutput bool
	CaptureStandardError  bool
	MergeStreams          bool
}

// BindCaptureFlags attaches output capture toggle flags to the provided command.
func BindCaptureFlags(command *cobra.Command, defaults CaptureDefaults, definitions CaptureFlagDefinitions) *CaptureFlagValues {
	values := CaptureFlagValues{
		CaptureStandardOutput: defaults.CaptureStandardOutput,
		CaptureStandardError:  defaults.CaptureStandardError,
		MergeStreams:          defaults.MergeStreams,
	}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	bindCaptureToggle(flagSet, &values.CaptureStandardOutput, definitions.CaptureStandardOutput, defaults.CaptureStandardOutput)
	bindCaptureToggle(flagSet, &values.CaptureStandardError, definitions.CaptureStandardError, defaults.CaptureStandardError)
	bindCaptureToggle(flagSet, &values.MergeStreams, definitions.MergeStreams, defaults.MergeStreams)

	return &values
}

func bindCaptureToggle(flagSet *pflag.FlagSet, target *bool, definition CaptureFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	AddToggleFlag(flagSet, target, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}

// DryRunFlagDefinition captures the dry-run flag's configuration.
type DryRunFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// BindDryRunFlag attaches the dry-run flag to the provided command and returns the bound value.
func BindDryRunFlag(command *cobra.Command, defaultValue bool, definition DryRunFlagDefinition) *bool {
	boundValue := defaultValue
	if command == nil {
		return &boundValue
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &boundValue
	}

	if len(definition.Shorthand) > 0 {
		command.Flags().BoolVarP(&boundValue, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
		return &boundValue
	}
	command.Flags().BoolVar(&boundValue, definition.Name, defaultValue, definition.Usage)
	return &boundValue
}
