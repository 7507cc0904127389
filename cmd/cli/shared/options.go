package shared

import (
	"github.com/spf13/cobra"

	"github.com/temirov/invoke/internal/execproc"
	flagutils "github.com/temirov/invoke/internal/utils/flags"
	pathutils "github.com/temirov/invoke/internal/utils/path"
)

var invocationWorkingDirectorySanitizer = pathutils.NewWorkingDirectorySanitizer()

// BuildInvocationOptions layers bound flag values over the configured
// execution defaults. A flag wins only when it was set on the command line,
// so configured defaults govern untouched flags.
func BuildInvocationOptions(command *cobra.Command, invocationFlagValues *flagutils.InvocationFlagValues, captureFlagValues *flagutils.CaptureFlagValues) (execproc.InvocationOptions, error) {
	invocationOptions := execproc.DefaultInvocationOptions()
	if captureFlagValues != nil {
		invocationOptions.CaptureStandardOutput = captureFlagValues.CaptureStandardOutput
		invocationOptions.CaptureStandardError = captureFlagValues.CaptureStandardError
		invocationOptions.MergeStreams = captureFlagValues.MergeStreams
	}
	if invocationFlagValues == nil {
		return invocationOptions, nil
	}

	executionDefaults := ResolveExecutionDefaults(command)

	invocationOptions.Timeout = executionDefaults.Timeout
	if command != nil && command.Flags().Changed(flagutils.TimeoutFlagName) {
		invocationOptions.Timeout = invocationFlagValues.Timeout
	}

	workingDirectory := executionDefaults.WorkingDirectory
	if command != nil && command.Flags().Changed(flagutils.WorkingDirectoryFlagName) {
		workingDirectory = invocationFlagValues.WorkingDirectory
	}
	invocationOptions.WorkingDirectory = invocationWorkingDirectorySanitizer.Sanitize(workingDirectory)

	environmentVariables, environmentError := ParseEnvironmentAssignments(invocationFlagValues.EnvironmentAssignments)
	if environmentError != nil {
		return execproc.InvocationOptions{}, environmentError
	}
	invocationOptions.EnvironmentVariables = environmentVariables

	return invocationOptions, nil
}
