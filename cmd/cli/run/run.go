package run

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/temirov/invoke/cmd/cli/shared"
	"github.com/temirov/invoke/internal/execproc"
	flagutils "github.com/temirov/invoke/internal/utils/flags"
)

const (
	commandUseConstant                 = "run [flags] -- program [arguments...]"
	commandShortDescriptionConstant    = "Run a program directly with an exact argument vector"
	commandLongDescriptionConstant     = "run launches the named program without shell interpretation, passes the argument tokens through untouched, and reports the child's exit status."
	programNameRequiredMessageConstant = "program name required; provide it after --"
)

// CommandBuilder assembles the run command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	ProcessRunner                execproc.ProcessRunner
	HumanReadableLoggingProvider func() bool
}

// Build constructs the run command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ArbitraryArgs,
	}

	invocationFlagValues := flagutils.BindInvocationFlags(command, flagutils.InvocationFlagValues{}, flagutils.InvocationFlagDefinitions{
		WorkingDirectory: flagutils.InvocationFlagDefinition{Name: flagutils.WorkingDirectoryFlagName, Usage: flagutils.WorkingDirectoryFlagUsage, Enabled: true},
		Environment:      flagutils.InvocationFlagDefinition{Name: flagutils.EnvironmentFlagName, Usage: flagutils.EnvironmentFlagUsage, Enabled: true},
		Timeout:          flagutils.InvocationFlagDefinition{Name: flagutils.TimeoutFlagName, Usage: flagutils.TimeoutFlagUsage, Enabled: true},
	})

	captureFlagValues := flagutils.BindCaptureFlags(command, flagutils.CaptureDefaults{CaptureStandardOutput: true, CaptureStandardError: true}, flagutils.CaptureFlagDefinitions{
		CaptureStandardOutput: flagutils.CaptureFlagDefinition{Name: flagutils.CaptureStandardOutputFlagName, Usage: flagutils.CaptureStandardOutputFlagUsage, Enabled: true},
		CaptureStandardError:  flagutils.CaptureFlagDefinition{Name: flagutils.CaptureStandardErrorFlagName, Usage: flagutils.CaptureStandardErrorFlagUsage, Enabled: true},
		MergeStreams:          flagutils.CaptureFlagDefinition{Name: flagutils.MergeStreamsFlagName, Usage: flagutils.MergeStreamsFlagUsage, Enabled: true},
	})

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, invocationFlagValues, captureFlagValues)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, invocationFlagValues *flagutils.InvocationFlagValues, captureFlagValues *flagutils.CaptureFlagValues) error {
	if len(arguments) == 0 {
		if helpError := command.Help(); helpError != nil {
			return helpError
		}
		return errors.New(programNameRequiredMessageConstant)
	}

	invocationOptions, optionsError := shared.BuildInvocationOptions(command, invocationFlagValues, captureFlagValues)
	if optionsError != nil {
		return optionsError
	}

	logger := shared.ResolveLogger(builder.LoggerProvider)
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	processExecutor, executorError := shared.ResolveProcessExecutor(builder.ProcessRunner, logger, humanReadableLogging, command.OutOrStdout(), command.ErrOrStderr())
	if executorError != nil {
		return executorError
	}

	specification := execproc.CommandSpec{Program: arguments[0], Arguments: arguments[1:]}
	executionResult, executionError := processExecutor.ExecuteCommand(command.Context(), specification, invocationOptions)
	if executionError != nil {
		return executionError
	}

	shared.WriteCapturedOutput(command, invocationOptions, executionResult)
	return shared.ExecutionOutcomeError(invocationOptions, executionResult)
}
