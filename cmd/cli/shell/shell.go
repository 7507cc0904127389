package shell

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/invoke/cmd/cli/shared"
	"github.com/temirov/invoke/internal/execproc"
	flagutils "github.com/temirov/invoke/internal/utils/flags"
)

const (
	commandUseConstant                 = "shell [flags] \"command line\""
	commandShortDescriptionConstant    = "Run a command line through a shell interpreter"
	commandLongDescriptionConstant     = "shell hands the command line verbatim to the selected interpreter's execute-a-string flag, so quoting, expansion, and pipelines follow that shell's own rules."
	commandLineRequiredMessageConstant = "command line required"
	shellFlagDescriptionConstant       = "Shell interpreter"
	positionalJoinSeparatorConstant    = " "
)

// CommandBuilder assembles the shell command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	ProcessRunner                execproc.ProcessRunner
	HumanReadableLoggingProvider func() bool
}

// Build constructs the shell command.
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

	shellFlagValues := flagutils.BindShellFlag(command, flagutils.ShellFlagValues{}, flagutils.ShellFlagDefinition{
		Name:    flagutils.ShellFlagName,
		Usage:   shellFlagUsage(),
		Enabled: true,
	})

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, invocationFlagValues, captureFlagValues, shellFlagValues)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, invocationFlagValues *flagutils.InvocationFlagValues, captureFlagValues *flagutils.CaptureFlagValues, shellFlagValues *flagutils.ShellFlagValues) error {
	commandLine := strings.Join(arguments, positionalJoinSeparatorConstant)
	if len(strings.TrimSpace(commandLine)) == 0 {
		if helpError := command.Help(); helpError != nil {
			return helpError
		}
		return errors.New(commandLineRequiredMessageConstant)
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

	shellIdentity := shared.ResolveExecutionDefaults(command).Shell
	if command.Flags().Changed(flagutils.ShellFlagName) {
		shellIdentity = shellFlagValues.Identity
	}

	specification := execproc.ShellCommandSpec{
		CommandLine: commandLine,
		Shell:       execproc.ShellIdentity(strings.TrimSpace(shellIdentity)),
	}
	executionResult, executionError := processExecutor.ExecuteShell(command.Context(), specification, invocationOptions)
	if executionError != nil {
		return executionError
	}

	shared.WriteCapturedOutput(command, invocationOptions, executionResult)
	return shared.ExecutionOutcomeError(invocationOptions, executionResult)
}

// shellFlagUsage renders the interpreter choices with the platform default uppercased.
func shellFlagUsage() string {
	supportedIdentities := execproc.SupportedShellIdentities()
	shellChoices := make([]string, 0, len(supportedIdentities))
	for _, shellIdentity := range supportedIdentities {
		shellChoices = append(shellChoices, string(shellIdentity))
	}
	return flagutils.FormatChoiceUsage(string(execproc.DefaultShellSelection().Identity), shellChoices, shellFlagDescriptionConstant)
}
