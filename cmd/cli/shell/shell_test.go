package shell_test

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/invoke/cmd/cli/shared"
	shellcmd "github.com/temirov/invoke/cmd/cli/shell"
	"github.com/temirov/invoke/internal/execproc"
	"github.com/temirov/invoke/internal/utils"
)

const (
	shellCommandLineConstant               = "echo hello && echo done"
	shellCapturedOutputConstant            = "hello\ndone\n"
	shellUsageSnippetConstant              = "Usage:"
	shellMissingCommandLineMessageConstant = "command line required"
	shellUnknownInterpreterMessageConstant = "shell fish unavailable"
	shellPosixSkipMessageConstant          = "requires a POSIX shell"
	windowsOperatingSystemNameConstant     = "windows"
)

type scriptedProcessRunner struct {
	recordedInvocations []execproc.Invocation
	scriptedResult      execproc.ExecutionResult
	scriptedError       error
}

func (runner *scriptedProcessRunner) Run(_ context.Context, invocation execproc.Invocation) (execproc.ExecutionResult, error) {
	runner.recordedInvocations = append(runner.recordedInvocations, invocation)
	if runner.scriptedError != nil {
		return execproc.ExecutionResult{}, runner.scriptedError
	}
	return runner.scriptedResult, nil
}

func buildShellCommand(testInstance *testing.T, processRunner execproc.ProcessRunner, executionDefaults *utils.ExecutionDefaults) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	builder := shellcmd.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ProcessRunner:  processRunner,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(errorBuffer)

	commandContext := context.Background()
	if executionDefaults != nil {
		commandContext = utils.NewCommandContextAccessor().WithExecutionDefaults(commandContext, *executionDefaults)
	}
	command.SetContext(commandContext)

	return command, outputBuffer, errorBuffer
}

func TestShellCommandExecutesCommandLine(testInstance *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		testInstance.Skip(shellPosixSkipMessageConstant)
	}

	processRunner := &scriptedProcessRunner{scriptedResult: execproc.ExecutionResult{StandardOutput: shellCapturedOutputConstant}}
	command, outputBuffer, _ := buildShellCommand(testInstance, processRunner, nil)
	command.SetArgs([]string{shellCommandLineConstant})

	require.NoError(testInstance, command.Execute())

	require.Len(testInstance, processRunner.recordedInvocations, 1)
	recordedInvocation := processRunner.recordedInvocations[0]
	require.Equal(testInstance, execproc.InvocationKindShell, recordedInvocation.Kind)
	require.Equal(testInstance, execproc.ShellIdentityPosix, recordedInvocation.Shell)
	require.Equal(testInstance, shellCommandLineConstant, recordedInvocation.CommandLine)
	require.NotEmpty(testInstance, recordedInvocation.Program)
	require.Equal(testInstance, shellCommandLineConstant, recordedInvocation.Arguments[len(recordedInvocation.Arguments)-1])
	require.Equal(testInstance, shellCapturedOutputConstant, outputBuffer.String())
}

func TestShellCommandJoinsPositionalTokens(testInstance *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		testInstance.Skip(shellPosixSkipMessageConstant)
	}

	processRunner := &scriptedProcessRunner{}
	command, _, _ := buildShellCommand(testInstance, processRunner, nil)
	command.SetArgs([]string{"echo", "one  two"})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, processRunner.recordedInvocations, 1)
	require.Equal(testInstance, "echo one  two", processRunner.recordedInvocations[0].CommandLine)
}

func TestShellCommandHonorsShellFlag(testInstance *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		testInstance.Skip(shellPosixSkipMessageConstant)
	}

	processRunner := &scriptedProcessRunner{}
	command, _, _ := buildShellCommand(testInstance, processRunner, nil)
	command.SetArgs([]string{"--shell", "sh", shellCommandLineConstant})

	require.NoError(testInstance, command.Execute())
	require.Len(testInstance, processRunner.recordedInvocations, 1)
	recordedInvocation := processRunner.recordedInvocations[0]
	require.Equal(testInstance, execproc.ShellIdentityPosix, recordedInvocation.Shell)
	require.Equal(testInstance, []string{"-c", shellCommandLineConstant}, recordedInvocation.Arguments)
}

func TestShellCommandRejectsUnknownInterpreter(testInstance *testing.T) {
	processRunner := &scriptedProcessRunner{}
	command, _, _ := buildShellCommand(testInstance, processRunner, nil)
	command.SetArgs([]string{"--shell", "fish", shellCommandLineConstant})

	executionError := command.Execute()
	require.EqualError(testInstance, executionError, shellUnknownInterpreterMessageConstant)

	var shellNotFoundError execproc.ShellNotFoundError
	require.ErrorAs(testInstance, executionError, &shellNotFoundError)
	require.Equal(testInstance, "fish", shellNotFoundError.Shell)
	require.Equal(testInstance, shared.ExitCodeLookupFailure, shared.ExitCodeForError(executionError))
	require.Empty(testInstance, processRunner.recordedInvocations)
}

func TestShellCommandConsultsConfiguredDefaultShell(testInstance *testing.T) {
	configuredDefaults := utils.ExecutionDefaults{Shell: "fish"}

	testInstance.Run("configured_shell_applies_when_flag_untouched", func(subtest *testing.T) {
		processRunner := &scriptedProcessRunner{}
		command, _, _ := buildShellCommand(subtest, processRunner, &configuredDefaults)
		command.SetArgs([]string{shellCommandLineConstant})

		executionError := command.Execute()
		require.EqualError(subtest, executionError, shellUnknownInterpreterMessageConstant)
		require.Empty(subtest, processRunner.recordedInvocations)
	})

	testInstance.Run("shell_flag_overrides_configured_shell", func(subtest *testing.T) {
		if runtime.GOOS == windowsOperatingSystemNameConstant {
			subtest.Skip(shellPosixSkipMessageConstant)
		}

		processRunner := &scriptedProcessRunner{}
		command, _, _ := buildShellCommand(subtest, processRunner, &configuredDefaults)
		command.SetArgs([]string{"--shell", "sh", shellCommandLineConstant})

		require.NoError(subtest, command.Execute())
		require.Len(subtest, processRunner.recordedInvocations, 1)
		require.Equal(subtest, execproc.ShellIdentityPosix, processRunner.recordedInvocations[0].Shell)
	})
}

func TestShellCommandRequiresCommandLine(testInstance *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "no_arguments", arguments: []string{}},
		{name: "whitespace_only_arguments", arguments: []string{"   "}},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			processRunner := &scriptedProcessRunner{}
			command, outputBuffer, _ := buildShellCommand(subtest, processRunner, nil)
			command.SetArgs(testCase.arguments)

			executionError := command.Execute()
			require.EqualError(subtest, executionError, shellMissingCommandLineMessageConstant)
			require.Contains(subtest, outputBuffer.String(), shellUsageSnippetConstant)
			require.Empty(subtest, processRunner.recordedInvocations)
		})
	}
}

func TestShellCommandReportsExitStatus(testInstance *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		testInstance.Skip(shellPosixSkipMessageConstant)
	}

	processRunner := &scriptedProcessRunner{scriptedResult: execproc.ExecutionResult{ExitCode: 2}}
	command, _, _ := buildShellCommand(testInstance, processRunner, nil)
	command.SetArgs([]string{shellCommandLineConstant})

	executionError := command.Execute()
	require.Error(testInstance, executionError)

	var exitStatusError shared.ExitStatusError
	require.ErrorAs(testInstance, executionError, &exitStatusError)
	require.Equal(testInstance, 2, exitStatusError.ExitCode)
}
