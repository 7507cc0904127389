package ui_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/invoke/internal/execproc"
	"github.com/temirov/invoke/internal/ui"
)

const (
	testWorkingDirectoryConstant           = "/tmp/project"
	testProgramNameConstant                = "deploy-tool"
	testProgramArgumentConstant            = "--verbose"
	testDirectLabelExpectationConstant     = "deploy-tool --verbose (in /tmp/project)"
	testShellCommandLineConstant           = "printf done"
	testShellLabelExpectationConstant      = `sh -c "printf done"`
	testExecutionFailureReasonConstant     = "execution failed"
	testStandardErrorMessageConstant       = "fatal: device offline"
	testStartMessageExpectationConstant    = "Running " + testDirectLabelExpectationConstant
	testShellStartMessageExpectation       = "Running " + testShellLabelExpectationConstant
	testSuccessMessageExpectationConstant  = "Completed " + testDirectLabelExpectationConstant
	testFailureMessageExpectationConstant  = testDirectLabelExpectationConstant + " failed with exit code 1: " + testStandardErrorMessageConstant
	testTimeoutMessageExpectationConstant  = testDirectLabelExpectationConstant + " timed out after 2s"
	testExecutionFailureMessageExpectation = testDirectLabelExpectationConstant + " failed: " + testExecutionFailureReasonConstant
)

func TestConsoleInvocationEventLoggerEmitsMessages(testInstance *testing.T) {
	directInvocation := execproc.Invocation{
		Kind:      execproc.InvocationKindDirect,
		Program:   testProgramNameConstant,
		Arguments: []string{testProgramArgumentConstant},
		Options:   execproc.InvocationOptions{WorkingDirectory: testWorkingDirectoryConstant},
	}

	timedInvocation := directInvocation
	timedInvocation.Options.Timeout = 2 * time.Second

	shellInvocation := execproc.Invocation{
		Kind:        execproc.InvocationKindShell,
		Program:     "/bin/sh",
		Arguments:   []string{"-c", testShellCommandLineConstant},
		CommandLine: testShellCommandLineConstant,
		Shell:       execproc.ShellIdentityPosix,
	}

	testCases := []struct {
		name            string
		invoke          func(eventLogger *ui.ConsoleInvocationEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "invocation_started",
			invoke: func(eventLogger *ui.ConsoleInvocationEventLogger) {
				eventLogger.InvocationStarted(directInvocation)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "shell_invocation_started",
			invoke: func(eventLogger *ui.ConsoleInvocationEventLogger) {
				eventLogger.InvocationStarted(shellInvocation)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testShellStartMessageExpectation,
		},
		{
			name: "invocation_completed_success",
			invoke: func(eventLogger *ui.ConsoleInvocationEventLogger) {
				eventLogger.InvocationCompleted(directInvocation, execproc.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "invocation_completed_failure",
			invoke: func(eventLogger *ui.ConsoleInvocationEventLogger) {
				eventLogger.InvocationCompleted(directInvocation, execproc.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "invocation_completed_timeout",
			invoke: func(eventLogger *ui.ConsoleInvocationEventLogger) {
				eventLogger.InvocationCompleted(timedInvocation, execproc.ExecutionResult{ExitCode: -1, TimedOut: true})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testTimeoutMessageExpectationConstant,
		},
		{
			name: "invocation_execution_failure",
			invoke: func(eventLogger *ui.ConsoleInvocationEventLogger) {
				eventLogger.InvocationExecutionFailed(directInvocation, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleInvocationEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}
