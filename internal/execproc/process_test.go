package execproc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/invoke/internal/execproc"
)

const (
	testQuickScriptConstant      = "printf done"
	testReadySleepScriptConstant = "touch ready; sleep 5"
	testReadyFileNameConstant    = "ready"
)

func newRealProcessExecutor(testInstance *testing.T) *execproc.ProcessExecutor {
	testInstance.Helper()
	processExecutor, creationError := execproc.NewProcessExecutor(zap.NewNop(), execproc.NewOSProcessRunner())
	require.NoError(testInstance, creationError)
	return processExecutor
}

func TestProcessHandleWaitReturnsCompletedResult(testInstance *testing.T) {
	requirePosixShell(testInstance)

	processExecutor := newRealProcessExecutor(testInstance)
	commandSpecification := execproc.CommandSpec{
		Program:   testPosixShellProgramConstant,
		Arguments: []string{testPosixShellCommandFlagConstant, testQuickScriptConstant},
	}

	processHandle, startError := processExecutor.StartCommand(context.Background(), commandSpecification, execproc.DefaultInvocationOptions())
	require.NoError(testInstance, startError)
	require.NotEmpty(testInstance, processHandle.Identifier())

	executionResult, waitError := processHandle.Wait(context.Background())

	require.NoError(testInstance, waitError)
	require.Equal(testInstance, "done", executionResult.StandardOutput)
	require.Equal(testInstance, 0, executionResult.ExitCode)
}

func TestProcessHandleCancelTerminatesRunningProcess(testInstance *testing.T) {
	requirePosixShell(testInstance)

	workingDirectory := testInstance.TempDir()
	invocationOptions := execproc.DefaultInvocationOptions()
	invocationOptions.WorkingDirectory = workingDirectory

	processExecutor := newRealProcessExecutor(testInstance)
	commandSpecification := execproc.CommandSpec{
		Program:   testPosixShellProgramConstant,
		Arguments: []string{testPosixShellCommandFlagConstant, testReadySleepScriptConstant},
	}

	processHandle, startError := processExecutor.StartCommand(context.Background(), commandSpecification, invocationOptions)
	require.NoError(testInstance, startError)

	readyPath := filepath.Join(workingDirectory, testReadyFileNameConstant)
	require.Eventually(testInstance, func() bool {
		_, statError := os.Stat(readyPath)
		return statError == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancelStart := time.Now()
	processHandle.Cancel()
	cancelDuration := time.Since(cancelStart)

	executionResult, waitError := processHandle.Wait(context.Background())

	require.NoError(testInstance, waitError)
	require.Equal(testInstance, -1, executionResult.ExitCode)
	require.Less(testInstance, cancelDuration, testProcessTerminationBudgetConstant)
}

func TestProcessHandleWaitHonorsCallerContext(testInstance *testing.T) {
	requirePosixShell(testInstance)

	processExecutor := newRealProcessExecutor(testInstance)
	commandSpecification := execproc.CommandSpec{
		Program:   testPosixShellProgramConstant,
		Arguments: []string{testPosixShellCommandFlagConstant, testSleepingScriptConstant},
	}

	processHandle, startError := processExecutor.StartCommand(context.Background(), commandSpecification, execproc.DefaultInvocationOptions())
	require.NoError(testInstance, startError)

	waitContext, cancelWait := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelWait()

	_, boundedWaitError := processHandle.Wait(waitContext)
	require.ErrorIs(testInstance, boundedWaitError, context.DeadlineExceeded)

	processHandle.Cancel()

	executionResult, finalWaitError := processHandle.Wait(context.Background())
	require.NoError(testInstance, finalWaitError)
	require.Equal(testInstance, -1, executionResult.ExitCode)
}

func TestStartCommandRejectsBlankProgramImmediately(testInstance *testing.T) {
	processExecutor := newRealProcessExecutor(testInstance)

	processHandle, startError := processExecutor.StartCommand(context.Background(), execproc.CommandSpec{}, execproc.DefaultInvocationOptions())

	require.ErrorIs(testInstance, startError, execproc.ErrProgramNameMissing)
	require.Nil(testInstance, processHandle)
}

func TestStartShellRejectsUnknownIdentityImmediately(testInstance *testing.T) {
	processExecutor := newRealProcessExecutor(testInstance)

	shellSpecification := execproc.ShellCommandSpec{CommandLine: testQuickScriptConstant, Shell: execproc.ShellIdentity("fish")}
	processHandle, startError := processExecutor.StartShell(context.Background(), shellSpecification, execproc.DefaultInvocationOptions())

	require.Error(testInstance, startError)
	require.IsType(testInstance, execproc.ShellNotFoundError{}, startError)
	require.Nil(testInstance, processHandle)
}
