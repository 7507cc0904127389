package execproc

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveShellMapsSupportedIdentities(t *testing.T) {
	testCases := []struct {
		identity           ShellIdentity
		expectedExecutable string
		expectedArguments  []string
	}{
		{identity: ShellIdentityPosix, expectedExecutable: "sh", expectedArguments: []string{"-c"}},
		{identity: ShellIdentityBash, expectedExecutable: "bash", expectedArguments: []string{"-lc"}},
		{identity: ShellIdentityCmd, expectedExecutable: "cmd", expectedArguments: []string{"/C"}},
		{identity: ShellIdentityPowerShell, expectedExecutable: "pwsh", expectedArguments: []string{"-NoProfile", "-Command"}},
	}

	for _, testCase := range testCases {
		t.Run(string(testCase.identity), func(t *testing.T) {
			shellSelection, resolutionError := ResolveShell(testCase.identity)
			require.NoError(t, resolutionError)
			require.Equal(t, testCase.identity, shellSelection.Identity)
			require.Equal(t, testCase.expectedExecutable, shellSelection.Executable)
			require.Equal(t, testCase.expectedArguments, shellSelection.CommandArguments)
		})
	}
}

func TestResolveShellRejectsUnknownIdentity(t *testing.T) {
	_, resolutionError := ResolveShell(ShellIdentity("zsh"))

	require.Error(t, resolutionError)
	require.IsType(t, ShellNotFoundError{}, resolutionError)
}

func TestResolveShellUsesPlatformDefaultForEmptyIdentity(t *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		t.Setenv(comspecEnvironmentVariableConstant, `C:\Windows\System32\cmd.exe`)
	} else {
		t.Setenv(shellEnvironmentVariableConstant, "/usr/local/bin/bash")
	}

	shellSelection, resolutionError := ResolveShell("")

	require.NoError(t, resolutionError)
	require.Equal(t, DefaultShellSelection(), shellSelection)
	require.NotEmpty(t, shellSelection.Executable)
}

func TestDefaultShellSelectionHonorsEnvironmentOverride(t *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		t.Setenv(comspecEnvironmentVariableConstant, `C:\Windows\System32\cmd.exe`)

		shellSelection := DefaultShellSelection()

		require.Equal(t, ShellIdentityCmd, shellSelection.Identity)
		require.Equal(t, `C:\Windows\System32\cmd.exe`, shellSelection.Executable)
		require.Equal(t, []string{"/C"}, shellSelection.CommandArguments)
		return
	}

	t.Setenv(shellEnvironmentVariableConstant, "/usr/local/bin/bash")

	shellSelection := DefaultShellSelection()

	require.Equal(t, ShellIdentityPosix, shellSelection.Identity)
	require.Equal(t, "/usr/local/bin/bash", shellSelection.Executable)
	require.Equal(t, []string{"-c"}, shellSelection.CommandArguments)
}

func TestDefaultShellSelectionFallsBackWhenEnvironmentUnset(t *testing.T) {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		t.Setenv(comspecEnvironmentVariableConstant, "")

		shellSelection := DefaultShellSelection()

		require.Equal(t, "cmd.exe", shellSelection.Executable)
		return
	}

	t.Setenv(shellEnvironmentVariableConstant, "")

	shellSelection := DefaultShellSelection()

	require.Equal(t, "/bin/sh", shellSelection.Executable)
}
