package execproc

import (
	"os"
	"runtime"
	"strings"
)

const (
	posixShellIdentityNameConstant      = "sh"
	bashShellIdentityNameConstant       = "bash"
	cmdShellIdentityNameConstant        = "cmd"
	powerShellShellIdentityNameConstant = "pwsh"
	posixShellCommandFlagConstant       = "-c"
	bashShellCommandFlagConstant        = "-lc"
	cmdShellCommandFlagConstant         = "/C"
	powerShellNoProfileFlagConstant     = "-NoProfile"
	powerShellCommandFlagConstant       = "-Command"
	posixShellFallbackPathConstant      = "/bin/sh"
	windowsShellFallbackNameConstant    = "cmd.exe"
	shellEnvironmentVariableConstant    = "SHELL"
	comspecEnvironmentVariableConstant  = "COMSPEC"
	windowsOperatingSystemNameConstant  = "windows"
)

// ShellIdentity selects one of the supported command interpreters.
type ShellIdentity string

// Supported shell identities.
const (
	ShellIdentityPosix      ShellIdentity = ShellIdentity(posixShellIdentityNameConstant)
	ShellIdentityBash       ShellIdentity = ShellIdentity(bashShellIdentityNameConstant)
	ShellIdentityCmd        ShellIdentity = ShellIdentity(cmdShellIdentityNameConstant)
	ShellIdentityPowerShell ShellIdentity = ShellIdentity(powerShellShellIdentityNameConstant)
)

// ShellSelection names the executable and execute-a-string arguments chosen
// for a shell-mediated invocation.
type ShellSelection struct {
	Identity         ShellIdentity
	Executable       string
	CommandArguments []string
}

type shellInvocationPlan struct {
	executable       string
	commandArguments []string
}

var shellInvocationPlans = map[ShellIdentity]shellInvocationPlan{
	ShellIdentityPosix:      {executable: posixShellIdentityNameConstant, commandArguments: []string{posixShellCommandFlagConstant}},
	ShellIdentityBash:       {executable: bashShellIdentityNameConstant, commandArguments: []string{bashShellCommandFlagConstant}},
	ShellIdentityCmd:        {executable: cmdShellIdentityNameConstant, commandArguments: []string{cmdShellCommandFlagConstant}},
	ShellIdentityPowerShell: {executable: powerShellShellIdentityNameConstant, commandArguments: []string{powerShellNoProfileFlagConstant, powerShellCommandFlagConstant}},
}

// SupportedShellIdentities lists the identities accepted as shell overrides.
func SupportedShellIdentities() []ShellIdentity {
	return []ShellIdentity{ShellIdentityPosix, ShellIdentityBash, ShellIdentityCmd, ShellIdentityPowerShell}
}

// ResolveShell maps the requested identity, or the platform default when the
// identity is empty, to a concrete shell selection. Unknown identities yield a
// ShellNotFoundError.
func ResolveShell(requestedIdentity ShellIdentity) (ShellSelection, error) {
	trimmedIdentity := ShellIdentity(strings.TrimSpace(string(requestedIdentity)))
	if len(trimmedIdentity) == 0 {
		return DefaultShellSelection(), nil
	}

	invocationPlan, identityKnown := shellInvocationPlans[trimmedIdentity]
	if !identityKnown {
		return ShellSelection{}, ShellNotFoundError{Shell: string(trimmedIdentity)}
	}

	return ShellSelection{
		Identity:         trimmedIdentity,
		Executable:       invocationPlan.executable,
		CommandArguments: append([]string{}, invocationPlan.commandArguments...),
	}, nil
}

// DefaultShellSelection resolves the platform default shell at call time,
// never caching the answer as process-wide state.
//
// Windows consults COMSPEC before falling back to cmd.exe. Other platforms
// consult SHELL before falling back to /bin/sh; SHELL may name any login
// shell, so callers needing strict POSIX semantics pass ShellIdentityPosix
// explicitly.
func DefaultShellSelection() ShellSelection {
	if runtime.GOOS == windowsOperatingSystemNameConstant {
		shellExecutable := strings.TrimSpace(os.Getenv(comspecEnvironmentVariableConstant))
		if len(shellExecutable) == 0 {
			shellExecutable = windowsShellFallbackNameConstant
		}
		return ShellSelection{
			Identity:         ShellIdentityCmd,
			Executable:       shellExecutable,
			CommandArguments: []string{cmdShellCommandFlagConstant},
		}
	}

	shellExecutable := strings.TrimSpace(os.Getenv(shellEnvironmentVariableConstant))
	if len(shellExecutable) == 0 {
		shellExecutable = posixShellFallbackPathConstant
	}
	return ShellSelection{
		Identity:         ShellIdentityPosix,
		Executable:       shellExecutable,
		CommandArguments: []string{posixShellCommandFlagConstant},
	}
}
