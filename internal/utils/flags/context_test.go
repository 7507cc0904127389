package flags

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindInvocationFlagsUsesDefaultsAndParsesValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindInvocationFlags(command, InvocationFlagValues{WorkingDirectory: "/tmp/default", Timeout: 30 * time.Second}, InvocationFlagDefinitions{
		WorkingDirectory: InvocationFlagDefinition{Name: WorkingDirectoryFlagName, Usage: WorkingDirectoryFlagUsage, Enabled: true},
		Environment:      InvocationFlagDefinition{Name: EnvironmentFlagName, Usage: EnvironmentFlagUsage, Enabled: true},
		Timeout:          InvocationFlagDefinition{Name: TimeoutFlagName, Usage: TimeoutFlagUsage, Enabled: true},
	})

	require.NotNil(t, values)
	require.Equal(t, "/tmp/default", values.WorkingDirectory)
	require.Empty(t, values.EnvironmentAssignments)
	require.Equal(t, 30*time.Second, values.Timeout)

	parseError := command.ParseFlags([]string{
		"--" + WorkingDirectoryFlagName, "/workspace",
		"--" + EnvironmentFlagName, "DEPLOY_ENV=staging",
		"--" + EnvironmentFlagName, "REGION=us-east-1",
		"--" + TimeoutFlagName, "45s",
	})
	require.NoError(t, parseError)
	require.Equal(t, "/workspace", values.WorkingDirectory)
	require.Equal(t, []string{"DEPLOY_ENV=staging", "REGION=us-east-1"}, values.EnvironmentAssignments)
	require.Equal(t, 45*time.Second, values.Timeout)
}

func TestBindInvocationFlagsSkipsDisabledDefinitions(t *testing.T) {
	command := &cobra.Command{}

	values := BindInvocationFlags(command, InvocationFlagValues{}, InvocationFlagDefinitions{
		WorkingDirectory: InvocationFlagDefinition{Name: WorkingDirectoryFlagName, Enabled: false},
	})

	require.NotNil(t, values)
	require.Nil(t, command.Flags().Lookup(WorkingDirectoryFlagName))
}

func TestBindShellFlagUsesDefaultsAndParsesValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindShellFlag(command, ShellFlagValues{Identity: "sh"}, ShellFlagDefinition{Name: ShellFlagName, Usage: "Shell identity", Enabled: true})

	require.NotNil(t, values)
	require.Equal(t, "sh", values.Identity)

	parseError := command.ParseFlags([]string{"--" + ShellFlagName, "bash"})
	require.NoError(t, parseError)
	require.Equal(t, "bash", values.Identity)
}

func TestBindPlaybookFileFlagUsesDefaultsAndParsesValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindPlaybookFileFlag(command, PlaybookFileFlagValues{Path: "playbook.yaml"}, PlaybookFileFlagDefinition{Name: PlaybookFileFlagName, Usage: PlaybookFileFlagUsage, Enabled: true})

	require.NotNil(t, values)
	require.Equal(t, "playbook.yaml", values.Path)

	parseError := command.ParseFlags([]string{"--" + PlaybookFileFlagName, "deploy/playbook.yaml"})
	require.NoError(t, parseError)
	require.Equal(t, "deploy/playbook.yaml", values.Path)
}
