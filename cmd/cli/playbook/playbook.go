package playbook

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/invoke/cmd/cli/shared"
	"github.com/temirov/invoke/internal/execproc"
	"github.com/temirov/invoke/internal/playbook"
	"github.com/temirov/invoke/internal/utils"
	flagutils "github.com/temirov/invoke/internal/utils/flags"
	pathutils "github.com/temirov/invoke/internal/utils/path"
)

const (
	commandUseConstant                = "playbook [flags] [path]"
	commandShortDescriptionConstant   = "Execute the steps of a playbook file"
	commandLongDescriptionConstant    = "playbook loads a YAML playbook and executes its steps in declaration order, running grouped steps concurrently and honoring per-step timeouts and failure policies."
	loadPlaybookErrorTemplateConstant = "unable to load playbook: %w"
)

var playbookCommandPathExpander = pathutils.NewHomeExpander()

// CommandBuilder assembles the playbook command.
type CommandBuilder struct {
	LoggerProvider               shared.LoggerProvider
	ProcessRunner                execproc.ProcessRunner
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the playbook command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
	}

	playbookFileFlagValues := flagutils.BindPlaybookFileFlag(command, flagutils.PlaybookFileFlagValues{Path: defaultPlaybookFileNameConstant}, flagutils.PlaybookFileFlagDefinition{
		Name:    flagutils.PlaybookFileFlagName,
		Usage:   flagutils.PlaybookFileFlagUsage,
		Enabled: true,
	})
	dryRunFlagValue := flagutils.BindDryRunFlag(command, false, flagutils.DryRunFlagDefinition{
		Name:    flagutils.DryRunFlagName,
		Usage:   flagutils.DryRunFlagUsage,
		Enabled: true,
	})

	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, playbookFileFlagValues, dryRunFlagValue)
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, playbookFileFlagValues *flagutils.PlaybookFileFlagValues, dryRunFlagValue *bool) error {
	playbookPath := builder.resolvePlaybookPath(command, arguments, playbookFileFlagValues)

	playbookConfiguration, loadError := playbook.LoadConfiguration(playbookPath)
	if loadError != nil {
		return fmt.Errorf(loadPlaybookErrorTemplateConstant, loadError)
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

	playbookExecutor, playbookExecutorError := playbook.NewExecutor(playbookConfiguration, playbook.Dependencies{Executor: processExecutor, Logger: logger})
	if playbookExecutorError != nil {
		return playbookExecutorError
	}

	return playbookExecutor.Execute(command.Context(), playbook.RuntimeOptions{DryRun: *dryRunFlagValue})
}

// resolvePlaybookPath selects the playbook location. A positional argument
// wins, then the file flag, then the configured default. Only a configured
// relative path resolves against the configuration file's directory so a
// shared configuration can name a playbook stored beside itself.
func (builder *CommandBuilder) resolvePlaybookPath(command *cobra.Command, arguments []string, playbookFileFlagValues *flagutils.PlaybookFileFlagValues) string {
	if len(arguments) > 0 {
		positionalPath := strings.TrimSpace(arguments[0])
		if len(positionalPath) > 0 {
			return playbookCommandPathExpander.Expand(positionalPath)
		}
	}

	if command != nil && playbookFileFlagValues != nil && command.Flags().Changed(flagutils.PlaybookFileFlagName) {
		return playbookCommandPathExpander.Expand(strings.TrimSpace(playbookFileFlagValues.Path))
	}

	expandedPath := playbookCommandPathExpander.Expand(builder.resolveConfiguration().File)
	if filepath.IsAbs(expandedPath) || command == nil {
		return expandedPath
	}

	contextAccessor := utils.NewCommandContextAccessor()
	configurationFilePath, configurationPathAvailable := contextAccessor.ConfigurationFilePath(command.Context())
	if !configurationPathAvailable || len(strings.TrimSpace(configurationFilePath)) == 0 {
		return expandedPath
	}
	return filepath.Join(filepath.Dir(configurationFilePath), expandedPath)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
