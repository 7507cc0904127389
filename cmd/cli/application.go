package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	playbookcmd "github.com/temirov/invoke/cmd/cli/playbook"
	runcmd "github.com/temirov/invoke/cmd/cli/run"
	shellcmd "github.com/temirov/invoke/cmd/cli/shell"
	"github.com/temirov/invoke/internal/utils"
	flagutils "github.com/temirov/invoke/internal/utils/flags"
)

const (
	applicationNameConstant                   = "invoke"
	applicationShortDescriptionConstant       = "Command-line interface for external process invocation"
	applicationLongDescriptionConstant        = "invoke launches programs directly with exact argument vectors or through a shell interpreter, capturing output and reporting exit status."
	configFileFlagNameConstant                = "config"
	configFileFlagUsageConstant               = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                  = "log-level"
	logLevelFlagUsageConstant                 = "Override the configured log level."
	logFormatFlagNameConstant                 = "log-format"
	logFormatFlagUsageConstant                = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant            = "common"
	commonLogLevelConfigKeyConstant           = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant          = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant                 = "INVOKE"
	configurationNameConstant                 = "config"
	configurationTypeConstant                 = "yaml"
	configurationInitializedMessageConstant   = "configuration initialized"
	configurationLogLevelFieldConstant        = "log_level"
	configurationLogFormatFieldConstant       = "log_format"
	configurationFileFieldConstant            = "config_file"
	configurationLoadErrorTemplateConstant    = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant       = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant           = "unable to flush logger: %w"
	rootCommandInfoMessageConstant            = "invoke CLI executed"
	rootCommandDebugMessageConstant           = "invoke CLI diagnostics"
	logFieldCommandNameConstant               = "command_name"
	logFieldArgumentCountConstant             = "argument_count"
	logFieldArgumentsConstant                 = "arguments"
	loggerNotInitializedMessageConstant       = "logger not initialized"
	defaultConfigurationSearchPathConstant    = "."
	defaultsConfigurationKeyConstant          = "defaults"
	defaultsTimeoutConfigKeyConstant          = defaultsConfigurationKeyConstant + ".timeout"
	defaultsWorkingDirectoryConfigKeyConstant = defaultsConfigurationKeyConstant + ".working_directory"
	defaultsShellConfigKeyConstant            = defaultsConfigurationKeyConstant + ".shell"
	playbookConfigurationKeyConstant          = "playbook"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration   `mapstructure:"common"`
	Defaults ApplicationDefaultsConfiguration `mapstructure:"defaults"`
	Playbook playbookcmd.CommandConfiguration `mapstructure:"playbook"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationDefaultsConfiguration holds execution defaults applied when invocation flags stay untouched.
type ApplicationDefaultsConfiguration struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	WorkingDirectory string        `mapstructure:"working_directory"`
	Shell            string        `mapstructure:"shell"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	runBuilder := runcmd.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	runCommand, runBuildError := runBuilder.Build()
	if runBuildError == nil {
		cobraCommand.AddCommand(runCommand)
	}

	shellBuilder := shellcmd.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	shellCommand, shellBuildError := shellBuilder.Build()
	if shellBuildError == nil {
		cobraCommand.AddCommand(shellCommand)
	}

	playbookBuilder := playbookcmd.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() playbookcmd.CommandConfiguration {
			return application.configuration.Playbook
		},
	}
	playbookCommand, playbookBuildError := playbookBuilder.Build()
	if playbookBuildError == nil {
		cobraCommand.AddCommand(playbookCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(os.Args[1:]))
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:           string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant:          string(utils.LogFormatStructured),
		defaultsTimeoutConfigKeyConstant:          time.Duration(0),
		defaultsWorkingDirectoryConfigKeyConstant: "",
		defaultsShellConfigKeyConstant:            "",
	}
	for configurationKey, configurationValue := range playbookcmd.DefaultConfigurationValues(playbookConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	createdLogger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = createdLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithExecutionDefaults(updatedContext, utils.ExecutionDefaults{
			Timeout:          application.configuration.Defaults.Timeout,
			WorkingDirectory: application.configuration.Defaults.WorkingDirectory,
			Shell:            application.configuration.Defaults.Shell,
		})
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
