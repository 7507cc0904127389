package playbook

import "strings"

const (
	defaultPlaybookFileNameConstant = "playbook.yaml"
	fileConfigurationKeyConstant    = "file"
)

// CommandConfiguration captures configuration values for the playbook command.
type CommandConfiguration struct {
	File string `mapstructure:"file"`
}

// DefaultCommandConfiguration provides default playbook command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{File: defaultPlaybookFileNameConstant}
}

// DefaultConfigurationValues produces Viper defaults for the playbook command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + fileConfigurationKeyConstant: defaults.File,
	}
}

// Sanitize normalizes configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.File = strings.TrimSpace(configuration.File)
	if len(sanitized.File) == 0 {
		sanitized.File = defaultPlaybookFileNameConstant
	}
	return sanitized
}
