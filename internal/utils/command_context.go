package utils

import (
	"context"
	"time"
)

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	executionDefaultsContextKeyConstant     = commandContextKey("executionDefaults")
)

type commandContextKey string

// ExecutionDefaults carries configuration-sourced invocation defaults that
// individual command flags may override.
type ExecutionDefaults struct {
	Timeout          time.Duration
	WorkingDirectory string
	Shell            string
}

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return "", false
	}
	return configurationFilePath, true
}

// WithExecutionDefaults attaches configuration-sourced invocation defaults to the provided context.
func (accessor CommandContextAccessor) WithExecutionDefaults(parentContext context.Context, executionDefaults ExecutionDefaults) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, executionDefaultsContextKeyConstant, executionDefaults)
}

// ExecutionDefaults extracts configuration-sourced invocation defaults from the provided context.
func (accessor CommandContextAccessor) ExecutionDefaults(executionContext context.Context) (ExecutionDefaults, bool) {
	if executionContext == nil {
		return ExecutionDefaults{}, false
	}
	executionDefaults, executionDefaultsAvailable := executionContext.Value(executionDefaultsContextKeyConstant).(ExecutionDefaults)
	if !executionDefaultsAvailable {
		return ExecutionDefaults{}, false
	}
	return executionDefaults, true
}
