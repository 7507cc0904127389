package playbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/invoke/internal/execproc"
	pathutils "github.com/temirov/invoke/internal/utils/path"
)

var playbookWorkingDirectorySanitizer = pathutils.NewWorkingDirectorySanitizer()

const (
	playbookStartedMessageConstant              = "playbook execution started"
	playbookCompletedMessageConstant            = "playbook execution completed"
	playbookStepPlannedMessageConstant          = "playbook step planned"
	playbookStepContinuedMessageConstant        = "playbook step failed, continuing"
	processExecutorNotConfiguredMessageConstant = "process executor not configured"
	playbookLoggerNotConfiguredMessageConstant  = "logger not configured"
	stepFailureCauseTemplateConstant            = "step %s failed: %v"
	stepFailureTimeoutTemplateConstant          = "step %s timed out"
	stepFailureExitCodeTemplateConstant         = "step %s exited with code %d"
	logFieldPlaybookConstant                    = "playbook"
	logFieldStepCountConstant                   = "steps"
	logFieldDryRunConstant                      = "dry_run"
	logFieldStepConstant                        = "step"
	logFieldCommandConstant                     = "command"
	logFieldCommandLineConstant                 = "command_line"
	logFieldGroupConstant                       = "group"
)

// Sentinel errors reported during playbook executor construction.
var (
	// ErrProcessExecutorNotConfigured indicates the executor was constructed without a process executor.
	ErrProcessExecutorNotConfigured = errors.New(processExecutorNotConfiguredMessageConstant)
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(playbookLoggerNotConfiguredMessageConstant)
)

// StepFailure describes a playbook step that did not complete successfully.
type StepFailure struct {
	StepName string
	Kind     execproc.InvocationErrorKind
	ExitCode int
	Cause    error
}

// Error formats the failure with its step name and outcome.
func (failure StepFailure) Error() string {
	if failure.Cause != nil {
		return fmt.Sprintf(stepFailureCauseTemplateConstant, failure.StepName, failure.Cause)
	}
	if failure.Kind == execproc.InvocationErrorKindTimeout {
		return fmt.Sprintf(stepFailureTimeoutTemplateConstant, failure.StepName)
	}
	return fmt.Sprintf(stepFailureExitCodeTemplateConstant, failure.StepName, failure.ExitCode)
}

// Unwrap exposes the underlying invocation error when one exists.
func (failure StepFailure) Unwrap() error {
	return failure.Cause
}

// Dependencies configures shared collaborators for playbook execution.
type Dependencies struct {
	Executor *execproc.ProcessExecutor
	Logger   *zap.Logger
}

// RuntimeOptions captures user-provided execution modifiers.
type RuntimeOptions struct {
	DryRun bool
}

// Executor runs playbook steps in declaration order, fanning consecutive
// steps that share a group label out to concurrent goroutines.
type Executor struct {
	configuration Configuration
	dependencies  Dependencies
}

// NewExecutor validates collaborators, normalizes the configuration, and
// assembles a playbook executor. Configurations built in code receive the
// same step defaulting and validation as loaded ones.
func NewExecutor(configuration Configuration, dependencies Dependencies) (*Executor, error) {
	if dependencies.Executor == nil {
		return nil, ErrProcessExecutorNotConfigured
	}
	if dependencies.Logger == nil {
		return nil, ErrLoggerNotConfigured
	}

	configuration.Steps = append([]StepConfiguration{}, configuration.Steps...)
	for stepIndex := range configuration.Steps {
		if validationError := normalizeStep(&configuration.Steps[stepIndex], stepIndex); validationError != nil {
			return nil, validationError
		}
	}

	return &Executor{configuration: configuration, dependencies: dependencies}, nil
}

// Execute orchestrates the playbook steps and returns the first unhandled step failure.
func (executor *Executor) Execute(executionContext context.Context, runtimeOptions RuntimeOptions) error {
	executor.dependencies.Logger.Info(playbookStartedMessageConstant,
		zap.String(logFieldPlaybookConstant, executor.configuration.Name),
		zap.Int(logFieldStepCountConstant, len(executor.configuration.Steps)),
		zap.Bool(logFieldDryRunConstant, runtimeOptions.DryRun),
	)

	steps := executor.configuration.Steps
	stepIndex := 0
	for stepIndex < len(steps) {
		groupLabel := steps[stepIndex].Group
		if len(groupLabel) == 0 {
			if stepError := executor.runStepWithPolicy(executionContext, steps[stepIndex], runtimeOptions); stepError != nil {
				return stepError
			}
			stepIndex++
			continue
		}

		groupEnd := stepIndex
		for groupEnd < len(steps) && steps[groupEnd].Group == groupLabel {
			groupEnd++
		}
		if groupError := executor.executeGroup(executionContext, steps[stepIndex:groupEnd], runtimeOptions); groupError != nil {
			return groupError
		}
		stepIndex = groupEnd
	}

	executor.dependencies.Logger.Info(playbookCompletedMessageConstant, zap.String(logFieldPlaybookConstant, executor.configuration.Name))
	return nil
}

// executeGroup runs the grouped steps concurrently and joins them before the
// next step starts. A failing group member cancels the remaining members.
func (executor *Executor) executeGroup(executionContext context.Context, groupSteps []StepConfiguration, runtimeOptions RuntimeOptions) error {
	concurrentGroup, groupContext := errgroup.WithContext(executionContext)
	for stepIndex := range groupSteps {
		groupStep := groupSteps[stepIndex]
		concurrentGroup.Go(func() error {
			return executor.runStepWithPolicy(groupContext, groupStep, runtimeOptions)
		})
	}
	return concurrentGroup.Wait()
}

func (executor *Executor) runStepWithPolicy(executionContext context.Context, step StepConfiguration, runtimeOptions RuntimeOptions) error {
	if runtimeOptions.DryRun {
		executor.dependencies.Logger.Info(playbookStepPlannedMessageConstant, stepLogFields(step)...)
		return nil
	}

	stepError := executor.executeStep(executionContext, step)
	if stepError == nil {
		return nil
	}
	if step.ContinueOnError {
		executor.dependencies.Logger.Warn(playbookStepContinuedMessageConstant, zap.String(logFieldStepConstant, step.Name), zap.Error(stepError))
		return nil
	}

	return stepError
}

func (executor *Executor) executeStep(executionContext context.Context, step StepConfiguration) error {
	invocationOptions := buildStepOptions(step)

	var executionResult execproc.ExecutionResult
	var invocationError error
	if step.UsesShell() {
		shellSpecification := execproc.ShellCommandSpec{CommandLine: step.Shell, Shell: execproc.ShellIdentity(step.Interpreter)}
		executionResult, invocationError = executor.dependencies.Executor.ExecuteShell(executionContext, shellSpecification, invocationOptions)
	} else {
		commandSpecification := execproc.CommandSpec{Program: step.Command[0], Arguments: step.Command[1:]}
		executionResult, invocationError = executor.dependencies.Executor.ExecuteCommand(executionContext, commandSpecification, invocationOptions)
	}

	if invocationError != nil {
		failureKind, _ := execproc.ClassifyInvocationError(invocationError)
		return StepFailure{StepName: step.Name, Kind: failureKind, ExitCode: executionResult.ExitCode, Cause: invocationError}
	}
	if executionResult.TimedOut {
		return StepFailure{StepName: step.Name, Kind: execproc.InvocationErrorKindTimeout, ExitCode: executionResult.ExitCode}
	}
	if executionResult.ExitCode != 0 {
		return StepFailure{StepName: step.Name, ExitCode: executionResult.ExitCode}
	}

	return nil
}

// buildStepOptions disables capture so step output streams to the parent's
// standard streams; grouped steps may interleave their output.
func buildStepOptions(step StepConfiguration) execproc.InvocationOptions {
	invocationOptions := execproc.DefaultInvocationOptions()
	invocationOptions.CaptureStandardOutput = false
	invocationOptions.CaptureStandardError = false
	invocationOptions.Timeout = time.Duration(step.Timeout)
	invocationOptions.WorkingDirectory = playbookWorkingDirectorySanitizer.Sanitize(step.WorkingDirectory)
	if len(step.Environment) > 0 {
		environmentVariables := make(map[string]string, len(step.Environment))
		for variableName, variableValue := range step.Environment {
			environmentVariables[variableName] = variableValue
		}
		invocationOptions.EnvironmentVariables = environmentVariables
	}
	return invocationOptions
}

func stepLogFields(step StepConfiguration) []zap.Field {
	logFields := []zap.Field{zap.String(logFieldStepConstant, step.Name)}
	if step.UsesShell() {
		logFields = append(logFields, zap.String(logFieldCommandLineConstant, step.Shell))
	} else {
		logFields = append(logFields, zap.Strings(logFieldCommandConstant, step.Command))
	}
	if len(step.Group) > 0 {
		logFields = append(logFields, zap.String(logFieldGroupConstant, step.Group))
	}
	return logFields
}
