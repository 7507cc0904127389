package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/invoke/internal/execproc"
)

const (
	invocationStartedMessageTemplateConstant          = "Running %s"
	invocationCompletedMessageTemplateConstant        = "Completed %s"
	invocationFailedExitCodeMessageTemplateConstant   = "%s failed with exit code %d"
	invocationTimeoutMessageTemplateConstant          = "%s timed out after %s"
	invocationExecutionFailureMessageTemplateConstant = "%s failed: %s"
	invocationLabelTemplateConstant                   = "%s%s"
	shellInvocationLabelTemplateConstant              = "%s %s %q"
	workingDirectorySuffixTemplateConstant            = " (in %s)"
	argumentsJoinSeparatorConstant                    = " "
	standardErrorSuffixTemplateConstant               = ": %s"
	unknownFailureMessageConstant                     = "unknown error"
	emptyStringConstant                               = ""
)

// InvocationEventFormatter builds human-readable messages for invocation lifecycle events.
type InvocationEventFormatter struct{}

// BuildStartedMessage formats the message describing an invocation about to run.
func (formatter InvocationEventFormatter) BuildStartedMessage(invocation execproc.Invocation) string {
	return fmt.Sprintf(invocationStartedMessageTemplateConstant, formatter.formatInvocationLabel(invocation))
}

// BuildSuccessMessage formats the message describing an invocation that exited with code zero.
func (formatter InvocationEventFormatter) BuildSuccessMessage(invocation execproc.Invocation) string {
	return fmt.Sprintf(invocationCompletedMessageTemplateConstant, formatter.formatInvocationLabel(invocation))
}

// BuildFailureMessage formats the message describing an invocation that returned a non-zero exit code.
func (formatter InvocationEventFormatter) BuildFailureMessage(invocation execproc.Invocation, result execproc.ExecutionResult) string {
	baseMessage := fmt.Sprintf(invocationFailedExitCodeMessageTemplateConstant, formatter.formatInvocationLabel(invocation), result.ExitCode)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)
	if len(standardErrorSuffix) == 0 {
		return baseMessage
	}
	return baseMessage + standardErrorSuffix
}

// BuildTimeoutMessage formats the message describing an invocation terminated by its timeout.
func (formatter InvocationEventFormatter) BuildTimeoutMessage(invocation execproc.Invocation) string {
	return fmt.Sprintf(invocationTimeoutMessageTemplateConstant, formatter.formatInvocationLabel(invocation), invocation.Options.Timeout)
}

// BuildExecutionFailureMessage formats the message describing an invocation that never produced an exit status.
func (formatter InvocationEventFormatter) BuildExecutionFailureMessage(invocation execproc.Invocation, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(invocationExecutionFailureMessageTemplateConstant, formatter.formatInvocationLabel(invocation), failureMessage)
}

func (formatter InvocationEventFormatter) formatInvocationLabel(invocation execproc.Invocation) string {
	invocationLabel := formatter.formatDirectLabel(invocation)
	if invocation.Kind == execproc.InvocationKindShell {
		invocationLabel = formatter.formatShellLabel(invocation)
	}
	return fmt.Sprintf(invocationLabelTemplateConstant, invocationLabel, formatter.formatWorkingDirectorySuffix(invocation))
}

func (formatter InvocationEventFormatter) formatDirectLabel(invocation execproc.Invocation) string {
	labelParts := []string{invocation.Program}
	if len(invocation.Arguments) > 0 {
		labelParts = append(labelParts, strings.Join(invocation.Arguments, argumentsJoinSeparatorConstant))
	}
	return strings.Join(labelParts, argumentsJoinSeparatorConstant)
}

// formatShellLabel renders the interpreter, its flags, and the quoted command
// line. The command line always occupies the final argument slot.
func (formatter InvocationEventFormatter) formatShellLabel(invocation execproc.Invocation) string {
	interpreterArguments := invocation.Arguments
	if len(interpreterArguments) > 0 {
		interpreterArguments = interpreterArguments[:len(interpreterArguments)-1]
	}
	return fmt.Sprintf(shellInvocationLabelTemplateConstant, invocation.Shell, strings.Join(interpreterArguments, argumentsJoinSeparatorConstant), invocation.CommandLine)
}

func (formatter InvocationEventFormatter) formatWorkingDirectorySuffix(invocation execproc.Invocation) string {
	trimmedWorkingDirectory := strings.TrimSpace(invocation.Options.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter InvocationEventFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

// ConsoleInvocationEventLogger renders invocation lifecycle events using a zap logger configured for human-readable output.
type ConsoleInvocationEventLogger struct {
	logger    *zap.Logger
	formatter InvocationEventFormatter
}

// NewConsoleInvocationEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleInvocationEventLogger(logger *zap.Logger) *ConsoleInvocationEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleInvocationEventLogger{logger: logger, formatter: InvocationEventFormatter{}}
}

// InvocationStarted implements execproc.InvocationEventObserver by logging invocation start notifications.
func (eventLogger *ConsoleInvocationEventLogger) InvocationStarted(invocation execproc.Invocation) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(invocation))
}

// InvocationCompleted implements execproc.InvocationEventObserver by logging completion, failure, and timeout notifications.
func (eventLogger *ConsoleInvocationEventLogger) InvocationCompleted(invocation execproc.Invocation, result execproc.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.TimedOut {
		eventLogger.logger.Warn(eventLogger.formatter.BuildTimeoutMessage(invocation))
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(invocation))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(invocation, result))
}

// InvocationExecutionFailed implements execproc.InvocationEventObserver by logging invocations that never produced an exit status.
func (eventLogger *ConsoleInvocationEventLogger) InvocationExecutionFailed(invocation execproc.Invocation, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(invocation, failure))
}
