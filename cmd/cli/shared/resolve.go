package shared

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/invoke/internal/execproc"
	"github.com/temirov/invoke/internal/ui"
	"github.com/temirov/invoke/internal/utils"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ResolveLogger returns the provided logger or a no-op fallback.
func ResolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// ResolveProcessExecutor wraps the provided runner in a process executor,
// constructing an operating-system runner when none is supplied. Forwarded
// streams route to the supplied command writers, and human-readable logging
// attaches the console invocation event logger.
func ResolveProcessExecutor(existingRunner execproc.ProcessRunner, logger *zap.Logger, humanReadableLogging bool, standardOutput io.Writer, standardError io.Writer) (*execproc.ProcessExecutor, error) {
	processRunner := existingRunner
	if processRunner == nil {
		operatingSystemRunner := execproc.NewOSProcessRunner()
		operatingSystemRunner.ForwardedStandardOutput = ForwardedStreamWriter(os.Stdout, standardOutput)
		operatingSystemRunner.ForwardedStandardError = ForwardedStreamWriter(os.Stderr, standardError)
		processRunner = operatingSystemRunner
	}

	observers := []execproc.InvocationEventObserver{}
	if humanReadableLogging {
		observers = append(observers, ui.NewConsoleInvocationEventLogger(logger))
	}

	return execproc.NewProcessExecutor(logger, processRunner, observers...)
}

// ForwardedStreamWriter selects the destination receiving un-captured child
// output. Writes flush eagerly unless the underlying process stream is a
// terminal, so pipeline consumers observe forwarded output promptly.
func ForwardedStreamWriter(processStream *os.File, commandStream io.Writer) io.Writer {
	destination := commandStream
	if destination == nil {
		if processStream == nil {
			return nil
		}
		destination = processStream
	}

	if processStream != nil && term.IsTerminal(int(processStream.Fd())) {
		return destination
	}
	return utils.NewFlushingWriter(destination)
}

// ResolveExecutionDefaults reads the invocation defaults stowed in the command
// context, returning zero defaults when none were recorded.
func ResolveExecutionDefaults(command *cobra.Command) utils.ExecutionDefaults {
	if command == nil {
		return utils.ExecutionDefaults{}
	}

	contextAccessor := utils.NewCommandContextAccessor()
	executionDefaults, defaultsAvailable := contextAccessor.ExecutionDefaults(command.Context())
	if !defaultsAvailable {
		return utils.ExecutionDefaults{}
	}
	return executionDefaults
}
