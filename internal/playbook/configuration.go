package playbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/temirov/invoke/internal/execproc"
)

const (
	configurationLoadErrorTemplateConstant        = "failed to load playbook: %w"
	configurationParseErrorTemplateConstant       = "failed to parse playbook: %w"
	configurationPathRequiredMessageConstant      = "playbook path must be provided"
	configurationEmptyStepsMessageConstant        = "playbook must define at least one step"
	configurationStepModeMissingTemplateConstant  = "playbook step %s must define command or shell"
	configurationStepModeConflictTemplateConstant = "playbook step %s must define only one of command and shell"
	configurationStepProgramBlankTemplateConstant = "playbook step %s command must name a program"
	configurationStepInterpreterTemplateConstant  = "playbook step %s interpreter invalid: %w"
	configurationDurationParseTemplateConstant    = "invalid duration %q"
	configurationDefaultStepNameTemplateConstant  = "step-%d"
)

// Duration decodes Go duration strings such as "90s" from YAML scalars.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for duration scalars.
func (duration *Duration) UnmarshalYAML(value *yaml.Node) error {
	var rawValue string
	if decodeError := value.Decode(&rawValue); decodeError != nil {
		return decodeError
	}

	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		*duration = 0
		return nil
	}

	parsedDuration, parseError := time.ParseDuration(trimmedValue)
	if parseError != nil {
		return fmt.Errorf(configurationDurationParseTemplateConstant, rawValue)
	}

	*duration = Duration(parsedDuration)
	return nil
}

// Configuration describes an ordered sequence of process invocations loaded from YAML.
type Configuration struct {
	Name  string              `yaml:"name"`
	Steps []StepConfiguration `yaml:"steps"`
}

// StepConfiguration describes a single playbook step.
//
// Exactly one of Command and Shell must be populated. Command launches the
// named program directly with the remaining entries as its argument vector;
// Shell hands the command line to an interpreter selected by Interpreter or
// by the platform default.
type StepConfiguration struct {
	Name             string            `yaml:"name"`
	Command          []string          `yaml:"command"`
	Shell            string            `yaml:"shell"`
	Interpreter      string            `yaml:"interpreter"`
	Timeout          Duration          `yaml:"timeout"`
	WorkingDirectory string            `yaml:"working_directory"`
	Environment      map[string]string `yaml:"environment"`
	Group            string            `yaml:"group"`
	ContinueOnError  bool              `yaml:"continue_on_error"`
}

// UsesShell reports whether the step runs through a shell interpreter.
func (step StepConfiguration) UsesShell() bool {
	return len(strings.TrimSpace(step.Shell)) > 0
}

// LoadConfiguration reads the playbook definition from disk and performs basic validation.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	configuration, parseError := parseConfiguration(contentBytes)
	if parseError != nil {
		return Configuration{}, parseError
	}

	if len(strings.TrimSpace(configuration.Name)) == 0 {
		configuration.Name = playbookNameFromPath(trimmedPath)
	}

	if len(configuration.Steps) == 0 {
		return Configuration{}, errors.New(configurationEmptyStepsMessageConstant)
	}

	for stepIndex := range configuration.Steps {
		if validationError := normalizeStep(&configuration.Steps[stepIndex], stepIndex); validationError != nil {
			return Configuration{}, validationError
		}
	}

	return configuration, nil
}

func parseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		wrapped, wrappedAvailable := parseWrappedConfiguration(contentBytes)
		if !wrappedAvailable {
			return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
		}
		return wrapped, nil
	}

	if len(configuration.Steps) == 0 {
		if wrapped, wrappedAvailable := parseWrappedConfiguration(contentBytes); wrappedAvailable {
			return wrapped, nil
		}
	}

	return configuration, nil
}

func parseWrappedConfiguration(contentBytes []byte) (Configuration, bool) {
	var wrapper struct {
		Playbook Configuration `yaml:"playbook"`
	}
	if nestedError := yaml.Unmarshal(contentBytes, &wrapper); nestedError != nil {
		return Configuration{}, false
	}
	if len(wrapper.Playbook.Steps) == 0 && len(strings.TrimSpace(wrapper.Playbook.Name)) == 0 {
		return Configuration{}, false
	}
	return wrapper.Playbook, true
}

func playbookNameFromPath(filePath string) string {
	baseName := filepath.Base(filePath)
	return strings.TrimSuffix(baseName, filepath.Ext(baseName))
}

func normalizeStep(step *StepConfiguration, stepIndex int) error {
	step.Name = strings.TrimSpace(step.Name)
	if len(step.Name) == 0 {
		step.Name = fmt.Sprintf(configurationDefaultStepNameTemplateConstant, stepIndex+1)
	}

	step.Group = strings.TrimSpace(step.Group)
	step.Interpreter = strings.TrimSpace(step.Interpreter)

	definesCommand := len(step.Command) > 0
	definesShell := step.UsesShell()
	if !definesCommand && !definesShell {
		return fmt.Errorf(configurationStepModeMissingTemplateConstant, step.Name)
	}
	if definesCommand && definesShell {
		return fmt.Errorf(configurationStepModeConflictTemplateConstant, step.Name)
	}

	if definesCommand && len(strings.TrimSpace(step.Command[0])) == 0 {
		return fmt.Errorf(configurationStepProgramBlankTemplateConstant, step.Name)
	}

	if definesShell && len(step.Interpreter) > 0 {
		if _, resolveError := execproc.ResolveShell(execproc.ShellIdentity(step.Interpreter)); resolveError != nil {
			return fmt.Errorf(configurationStepInterpreterTemplateConstant, step.Name, resolveError)
		}
	}

	return nil
}
