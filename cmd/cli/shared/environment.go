package shared

import (
	"fmt"
	"strings"
)

const (
	environmentAssignmentSeparatorConstant   = "="
	malformedAssignmentErrorTemplateConstant = "invalid environment assignment %q; expected NAME=value"
)

// ParseEnvironmentAssignments converts repeated NAME=value flag values into
// the environment variable map applied to an invocation. No assignments yield
// a nil map so the child inherits the parent environment unchanged.
func ParseEnvironmentAssignments(assignments []string) (map[string]string, error) {
	if len(assignments) == 0 {
		return nil, nil
	}

	environmentVariables := make(map[string]string, len(assignments))
	for _, assignment := range assignments {
		separatorIndex := strings.Index(assignment, environmentAssignmentSeparatorConstant)
		if separatorIndex <= 0 {
			return nil, fmt.Errorf(malformedAssignmentErrorTemplateConstant, assignment)
		}
		environmentVariables[assignment[:separatorIndex]] = assignment[separatorIndex+1:]
	}

	return environmentVariables, nil
}
