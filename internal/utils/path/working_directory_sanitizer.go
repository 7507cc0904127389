package pathutils

import (
	"path/filepath"
	"strings"
)

// WorkingDirectorySanitizer normalizes working directory inputs consistently across commands.
type WorkingDirectorySanitizer struct {
	homeExpander *HomeExpander
}

// NewWorkingDirectorySanitizer constructs a WorkingDirectorySanitizer using the operating system home lookup.
func NewWorkingDirectorySanitizer() *WorkingDirectorySanitizer {
	return NewWorkingDirectorySanitizerWithExpander(nil)
}

// NewWorkingDirectorySanitizerWithExpander constructs a WorkingDirectorySanitizer using the provided expander.
func NewWorkingDirectorySanitizerWithExpander(homeExpander *HomeExpander) *WorkingDirectorySanitizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &WorkingDirectorySanitizer{homeExpander: resolvedExpander}
}

// Sanitize trims whitespace, expands the user's home directory, and cleans the path.
// Blank inputs sanitize to an empty string so callers fall back to the process working directory.
func (sanitizer *WorkingDirectorySanitizer) Sanitize(candidatePath string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expandedPath := sanitizer.resolveExpander().Expand(trimmedCandidate)
	if len(expandedPath) == 0 {
		return ""
	}

	return filepath.Clean(expandedPath)
}

func (sanitizer *WorkingDirectorySanitizer) resolveExpander() *HomeExpander {
	if sanitizer == nil || sanitizer.homeExpander == nil {
		return NewHomeExpander()
	}
	return sanitizer.homeExpander
}
