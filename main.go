package main

import (
	"fmt"
	"os"

	"github.com/temirov/invoke/cmd/cli"
	"github.com/temirov/invoke/cmd/cli/shared"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the invoke command-line application and mirrors child exit codes.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(shared.ExitCodeForError(executionError))
	}
}
