package main

import (
	"fmt"
	"os"
)

const exitErrorTemplateConstant = "%v\n"

// main executes the renom command-line application.
func main() {
	application := newRenomApplication()
	if executionError := application.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
