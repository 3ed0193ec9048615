package main

import "github.com/textreuse/iqtibas/internal/reuse"

// Exit codes, stable for scripting.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad parameters, malformed config file)
	ExitInputError  = 3 // Input error (missing corpus, unknown document, corrupt blob)
	ExitOutputError = 4 // Output error (cannot write results)
)

// exitCodeFor maps an error's kind to its exit code.
func exitCodeFor(err error) int {
	switch reuse.KindOf(err) {
	case reuse.KindConfiguration:
		return ExitConfigError
	case reuse.KindInput:
		return ExitInputError
	case reuse.KindOutput:
		return ExitOutputError
	default:
		return ExitError
	}
}
