package main

import (
	"errors"
)

// Exit codes for the moodle2doc CLI.
const (
	ExitSuccess = 0 // Every file converted
	ExitFailure = 1 // Nothing converted, or a fatal error
	ExitPartial = 2 // Some files converted, some failed
)

// Sentinel errors returned by commands.
var (
	ErrUsage     = errors.New("invalid configuration")
	ErrNoInput   = errors.New("no .xml files to convert")
	ErrAllFailed = errors.New("all files failed")
	ErrPartial   = errors.New("some files failed")
)

// exitCodeFor returns the exit code for an error returned by a command.
// Callers must wrap with fmt.Errorf("%w", err) for errors.Is to match.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrPartial):
		return ExitPartial
	default:
		return ExitFailure
	}
}
